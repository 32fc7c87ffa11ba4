package handler

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"journal-service/internal/transport/http/middleware"
)

// Router sets up HTTP routes
type Router struct {
	entryHandler    *EntryHandler
	categoryHandler *CategoryHandler
	goalHandler     *GoalHandler
	summaryHandler  *SummaryHandler
	profileHandler  *ProfileHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimit       int
	mux             *http.ServeMux
}

// NewRouter creates a new router
func NewRouter(
	entryHandler *EntryHandler,
	categoryHandler *CategoryHandler,
	goalHandler *GoalHandler,
	summaryHandler *SummaryHandler,
	profileHandler *ProfileHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimit int,
) *Router {
	if rateLimit <= 0 {
		rateLimit = 60
	}

	return &Router{
		entryHandler:    entryHandler,
		categoryHandler: categoryHandler,
		goalHandler:     goalHandler,
		summaryHandler:  summaryHandler,
		profileHandler:  profileHandler,
		authMiddleware:  authMiddleware,
		rateLimit:       rateLimit,
		mux:             http.NewServeMux(),
	}
}

// Setup configures all routes
func (r *Router) Setup() http.Handler {

	// Entry and category routes work in guest mode too
	r.mux.HandleFunc("/api/v1/entries/create", r.authMiddleware.Auth(r.entryHandler.CreateEntry))
	r.mux.HandleFunc("/api/v1/entries/list", r.authMiddleware.Auth(r.entryHandler.ListEntries))
	r.mux.HandleFunc("/api/v1/entries/delete", r.authMiddleware.Auth(r.entryHandler.DeleteEntry))
	r.mux.HandleFunc("/api/v1/entries/export", r.authMiddleware.Auth(r.entryHandler.ExportEntries))
	r.mux.HandleFunc("/api/v1/entries/suggestions", r.authMiddleware.Auth(r.entryHandler.Suggestions))

	r.mux.HandleFunc("/api/v1/categories/list", r.authMiddleware.Auth(r.categoryHandler.ListCategories))
	r.mux.HandleFunc("/api/v1/categories/create", r.authMiddleware.RequireAuth(r.categoryHandler.CreateCategory))
	r.mux.HandleFunc("/api/v1/categories/delete", r.authMiddleware.RequireAuth(r.categoryHandler.DeleteCategory))
	r.mux.HandleFunc("/api/v1/categories/pending", r.authMiddleware.RequireAuth(r.categoryHandler.ListPending))
	r.mux.HandleFunc("/api/v1/categories/approve", r.authMiddleware.RequireAuth(r.categoryHandler.ApprovePending))
	r.mux.HandleFunc("/api/v1/categories/reject", r.authMiddleware.RequireAuth(r.categoryHandler.RejectPending))

	// Goal, summary and profile routes require authentication
	r.mux.HandleFunc("/api/v1/goals/create", r.authMiddleware.RequireAuth(r.goalHandler.CreateGoal))
	r.mux.HandleFunc("/api/v1/goals/list", r.authMiddleware.RequireAuth(r.goalHandler.ListGoals))
	r.mux.HandleFunc("/api/v1/goals/update", r.authMiddleware.RequireAuth(r.goalHandler.UpdateGoal))
	r.mux.HandleFunc("/api/v1/goals/delete", r.authMiddleware.RequireAuth(r.goalHandler.DeleteGoal))
	r.mux.HandleFunc("/api/v1/goals/progress", r.authMiddleware.RequireAuth(r.goalHandler.GetProgress))

	r.mux.HandleFunc("/api/v1/summaries/list", r.authMiddleware.RequireAuth(r.summaryHandler.ListSummaries))
	r.mux.HandleFunc("/api/v1/summaries/check", r.authMiddleware.RequireAuth(r.summaryHandler.CheckSummary))

	r.mux.HandleFunc("/api/v1/users/profile", r.authMiddleware.RequireAuth(r.profileHandler.Profile))

	r.mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	r.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var handler http.Handler = r.mux

	handler = middleware.Logging(handler)

	handler = middleware.RateLimit(r.rateLimit)(handler)

	return handler
}
