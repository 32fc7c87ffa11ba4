package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"journal-service/internal/domain/entity"
	domainservice "journal-service/internal/domain/service"
	"journal-service/internal/transport/http/middleware"

	"github.com/google/uuid"
)

// EntryHandler handles entry-related HTTP requests
type EntryHandler struct {
	entryService domainservice.EntryService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryService domainservice.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

type createEntryResponse struct {
	Entry           entryResponse            `json:"entry"`
	PendingCategory *pendingCategoryResponse `json:"pending_category,omitempty"`
	CompletedGoal   *goalResponse            `json:"completed_goal,omitempty"`
}

// CreateEntry handles entry submission
// @Summary Log a new entry
// @Description Submit a note; the entry is parsed, categorized and matched against active goals
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{text=string,activity=string,duration_minutes=int,sentiment=string,category_hint=string} true "Create entry request"
// @Success 201 {object} object{entry=object,pending_category=object,completed_goal=object}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /api/v1/entries/create [post]
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Text            string  `json:"text"`
		Activity        *string `json:"activity"`
		DurationMinutes *int32  `json:"duration_minutes"`
		Sentiment       *string `json:"sentiment"`
		CategoryHint    *string `json:"category_hint"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	var sentiment *entity.Sentiment
	if req.Sentiment != nil {
		s := entity.Sentiment(*req.Sentiment)
		switch s {
		case entity.SentimentPositive, entity.SentimentNeutral, entity.SentimentNegative:
			sentiment = &s
		default:
			http.Error(w, "Invalid sentiment", http.StatusBadRequest)
			return
		}
	}

	result, err := h.entryService.CreateEntry(r.Context(), userID, middleware.IsGuest(r), domainservice.CreateEntryInput{
		Text:            req.Text,
		Activity:        req.Activity,
		DurationMinutes: req.DurationMinutes,
		Sentiment:       sentiment,
		CategoryHint:    req.CategoryHint,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := createEntryResponse{
		Entry: toEntryResponse(result.Entry),
	}
	if result.PendingCategory != nil {
		pending := toPendingCategoryResponse(result.PendingCategory)
		resp.PendingCategory = &pending
	}
	if result.CompletedGoal != nil {
		goal := toGoalResponse(result.CompletedGoal)
		resp.CompletedGoal = &goal
	}

	writeJSON(w, http.StatusCreated, resp)
}

// ListEntries retrieves all entries for the acting user
// @Summary List entries
// @Description Get all entries for the acting user, newest first
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{entries=[]object,total_count=int}
// @Failure 500 {object} object{error=string}
// @Router /api/v1/entries/list [get]
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := h.entryService.ListEntries(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries":     toEntryResponses(entries),
		"total_count": len(entries),
	})
}

// DeleteEntry removes an entry
// @Summary Delete an entry
// @Description Delete an entry by ID. Goal progress already recorded is retained.
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param id query string true "Entry ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/v1/entries/delete [delete]
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entryID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Valid entry ID is required", http.StatusBadRequest)
		return
	}

	if err := h.entryService.DeleteEntry(r.Context(), entryID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "entry deleted"})
}

// ExportEntries streams the user's entries as a JSON download
// @Summary Export entries
// @Description Download all entries for the acting user as a JSON file
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Success 200 {array} object
// @Failure 500 {object} object{error=string}
// @Router /api/v1/entries/export [get]
func (h *EntryHandler) ExportEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := h.entryService.ListEntries(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("journal-export-%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

// Suggestions returns quick-log suggestions from recent activity
// @Summary Get quick-log suggestions
// @Description Frequency-ranked activity suggestions derived from the last 30 days
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{suggestions=[]object}
// @Failure 500 {object} object{error=string}
// @Router /api/v1/entries/suggestions [get]
func (h *EntryHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	suggestions, err := h.entryService.Suggestions(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": toSuggestionResponses(suggestions),
	})
}
