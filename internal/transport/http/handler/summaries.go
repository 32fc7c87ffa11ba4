package handler

import (
	"net/http"
	"time"

	domainservice "journal-service/internal/domain/service"
	"journal-service/internal/transport/http/middleware"

	"github.com/google/uuid"
)

// SummaryHandler handles weekly summary HTTP requests
type SummaryHandler struct {
	summaryService domainservice.SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService domainservice.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// ListSummaries retrieves all weekly summaries for the acting user
// @Summary List weekly summaries
// @Description Get all weekly summaries, newest week first
// @Tags summaries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{summaries=[]object}
// @Failure 401 {object} object{error=string}
// @Router /api/v1/summaries/list [get]
func (h *SummaryHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summaries, err := h.summaryService.ListSummaries(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]summaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toSummaryResponse(s))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"summaries": out})
}

// CheckSummary runs the weekly summary check for the acting user
// @Summary Check for a due weekly summary
// @Description On Mondays, generates the prior week's summary if it does not exist yet. Idempotent.
// @Tags summaries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{summary=object,fresh=bool}
// @Failure 401 {object} object{error=string}
// @Router /api/v1/summaries/check [post]
func (h *SummaryHandler) CheckSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, fresh, err := h.summaryService.CheckWeeklySummary(r.Context(), userID, time.Now().UTC())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := map[string]interface{}{"fresh": fresh}
	if summary != nil {
		resp["summary"] = toSummaryResponse(summary)
	} else {
		resp["summary"] = nil
	}

	writeJSON(w, http.StatusOK, resp)
}
