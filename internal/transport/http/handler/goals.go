package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"journal-service/internal/domain/entity"
	domainservice "journal-service/internal/domain/service"
	"journal-service/internal/transport/http/middleware"

	"github.com/google/uuid"
)

// GoalHandler handles goal-related HTTP requests
type GoalHandler struct {
	goalService domainservice.GoalService
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService domainservice.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type goalRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Keywords    []string   `json:"keywords"`
	TargetType  string     `json:"target_type"`
	TargetValue int32      `json:"target_value"`
	TimePeriod  string     `json:"time_period"`
	EndDate     *time.Time `json:"end_date"`
	Status      *string    `json:"status"`
}

func (r goalRequest) toInput() domainservice.GoalInput {
	return domainservice.GoalInput{
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Keywords:    r.Keywords,
		TargetType:  entity.TargetType(r.TargetType),
		TargetValue: r.TargetValue,
		TimePeriod:  entity.TimePeriod(r.TimePeriod),
		EndDate:     r.EndDate,
	}
}

// CreateGoal handles goal creation
// @Summary Create a new goal
// @Description Create a recurring goal with a category filter, keywords, or semantic matching
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,description=string,category_id=string,keywords=[]string,target_type=string,target_value=int,time_period=string,end_date=string} true "Create goal request"
// @Success 201 {object} object{id=string,title=string,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /api/v1/goals/create [post]
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if req.TargetValue <= 0 {
		http.Error(w, "target_value must be positive", http.StatusBadRequest)
		return
	}

	switch entity.TargetType(req.TargetType) {
	case entity.TargetTypeTime, entity.TargetTypeCount:
	default:
		http.Error(w, "Invalid target_type", http.StatusBadRequest)
		return
	}

	switch entity.TimePeriod(req.TimePeriod) {
	case entity.PeriodDaily, entity.PeriodWeekly, entity.PeriodMonthly:
	default:
		http.Error(w, "Invalid time_period", http.StatusBadRequest)
		return
	}

	goal, err := h.goalService.CreateGoal(r.Context(), userID, req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalResponse(goal))
}

// ListGoals retrieves all goals for the acting user
// @Summary List goals
// @Description Get all goals, newest first. Lapsed tracking periods are reset before returning.
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{goals=[]object,total_count=int}
// @Failure 401 {object} object{error=string}
// @Router /api/v1/goals/list [get]
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goals, err := h.goalService.ListGoals(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"goals":       out,
		"total_count": len(out),
	})
}

// UpdateGoal updates editable fields on a goal
// @Summary Update a goal
// @Description Update title, matching criteria, target or status of a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query string true "Goal ID"
// @Param request body object{title=string,description=string,category_id=string,keywords=[]string,target_type=string,target_value=int,time_period=string,status=string} true "Update goal request"
// @Success 200 {object} object{id=string,title=string,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/v1/goals/update [put]
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goalID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Valid goal ID is required", http.StatusBadRequest)
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var status *entity.GoalStatus
	if req.Status != nil {
		s := entity.GoalStatus(*req.Status)
		switch s {
		case entity.GoalStatusActive, entity.GoalStatusCompleted, entity.GoalStatusPaused:
			status = &s
		default:
			http.Error(w, "Invalid status", http.StatusBadRequest)
			return
		}
	}

	goal, err := h.goalService.UpdateGoal(r.Context(), goalID, userID, req.toInput(), status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal removes a goal
// @Summary Delete a goal
// @Description Delete a goal by ID. Its progress ledger rows are removed with it.
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id query string true "Goal ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/v1/goals/delete [delete]
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goalID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Valid goal ID is required", http.StatusBadRequest)
		return
	}

	if err := h.goalService.DeleteGoal(r.Context(), goalID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "goal deleted"})
}

// GetProgress retrieves the contribution ledger for a goal
// @Summary Get goal progress history
// @Description Get the append-only contribution ledger for a goal, newest first
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id query string true "Goal ID"
// @Success 200 {object} object{progress=[]object}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/v1/goals/progress [get]
func (h *GoalHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goalID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Valid goal ID is required", http.StatusBadRequest)
		return
	}

	progress, err := h.goalService.GetProgress(r.Context(), goalID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"progress": toGoalProgressResponses(progress),
	})
}
