package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	domainservice "journal-service/internal/domain/service"
	"journal-service/internal/transport/http/middleware"

	"github.com/google/uuid"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService domainservice.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService domainservice.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories retrieves the acting user's categories
// @Summary List categories
// @Description Get all categories for the acting user; guests receive the default set
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{categories=[]object}
// @Failure 500 {object} object{error=string}
// @Router /api/v1/categories/list [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	categories, err := h.categoryService.ListCategories(r.Context(), userID, middleware.IsGuest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": out})
}

// CreateCategory creates a new category
// @Summary Create a category
// @Description Create a category; names are unique per user, case-insensitive
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,color=string} true "Create category request"
// @Success 201 {object} object{id=string,name=string,color=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/v1/categories/create [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
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
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), userID, req.Name, req.Color)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// DeleteCategory removes a category
// @Summary Delete a category
// @Description Delete a category; rejected while entries still reference it
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id query string true "Category ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/v1/categories/delete [delete]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	categoryID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Valid category ID is required", http.StatusBadRequest)
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), categoryID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

// ListPending retrieves unresolved category suggestions
// @Summary List pending category suggestions
// @Description Get unresolved category suggestions raised by the classifier
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{pending=[]object}
// @Failure 500 {object} object{error=string}
// @Router /api/v1/categories/pending [get]
func (h *CategoryHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	pending, err := h.categoryService.ListPending(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]pendingCategoryResponse, 0, len(pending))
	for _, p := range pending {
		out = append(out, toPendingCategoryResponse(p))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"pending": out})
}

// ApprovePending approves a suggestion, creating the category
// @Summary Approve a category suggestion
// @Description Create the suggested category (optionally renamed) and backfill the originating entry
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{pending_id=string,name=string} true "Approve request"
// @Success 201 {object} object{id=string,name=string,color=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/v1/categories/approve [post]
func (h *CategoryHandler) ApprovePending(w http.ResponseWriter, r *http.Request) {
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
		PendingID uuid.UUID `json:"pending_id"`
		Name      string    `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.PendingID == uuid.Nil {
		http.Error(w, "pending_id is required", http.StatusBadRequest)
		return
	}

	category, err := h.categoryService.ApprovePending(r.Context(), req.PendingID, userID, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// RejectPending rejects a suggestion
// @Summary Reject a category suggestion
// @Description Remove the suggestion; optionally assign an existing category to the originating entry
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{pending_id=string,category_id=string} true "Reject request"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/v1/categories/reject [post]
func (h *CategoryHandler) RejectPending(w http.ResponseWriter, r *http.Request) {
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
		PendingID  uuid.UUID  `json:"pending_id"`
		CategoryID *uuid.UUID `json:"category_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.PendingID == uuid.Nil {
		http.Error(w, "pending_id is required", http.StatusBadRequest)
		return
	}

	if err := h.categoryService.RejectPending(r.Context(), req.PendingID, userID, req.CategoryID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "suggestion rejected"})
}
