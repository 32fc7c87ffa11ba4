package handler

import (
	"encoding/json"
	"net/http"

	domainservice "journal-service/internal/domain/service"
	"journal-service/internal/transport/http/middleware"

	"github.com/google/uuid"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profileService domainservice.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService domainservice.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// Profile serves profile reads and updates on one route
// @Summary Get or update the profile
// @Description GET returns the acting user's profile; PUT upserts display fields
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{username=string,full_name=string,avatar_url=string} false "Update profile request"
// @Success 200 {object} object{id=string,username=string,full_name=string,avatar_url=string}
// @Failure 401 {object} object{error=string}
// @Router /api/v1/users/profile [get]
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		profile, err := h.profileService.GetProfile(r.Context(), userID)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(profile))

	case http.MethodPut:
		var req struct {
			Username  *string `json:"username"`
			FullName  *string `json:"full_name"`
			AvatarURL *string `json:"avatar_url"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		profile, err := h.profileService.UpdateProfile(r.Context(), userID, req.Username, req.FullName, req.AvatarURL)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(profile))

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
