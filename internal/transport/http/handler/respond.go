package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"journal-service/internal/domain/repository"
)

// writeJSON encodes a JSON response body with the given status
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleServiceError maps domain errors to HTTP status codes
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, repository.ErrDuplicate):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "already exists"})
	case errors.Is(err, repository.ErrConstraint):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
