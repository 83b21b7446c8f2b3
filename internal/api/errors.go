package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/golden-lotus/pos-service/internal/models"
)

type errorResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes v as the JSON response body
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error maps a service error onto a stable status code and JSON message
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrValidation):
		WriteJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	default:
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
	}
}

// BadRequest reports a malformed request
func BadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, errorResponse{Message: message})
}
