package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
)

// writeError maps a service error onto the HTTP status for its taxonomy
// class and writes a user-safe message, never internal error detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrMalformedInput):
		http.Error(w, "invalid request", http.StatusBadRequest)
	case errors.Is(err, apperr.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, apperr.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, apperr.ErrConflict):
		http.Error(w, "already exists", http.StatusConflict)
	case errors.Is(err, apperr.ErrService):
		http.Error(w, "external service failed", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
