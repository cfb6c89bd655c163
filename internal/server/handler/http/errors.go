package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brickstash/brickstash/internal/service"
)

// writeServiceError maps service errors onto HTTP status codes. Everything
// outside the taxonomy is an internal error with a generic body.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, service.ErrCollectionNotFound):
		http.Error(w, "collection not found", http.StatusNotFound)
	case errors.Is(err, service.ErrSetNotInCollection):
		http.Error(w, "set not in collection", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidCollection):
		http.Error(w, "invalid collection", http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrInvalidQuantity):
		http.Error(w, "invalid quantity", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
