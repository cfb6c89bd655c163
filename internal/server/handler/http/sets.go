package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brickstash/brickstash/internal/models"
)

// SetService defines the set operations required by the HTTP handlers.
type SetService interface {
	// AddSet inserts a set row for the caller, optionally filed into a
	// caller-owned collection.
	AddSet(ctx context.Context, ownerID string, set models.Set) (string, error)
}

// SetHandler handles HTTP requests for set addition.
type SetHandler struct {
	// SetService performs the underlying set operations.
	SetService SetService
}

// AddSetRequest represents the JSON payload for set addition. CollectionID is
// optional; omitting it files the set as unfiled.
type AddSetRequest struct {
	Name         string  `json:"name"`
	NumParts     int     `json:"num_parts"`
	SetImgURL    string  `json:"set_img_url"`
	SetNum       string  `json:"set_num"`
	SetURL       string  `json:"set_url"`
	ThemeID      int     `json:"theme_id"`
	Year         int     `json:"year"`
	CollectionID *string `json:"collectionId"`
}

// Create handles POST /api/sets.
func (h *SetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AddSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SetNum == "" || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	set := models.Set{
		CollectionID: req.CollectionID,
		Name:         req.Name,
		NumParts:     req.NumParts,
		SetImgURL:    req.SetImgURL,
		SetNum:       req.SetNum,
		SetURL:       req.SetURL,
		ThemeID:      req.ThemeID,
		Year:         req.Year,
	}

	id, err := h.SetService.AddSet(r.Context(), callerSubject(r.Context()), set)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
