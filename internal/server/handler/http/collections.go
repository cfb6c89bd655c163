// Package http provides HTTP handlers for collections, sets, quantities and
// catalog search.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brickstash/brickstash/internal/middleware"
	"github.com/brickstash/brickstash/internal/models"
	"github.com/go-chi/chi/v5"
)

// CollectionService defines the collection operations required by the HTTP
// handlers.
type CollectionService interface {
	// UserCollections lists all collections owned by the caller.
	UserCollections(ctx context.Context, ownerID string) ([]models.Collection, error)
	// AddCollection creates a collection and returns its id.
	AddCollection(ctx context.Context, ownerID, name string) (string, error)
	// CollectionByID returns one caller-owned collection.
	CollectionByID(ctx context.Context, ownerID, collectionID string) (*models.Collection, error)
	// DeleteCollection removes a collection and everything referencing it.
	DeleteCollection(ctx context.Context, ownerID, collectionID string) error
	// SetsForCollection lists the sets in a caller-owned collection.
	SetsForCollection(ctx context.Context, ownerID, collectionID string) ([]models.Set, error)
}

// CollectionHandler handles HTTP requests for collection management.
type CollectionHandler struct {
	// CollectionService performs the underlying collection operations.
	CollectionService CollectionService
}

// callerSubject returns the authenticated subject, or "" when the request
// carries no identity. The service layer treats "" as unauthorized.
func callerSubject(ctx context.Context) string {
	if id := middleware.GetIdentityFromContext(ctx); id != nil {
		return id.Subject
	}
	return ""
}

// List handles GET /api/collections.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	cols, err := h.CollectionService.UserCollections(r.Context(), callerSubject(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if cols == nil {
		cols = []models.Collection{}
	}
	writeJSON(w, http.StatusOK, cols)
}

// AddCollectionRequest represents the JSON payload for collection creation.
type AddCollectionRequest struct {
	// Name is the display name of the new collection.
	Name string `json:"name"`
}

// Create handles POST /api/collections.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AddCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := h.CollectionService.AddCollection(r.Context(), callerSubject(r.Context()), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Get handles GET /api/collections/{collectionID}.
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	col, err := h.CollectionService.CollectionByID(r.Context(), callerSubject(r.Context()), chi.URLParam(r, "collectionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, col)
}

// Delete handles DELETE /api/collections/{collectionID}.
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.CollectionService.DeleteCollection(r.Context(), callerSubject(r.Context()), chi.URLParam(r, "collectionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Sets handles GET /api/collections/{collectionID}/sets.
func (h *CollectionHandler) Sets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.CollectionService.SetsForCollection(r.Context(), callerSubject(r.Context()), chi.URLParam(r, "collectionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sets == nil {
		sets = []models.Set{}
	}
	writeJSON(w, http.StatusOK, sets)
}
