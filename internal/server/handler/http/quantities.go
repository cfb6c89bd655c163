package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brickstash/brickstash/internal/models"
	"github.com/go-chi/chi/v5"
)

// QuantityService defines the quantity operations required by the HTTP
// handlers.
type QuantityService interface {
	// QuantitiesForCollection lists all quantity entries of a collection.
	QuantitiesForCollection(ctx context.Context, ownerID, collectionID string) ([]models.SetQuantity, error)
	// AddQuantity creates (or merges into) the entry for a set number.
	AddQuantity(ctx context.Context, ownerID, collectionID, setNum string, quantity int, condition models.Condition) (string, error)
	// Quantity returns the tracked count, zero when untracked.
	Quantity(ctx context.Context, ownerID, collectionID, setNum string) (int, error)
	// IncrementQuantity adds a delta to an existing entry.
	IncrementQuantity(ctx context.Context, ownerID, collectionID, setNum string, delta int) error
	// UpdateQuantity overwrites an existing entry's count.
	UpdateQuantity(ctx context.Context, ownerID, collectionID, setNum string, quantity int) error
	// RemoveSet removes one unit, deleting entry and set rows on the last one.
	RemoveSet(ctx context.Context, ownerID, collectionID, setNum string) error
}

// QuantityHandler handles HTTP requests for quantity reconciliation.
type QuantityHandler struct {
	// QuantityService performs the underlying quantity operations.
	QuantityService QuantityService
}

// List handles GET /api/collections/{collectionID}/quantities.
func (h *QuantityHandler) List(w http.ResponseWriter, r *http.Request) {
	quantities, err := h.QuantityService.QuantitiesForCollection(r.Context(), callerSubject(r.Context()), chi.URLParam(r, "collectionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if quantities == nil {
		quantities = []models.SetQuantity{}
	}
	writeJSON(w, http.StatusOK, quantities)
}

// AddQuantityRequest represents the JSON payload for quantity-entry creation.
type AddQuantityRequest struct {
	SetNum    string           `json:"setNum"`
	Quantity  int              `json:"quantity"`
	Condition models.Condition `json:"condition"`
}

// Create handles POST /api/collections/{collectionID}/quantities.
func (h *QuantityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AddQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SetNum == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := h.QuantityService.AddQuantity(r.Context(), callerSubject(r.Context()),
		chi.URLParam(r, "collectionID"), req.SetNum, req.Quantity, req.Condition)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Get handles GET /api/collections/{collectionID}/quantities/{setNum}.
func (h *QuantityHandler) Get(w http.ResponseWriter, r *http.Request) {
	quantity, err := h.QuantityService.Quantity(r.Context(), callerSubject(r.Context()),
		chi.URLParam(r, "collectionID"), chi.URLParam(r, "setNum"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"quantity": quantity})
}

// quantityPayload is the JSON payload for increment and update requests.
type quantityPayload struct {
	Quantity int `json:"quantity"`
}

// Add handles POST /api/collections/{collectionID}/quantities/{setNum}/add.
func (h *QuantityHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req quantityPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.QuantityService.IncrementQuantity(r.Context(), callerSubject(r.Context()),
		chi.URLParam(r, "collectionID"), chi.URLParam(r, "setNum"), req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Update handles PUT /api/collections/{collectionID}/quantities/{setNum}.
func (h *QuantityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req quantityPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.QuantityService.UpdateQuantity(r.Context(), callerSubject(r.Context()),
		chi.URLParam(r, "collectionID"), chi.URLParam(r, "setNum"), req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Remove handles DELETE /api/collections/{collectionID}/sets/{setNum}.
func (h *QuantityHandler) Remove(w http.ResponseWriter, r *http.Request) {
	err := h.QuantityService.RemoveSet(r.Context(), callerSubject(r.Context()),
		chi.URLParam(r, "collectionID"), chi.URLParam(r, "setNum"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
