// Package service implements the collection management rules: the
// authorization gate, quantity reconciliation and the deletion cascade.
// Persistence is delegated to repository interfaces declared here.
package service

import (
	"context"
	"time"

	"github.com/brickstash/brickstash/internal/models"
	"github.com/google/uuid"
)

// CollectionRepository defines the collection persistence operations required
// by the services.
type CollectionRepository interface {
	// CollectionByID fetches one collection, reporting absence as (nil, nil).
	CollectionByID(ctx context.Context, id string) (*models.Collection, error)
	// CollectionsByOwner fetches all collections belonging to an owner.
	CollectionsByOwner(ctx context.Context, ownerID string) ([]models.Collection, error)
	// InsertCollection stores a new collection row.
	InsertCollection(ctx context.Context, col models.Collection) error
	// DeleteCollection removes the collection row.
	DeleteCollection(ctx context.Context, id string) error
}

// SetRepository defines the set persistence operations required by the services.
type SetRepository interface {
	// InsertSet stores a new set row.
	InsertSet(ctx context.Context, set models.Set) error
	// SetsByCollection fetches all set rows in a collection.
	SetsByCollection(ctx context.Context, collectionID string) ([]models.Set, error)
	// DeleteSetInCollection removes set rows for a set number within one collection.
	DeleteSetInCollection(ctx context.Context, setNum, collectionID string) error
	// DeleteSetsByCollection removes every set row in a collection.
	DeleteSetsByCollection(ctx context.Context, collectionID string) error
}

// CollectionService implements collection operations gated by ownership.
type CollectionService struct {
	collections CollectionRepository
	sets        SetRepository
	quantities  QuantityRepository
}

// NewCollectionService constructs a CollectionService over the given repositories.
func NewCollectionService(collections CollectionRepository, sets SetRepository, quantities QuantityRepository) *CollectionService {
	return &CollectionService{collections: collections, sets: sets, quantities: quantities}
}

// ownedCollection is the authorization gate for collection-referencing
// operations: it loads the target collection and verifies the caller owns it.
// Absence and ownership mismatch are indistinguishable to the caller.
func ownedCollection(ctx context.Context, repo CollectionRepository, ownerID, collectionID string) (*models.Collection, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	col, err := repo.CollectionByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if col == nil || col.OwnerID != ownerID {
		return nil, ErrCollectionNotFound
	}
	return col, nil
}

// UserCollections returns all collections owned by the caller.
func (s *CollectionService) UserCollections(ctx context.Context, ownerID string) ([]models.Collection, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	return s.collections.CollectionsByOwner(ctx, ownerID)
}

// AddCollection creates a new collection owned by the caller and returns its id.
func (s *CollectionService) AddCollection(ctx context.Context, ownerID, name string) (string, error) {
	if ownerID == "" {
		return "", ErrUnauthorized
	}
	col := models.Collection{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.collections.InsertCollection(ctx, col); err != nil {
		return "", err
	}
	return col.ID, nil
}

// CollectionByID returns the caller's collection with the given id.
func (s *CollectionService) CollectionByID(ctx context.Context, ownerID, collectionID string) (*models.Collection, error) {
	return ownedCollection(ctx, s.collections, ownerID, collectionID)
}

// DeleteCollection removes a collection and everything referencing it.
// The cascade runs quantities, then sets, then the collection row, so an
// interrupted cascade never leaves quantity entries pointing at deleted sets.
// Deleting absent rows is a store-level no-op, so retries are safe.
func (s *CollectionService) DeleteCollection(ctx context.Context, ownerID, collectionID string) error {
	if _, err := ownedCollection(ctx, s.collections, ownerID, collectionID); err != nil {
		return err
	}
	if err := s.quantities.DeleteQuantitiesByCollection(ctx, collectionID); err != nil {
		return err
	}
	if err := s.sets.DeleteSetsByCollection(ctx, collectionID); err != nil {
		return err
	}
	return s.collections.DeleteCollection(ctx, collectionID)
}

// SetsForCollection returns the set rows of the caller's collection.
func (s *CollectionService) SetsForCollection(ctx context.Context, ownerID, collectionID string) ([]models.Set, error) {
	if _, err := ownedCollection(ctx, s.collections, ownerID, collectionID); err != nil {
		return nil, err
	}
	return s.sets.SetsByCollection(ctx, collectionID)
}
