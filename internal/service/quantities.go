package service

import (
	"context"

	"github.com/brickstash/brickstash/internal/models"
	"github.com/google/uuid"
)

// QuantityRepository defines the quantity-entry persistence operations
// required by the services.
type QuantityRepository interface {
	// QuantityBySetAndCollection fetches the entry for the composite key,
	// reporting absence as (nil, nil).
	QuantityBySetAndCollection(ctx context.Context, setNum, collectionID string) (*models.SetQuantity, error)
	// QuantitiesByCollection fetches all entries for a collection.
	QuantitiesByCollection(ctx context.Context, collectionID string) ([]models.SetQuantity, error)
	// InsertQuantity stores a new entry.
	InsertQuantity(ctx context.Context, q models.SetQuantity) error
	// IncrementQuantity adds delta to an entry's quantity in a single patch.
	IncrementQuantity(ctx context.Context, setNum, collectionID string, delta int) error
	// SetQuantityValue overwrites an entry's quantity.
	SetQuantityValue(ctx context.Context, setNum, collectionID string, quantity int) error
	// DeleteQuantity removes the entry for the composite key.
	DeleteQuantity(ctx context.Context, setNum, collectionID string) error
	// DeleteQuantitiesByCollection removes every entry for a collection.
	DeleteQuantitiesByCollection(ctx context.Context, collectionID string) error
}

// QuantityService implements the quantity reconciliation rules for
// (set number, collection) entries.
type QuantityService struct {
	collections CollectionRepository
	sets        SetRepository
	quantities  QuantityRepository
}

// NewQuantityService constructs a QuantityService over the given repositories.
func NewQuantityService(collections CollectionRepository, sets SetRepository, quantities QuantityRepository) *QuantityService {
	return &QuantityService{collections: collections, sets: sets, quantities: quantities}
}

// QuantitiesForCollection returns all quantity entries of the caller's collection.
func (s *QuantityService) QuantitiesForCollection(ctx context.Context, ownerID, collectionID string) ([]models.SetQuantity, error) {
	if _, err := ownedCollection(ctx, s.collections, ownerID, collectionID); err != nil {
		return nil, err
	}
	return s.quantities.QuantitiesByCollection(ctx, collectionID)
}

// AddQuantity creates the quantity entry for a (set number, collection) pair.
// If an entry already exists its quantity is incremented instead, keeping the
// composite key unique without surfacing a store conflict.
func (s *QuantityService) AddQuantity(ctx context.Context, ownerID, collectionID, setNum string, quantity int, condition models.Condition) (string, error) {
	if _, err := ownedCollection(ctx, s.collections, ownerID, collectionID); err != nil {
		return "", err
	}
	if quantity < 0 {
		return "", ErrInvalidQuantity
	}
	if condition == "" {
		condition = models.ConditionNew
	}
	if !condition.Valid() {
		return "", ErrInvalidQuantity
	}

	existing, err := s.quantities.QuantityBySetAndCollection(ctx, setNum, collectionID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if err := s.quantities.IncrementQuantity(ctx, setNum, collectionID, quantity); err != nil {
			return "", err
		}
		return existing.ID, nil
	}

	q := models.SetQuantity{
		ID:           uuid.NewString(),
		CollectionID: collectionID,
		SetNum:       setNum,
		Quantity:     quantity,
		Condition:    condition,
		OwnerID:      ownerID,
	}
	if err := s.quantities.InsertQuantity(ctx, q); err != nil {
		return "", err
	}
	return q.ID, nil
}

// Quantity returns the tracked quantity for the composite key, defaulting to
// zero when no entry exists.
func (s *QuantityService) Quantity(ctx context.Context, ownerID, collectionID, setNum string) (int, error) {
	if _, err := ownedCollection(ctx, s.collections, ownerID, collectionID); err != nil {
		return 0, err
	}
	q, err := s.quantities.QuantityBySetAndCollection(ctx, setNum, collectionID)
	if err != nil {
		return 0, err
	}
	if q == nil {
		return 0, nil
	}
	return q.Quantity, nil
}

// IncrementQuantity adds delta to an existing entry. Entries must first be
// created through AddQuantity; an absent entry is a SetNotInCollection error.
func (s *QuantityService) IncrementQuantity(ctx context.Context, ownerID, collectionID, setNum string, delta int) error {
	if _, err := ownedCollection(ctx, s.collections, ownerID, collectionID); err != nil {
		return err
	}
	if delta < 0 {
		return ErrInvalidQuantity
	}
	q, err := s.quantities.QuantityBySetAndCollection(ctx, setNum, collectionID)
	if err != nil {
		return err
	}
	if q == nil {
		return ErrSetNotInCollection
	}
	return s.quantities.IncrementQuantity(ctx, setNum, collectionID, delta)
}

// UpdateQuantity overwrites the quantity of an existing entry with the given
// value. Negative values are rejected; an absent entry is a silent no-op.
func (s *QuantityService) UpdateQuantity(ctx context.Context, ownerID, collectionID, setNum string, quantity int) error {
	if _, err := ownedCollection(ctx, s.collections, ownerID, collectionID); err != nil {
		return err
	}
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	q, err := s.quantities.QuantityBySetAndCollection(ctx, setNum, collectionID)
	if err != nil {
		return err
	}
	if q == nil {
		return nil
	}
	return s.quantities.SetQuantityValue(ctx, setNum, collectionID, quantity)
}

// RemoveSet removes one unit of a set from a collection. With more than one
// copy tracked the quantity is decremented; on the last copy both the quantity
// entry and the set rows are deleted, scoped to this collection only.
func (s *QuantityService) RemoveSet(ctx context.Context, ownerID, collectionID, setNum string) error {
	if _, err := ownedCollection(ctx, s.collections, ownerID, collectionID); err != nil {
		return err
	}
	q, err := s.quantities.QuantityBySetAndCollection(ctx, setNum, collectionID)
	if err != nil {
		return err
	}
	if q == nil {
		return ErrSetNotInCollection
	}

	if q.Quantity > 1 {
		return s.quantities.IncrementQuantity(ctx, setNum, collectionID, -1)
	}

	if err := s.quantities.DeleteQuantity(ctx, setNum, collectionID); err != nil {
		return err
	}
	return s.sets.DeleteSetInCollection(ctx, setNum, collectionID)
}
