package service

import (
	"context"

	"github.com/brickstash/brickstash/internal/models"
	"github.com/google/uuid"
)

// SetService implements set addition.
type SetService struct {
	collections CollectionRepository
	sets        SetRepository
}

// NewSetService constructs a SetService over the given repositories.
func NewSetService(collections CollectionRepository, sets SetRepository) *SetService {
	return &SetService{collections: collections, sets: sets}
}

// AddSet inserts a new set row stamped with the caller as owner. When a
// collection reference is supplied it must resolve to a caller-owned
// collection; a nil reference files the set as unfiled.
func (s *SetService) AddSet(ctx context.Context, ownerID string, set models.Set) (string, error) {
	if ownerID == "" {
		return "", ErrUnauthorized
	}

	if set.CollectionID != nil {
		col, err := s.collections.CollectionByID(ctx, *set.CollectionID)
		if err != nil {
			return "", err
		}
		if col == nil || col.OwnerID != ownerID {
			return "", ErrInvalidCollection
		}
	}

	set.ID = uuid.NewString()
	set.OwnerID = ownerID
	if err := s.sets.InsertSet(ctx, set); err != nil {
		return "", err
	}
	return set.ID, nil
}
