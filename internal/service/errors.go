package service

import "errors"

// Error taxonomy surfaced to the HTTP layer. Ownership mismatch and genuine
// absence of a collection are deliberately the same error so callers cannot
// probe for collections they do not own.
var (
	// ErrUnauthorized is returned when no caller identity is present.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrCollectionNotFound is returned when a collection is absent or not
	// owned by the caller.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrInvalidCollection is returned when a supplied collection reference
	// does not resolve to a caller-owned collection during set addition.
	ErrInvalidCollection = errors.New("invalid collection")
	// ErrSetNotInCollection is returned for quantity operations on a set
	// number that has no entry in the collection.
	ErrSetNotInCollection = errors.New("set not in collection")
	// ErrInvalidQuantity is returned when a quantity or delta is negative or
	// when a condition tag is unknown.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
