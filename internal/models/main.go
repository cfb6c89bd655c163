// Package models defines the core data structures for users, collections,
// sets and set quantities.
package models

import "time"

// User mirrors the identity provider's record of a user. Rows are created on
// first sign-in and never mutated or deleted by the service.
type User struct {
	// UserID is the stable subject identifier issued by the identity provider.
	UserID string `json:"userId"`
	// Username is the display name reported by the identity provider.
	Username string `json:"username"`
	// Email is the contact address reported by the identity provider.
	Email string `json:"email"`
}

// Collection is a named grouping of sets owned by exactly one user.
type Collection struct {
	// ID is the unique identifier for the collection.
	ID string `json:"id"`
	// OwnerID is the subject identifier of the owning user.
	OwnerID string `json:"ownerId"`
	// Name is the display name of the collection.
	Name string `json:"name"`
	// CreatedAt is when the collection was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Set is a catalog entry tracked inside a collection.
type Set struct {
	// ID is the unique identifier for the set row.
	ID string `json:"id"`
	// CollectionID references the owning collection; nil means the set is
	// unfiled.
	CollectionID *string `json:"collectionId"`
	// OwnerID is the subject identifier of the owning user, denormalized from
	// the collection.
	OwnerID string `json:"ownerId"`
	// Name is the display name of the set.
	Name string `json:"name"`
	// NumParts is the part count reported by the catalog.
	NumParts int `json:"num_parts"`
	// SetImgURL is the catalog image URL.
	SetImgURL string `json:"set_img_url"`
	// SetNum is the catalog set number (e.g. "75335-1").
	SetNum string `json:"set_num"`
	// SetURL is the catalog detail page URL.
	SetURL string `json:"set_url"`
	// ThemeID is the catalog theme identifier.
	ThemeID int `json:"theme_id"`
	// Year is the release year.
	Year int `json:"year"`
}

// SetQuantity tracks how many copies of a set number exist within one
// collection. At most one row exists per (set number, collection) pair.
type SetQuantity struct {
	// ID is the unique identifier for the quantity row.
	ID string `json:"id"`
	// CollectionID references the collection the copies belong to.
	CollectionID string `json:"collectionId"`
	// SetNum is the catalog set number.
	SetNum string `json:"setNum"`
	// Quantity is the number of physical copies.
	Quantity int `json:"quantity"`
	// Condition tags the copies as new or used.
	Condition Condition `json:"condition"`
	// OwnerID is the subject identifier of the owning user.
	OwnerID string `json:"ownerId"`
}

// Condition is the physical condition of the tracked copies.
type Condition string

const (
	// ConditionNew marks copies as factory new.
	ConditionNew Condition = "new"
	// ConditionUsed marks copies as used.
	ConditionUsed Condition = "used"
)

// Valid reports whether c is one of the known condition tags.
func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}
