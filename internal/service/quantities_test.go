package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brickstash/brickstash/internal/models"
	"github.com/brickstash/brickstash/internal/service"
)

// entryOf returns a quantity repo serving one existing entry.
func entryOf(collectionID, setNum string, quantity int) *mockQuantityRepo {
	return &mockQuantityRepo{
		QuantityBySetAndCollectionFunc: func(_ context.Context, sn, cid string) (*models.SetQuantity, error) {
			if sn == setNum && cid == collectionID {
				return &models.SetQuantity{
					ID:           "q-1",
					CollectionID: collectionID,
					SetNum:       setNum,
					Quantity:     quantity,
					Condition:    models.ConditionNew,
					OwnerID:      "sub-1",
				}, nil
			}
			return nil, nil
		},
	}
}

func TestAddQuantity_CreatesEntry(t *testing.T) {
	var inserted models.SetQuantity
	quantities := entryOf("col-1", "other", 1)
	quantities.InsertQuantityFunc = func(_ context.Context, q models.SetQuantity) error {
		inserted = q
		return nil
	}
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, quantities)

	id, err := svc.AddQuantity(context.Background(), "sub-1", "col-1", "75335-1", 1, models.ConditionNew)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" || inserted.ID != id {
		t.Errorf("returned id %q does not match inserted id %q", id, inserted.ID)
	}
	if inserted.Quantity != 1 || inserted.SetNum != "75335-1" || inserted.OwnerID != "sub-1" {
		t.Errorf("unexpected entry: %+v", inserted)
	}
}

func TestAddQuantity_ExistingEntryMerges(t *testing.T) {
	var delta int
	quantities := entryOf("col-1", "75335-1", 2)
	quantities.IncrementQuantityFunc = func(_ context.Context, setNum, collectionID string, d int) error {
		delta = d
		return nil
	}
	quantities.InsertQuantityFunc = func(context.Context, models.SetQuantity) error {
		t.Error("a second entry must not be created for the same composite key")
		return nil
	}
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, quantities)

	id, err := svc.AddQuantity(context.Background(), "sub-1", "col-1", "75335-1", 3, models.ConditionNew)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "q-1" {
		t.Errorf("id = %q; want q-1", id)
	}
	if delta != 3 {
		t.Errorf("delta = %d; want 3", delta)
	}
}

func TestAddQuantity_DefaultsConditionToNew(t *testing.T) {
	var inserted models.SetQuantity
	quantities := entryOf("col-1", "other", 1)
	quantities.InsertQuantityFunc = func(_ context.Context, q models.SetQuantity) error {
		inserted = q
		return nil
	}
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, quantities)

	if _, err := svc.AddQuantity(context.Background(), "sub-1", "col-1", "75335-1", 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted.Condition != models.ConditionNew {
		t.Errorf("condition = %q; want new", inserted.Condition)
	}
}

func TestAddQuantity_RejectsBadInput(t *testing.T) {
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, &mockQuantityRepo{})

	if _, err := svc.AddQuantity(context.Background(), "sub-1", "col-1", "75335-1", -1, models.ConditionNew); !errors.Is(err, service.ErrInvalidQuantity) {
		t.Errorf("negative quantity: error = %v; want ErrInvalidQuantity", err)
	}
	if _, err := svc.AddQuantity(context.Background(), "sub-1", "col-1", "75335-1", 1, "mint"); !errors.Is(err, service.ErrInvalidQuantity) {
		t.Errorf("unknown condition: error = %v; want ErrInvalidQuantity", err)
	}
}

func TestQuantity_DefaultsToZero(t *testing.T) {
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, entryOf("col-1", "75335-1", 4))

	got, err := svc.Quantity(context.Background(), "sub-1", "col-1", "75335-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("quantity = %d; want 4", got)
	}

	got, err = svc.Quantity(context.Background(), "sub-1", "col-1", "untracked")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("quantity = %d; want 0 for untracked set", got)
	}
}

func TestIncrementQuantity_AddsDelta(t *testing.T) {
	var gotDelta int
	quantities := entryOf("col-1", "75335-1", 2)
	quantities.IncrementQuantityFunc = func(_ context.Context, setNum, collectionID string, delta int) error {
		gotDelta = delta
		return nil
	}
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, quantities)

	if err := svc.IncrementQuantity(context.Background(), "sub-1", "col-1", "75335-1", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDelta != 5 {
		t.Errorf("delta = %d; want 5", gotDelta)
	}
}

func TestIncrementQuantity_MissingEntryErrors(t *testing.T) {
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, entryOf("col-1", "other", 1))

	err := svc.IncrementQuantity(context.Background(), "sub-1", "col-1", "75335-1", 1)
	if !errors.Is(err, service.ErrSetNotInCollection) {
		t.Fatalf("error = %v; want ErrSetNotInCollection", err)
	}
}

func TestIncrementQuantity_RejectsNegativeDelta(t *testing.T) {
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, entryOf("col-1", "75335-1", 2))

	err := svc.IncrementQuantity(context.Background(), "sub-1", "col-1", "75335-1", -1)
	if !errors.Is(err, service.ErrInvalidQuantity) {
		t.Fatalf("error = %v; want ErrInvalidQuantity", err)
	}
}

func TestUpdateQuantity_Overwrites(t *testing.T) {
	var gotQuantity int
	quantities := entryOf("col-1", "75335-1", 2)
	quantities.SetQuantityValueFunc = func(_ context.Context, setNum, collectionID string, quantity int) error {
		gotQuantity = quantity
		return nil
	}
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, quantities)

	if err := svc.UpdateQuantity(context.Background(), "sub-1", "col-1", "75335-1", 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuantity != 9 {
		t.Errorf("quantity = %d; want 9", gotQuantity)
	}
}

func TestUpdateQuantity_AbsentEntryIsSilentNoop(t *testing.T) {
	quantities := entryOf("col-1", "other", 1)
	quantities.SetQuantityValueFunc = func(context.Context, string, string, int) error {
		t.Error("no patch must be issued for an absent entry")
		return nil
	}
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, quantities)

	if err := svc.UpdateQuantity(context.Background(), "sub-1", "col-1", "75335-1", 9); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
}

func TestUpdateQuantity_RejectsNegative(t *testing.T) {
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, entryOf("col-1", "75335-1", 2))

	err := svc.UpdateQuantity(context.Background(), "sub-1", "col-1", "75335-1", -3)
	if !errors.Is(err, service.ErrInvalidQuantity) {
		t.Fatalf("error = %v; want ErrInvalidQuantity", err)
	}
}

func TestRemoveSet_DecrementsAboveOne(t *testing.T) {
	var gotDelta int
	quantities := entryOf("col-1", "75335-1", 3)
	quantities.IncrementQuantityFunc = func(_ context.Context, setNum, collectionID string, delta int) error {
		gotDelta = delta
		return nil
	}
	sets := &mockSetRepo{
		DeleteSetInCollectionFunc: func(context.Context, string, string) error {
			t.Error("set rows must stay while copies remain")
			return nil
		},
	}
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), sets, quantities)

	if err := svc.RemoveSet(context.Background(), "sub-1", "col-1", "75335-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDelta != -1 {
		t.Errorf("delta = %d; want -1", gotDelta)
	}
}

func TestRemoveSet_LastCopyDeletesEntryAndSet(t *testing.T) {
	var deletedEntry, deletedSet bool
	quantities := entryOf("col-1", "75335-1", 1)
	quantities.DeleteQuantityFunc = func(_ context.Context, setNum, collectionID string) error {
		deletedEntry = setNum == "75335-1" && collectionID == "col-1"
		return nil
	}
	sets := &mockSetRepo{
		DeleteSetInCollectionFunc: func(_ context.Context, setNum, collectionID string) error {
			// Deletion must stay scoped to this collection.
			deletedSet = setNum == "75335-1" && collectionID == "col-1"
			return nil
		},
	}
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), sets, quantities)

	if err := svc.RemoveSet(context.Background(), "sub-1", "col-1", "75335-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deletedEntry {
		t.Error("expected quantity entry to be deleted")
	}
	if !deletedSet {
		t.Error("expected set rows to be deleted, scoped to the collection")
	}
}

func TestRemoveSet_MissingEntry(t *testing.T) {
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, entryOf("col-1", "other", 1))

	err := svc.RemoveSet(context.Background(), "sub-1", "col-1", "75335-1")
	if !errors.Is(err, service.ErrSetNotInCollection) {
		t.Fatalf("error = %v; want ErrSetNotInCollection", err)
	}
}

func TestQuantityOps_GateOtherOwners(t *testing.T) {
	svc := service.NewQuantityService(ownedBy("sub-1", "col-1"), &mockSetRepo{}, entryOf("col-1", "75335-1", 1))

	if _, err := svc.QuantitiesForCollection(context.Background(), "sub-2", "col-1"); !errors.Is(err, service.ErrCollectionNotFound) {
		t.Errorf("list: error = %v; want ErrCollectionNotFound", err)
	}
	if _, err := svc.Quantity(context.Background(), "sub-2", "col-1", "75335-1"); !errors.Is(err, service.ErrCollectionNotFound) {
		t.Errorf("get: error = %v; want ErrCollectionNotFound", err)
	}
	if err := svc.RemoveSet(context.Background(), "sub-2", "col-1", "75335-1"); !errors.Is(err, service.ErrCollectionNotFound) {
		t.Errorf("remove: error = %v; want ErrCollectionNotFound", err)
	}
	if err := svc.UpdateQuantity(context.Background(), "", "col-1", "75335-1", 1); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("update without identity: error = %v; want ErrUnauthorized", err)
	}
}
