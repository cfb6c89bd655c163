package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brickstash/brickstash/internal/models"
)

// PostgresQuantityRepository implements set-quantity persistence against a
// PostgreSQL database.
type PostgresQuantityRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresQuantityRepository creates a new PostgresQuantityRepository using
// the provided *sql.DB.
func NewPostgresQuantityRepository(db *sql.DB) *PostgresQuantityRepository {
	return &PostgresQuantityRepository{DB: db}
}

// QuantityBySetAndCollection fetches the quantity entry for the composite
// (set number, collection) key. A missing entry is reported as (nil, nil).
func (r *PostgresQuantityRepository) QuantityBySetAndCollection(ctx context.Context, setNum, collectionID string) (*models.SetQuantity, error) {
	var q models.SetQuantity
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, collection_id, set_num, quantity, condition, owner_id
		FROM set_quantities WHERE set_num = $1 AND collection_id = $2
	`, setNum, collectionID).Scan(&q.ID, &q.CollectionID, &q.SetNum, &q.Quantity, &q.Condition, &q.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("QuantityBySetAndCollection: %w", err)
	}
	return &q, nil
}

// QuantitiesByCollection fetches all quantity entries for the given collection.
func (r *PostgresQuantityRepository) QuantitiesByCollection(ctx context.Context, collectionID string) ([]models.SetQuantity, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, collection_id, set_num, quantity, condition, owner_id
		FROM set_quantities WHERE collection_id = $1
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("QuantitiesByCollection: %w", err)
	}
	defer rows.Close()

	var quantities []models.SetQuantity
	for rows.Next() {
		var q models.SetQuantity
		if err := rows.Scan(&q.ID, &q.CollectionID, &q.SetNum, &q.Quantity, &q.Condition, &q.OwnerID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		quantities = append(quantities, q)
	}
	return quantities, rows.Err()
}

// InsertQuantity stores a new quantity entry. The (set_num, collection_id)
// unique constraint rejects duplicates at the store level.
func (r *PostgresQuantityRepository) InsertQuantity(ctx context.Context, q models.SetQuantity) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO set_quantities (id, collection_id, set_num, quantity, condition, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, q.ID, q.CollectionID, q.SetNum, q.Quantity, q.Condition, q.OwnerID)
	if err != nil {
		return fmt.Errorf("InsertQuantity: %w", err)
	}
	return nil
}

// IncrementQuantity adds delta to the quantity field of the entry for the
// composite key in a single patch.
func (r *PostgresQuantityRepository) IncrementQuantity(ctx context.Context, setNum, collectionID string, delta int) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE set_quantities SET quantity = quantity + $1 WHERE set_num = $2 AND collection_id = $3
	`, delta, setNum, collectionID)
	if err != nil {
		return fmt.Errorf("IncrementQuantity: %w", err)
	}
	return nil
}

// SetQuantityValue overwrites the quantity field of the entry for the
// composite key.
func (r *PostgresQuantityRepository) SetQuantityValue(ctx context.Context, setNum, collectionID string, quantity int) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE set_quantities SET quantity = $1 WHERE set_num = $2 AND collection_id = $3
	`, quantity, setNum, collectionID)
	if err != nil {
		return fmt.Errorf("SetQuantityValue: %w", err)
	}
	return nil
}

// DeleteQuantity removes the quantity entry for the composite key.
func (r *PostgresQuantityRepository) DeleteQuantity(ctx context.Context, setNum, collectionID string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM set_quantities WHERE set_num = $1 AND collection_id = $2
	`, setNum, collectionID)
	if err != nil {
		return fmt.Errorf("DeleteQuantity: %w", err)
	}
	return nil
}

// DeleteQuantitiesByCollection removes every quantity entry for the given
// collection. Used by the collection deletion cascade.
func (r *PostgresQuantityRepository) DeleteQuantitiesByCollection(ctx context.Context, collectionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM set_quantities WHERE collection_id = $1`, collectionID)
	if err != nil {
		return fmt.Errorf("DeleteQuantitiesByCollection: %w", err)
	}
	return nil
}
