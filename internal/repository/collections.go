package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brickstash/brickstash/internal/models"
)

// PostgresCollectionRepository implements collection persistence against a
// PostgreSQL database.
type PostgresCollectionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCollectionRepository creates a new PostgresCollectionRepository
// using the provided *sql.DB.
func NewPostgresCollectionRepository(db *sql.DB) *PostgresCollectionRepository {
	return &PostgresCollectionRepository{DB: db}
}

// CollectionByID fetches a single collection by its ID. A missing row is
// reported as (nil, nil) so callers can fold absence and ownership mismatch
// into the same outcome.
func (r *PostgresCollectionRepository) CollectionByID(ctx context.Context, id string) (*models.Collection, error) {
	var col models.Collection
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, owner_id, name, created_at FROM collections WHERE id = $1
	`, id).Scan(&col.ID, &col.OwnerID, &col.Name, &col.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("CollectionByID: %w", err)
	}
	return &col, nil
}

// CollectionsByOwner fetches all collections belonging to the given owner.
func (r *PostgresCollectionRepository) CollectionsByOwner(ctx context.Context, ownerID string) ([]models.Collection, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, owner_id, name, created_at FROM collections WHERE owner_id = $1 ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("CollectionsByOwner: %w", err)
	}
	defer rows.Close()

	var cols []models.Collection
	for rows.Next() {
		var col models.Collection
		if err := rows.Scan(&col.ID, &col.OwnerID, &col.Name, &col.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// InsertCollection stores a new collection row.
func (r *PostgresCollectionRepository) InsertCollection(ctx context.Context, col models.Collection) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO collections (id, owner_id, name, created_at) VALUES ($1, $2, $3, $4)
	`, col.ID, col.OwnerID, col.Name, col.CreatedAt)
	if err != nil {
		return fmt.Errorf("InsertCollection: %w", err)
	}
	return nil
}

// DeleteCollection removes the collection row itself. Deleting an absent row
// is a no-op, which keeps cascade retries safe.
func (r *PostgresCollectionRepository) DeleteCollection(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteCollection: %w", err)
	}
	return nil
}
