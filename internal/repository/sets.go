package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/brickstash/brickstash/internal/models"
)

// PostgresSetRepository implements set persistence against a PostgreSQL database.
type PostgresSetRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSetRepository creates a new PostgresSetRepository using the
// provided *sql.DB.
func NewPostgresSetRepository(db *sql.DB) *PostgresSetRepository {
	return &PostgresSetRepository{DB: db}
}

// InsertSet stores a new set row. A nil CollectionID is stored as NULL,
// marking the set as unfiled.
func (r *PostgresSetRepository) InsertSet(ctx context.Context, set models.Set) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sets (id, collection_id, owner_id, name, num_parts, set_img_url, set_num, set_url, theme_id, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, set.ID, set.CollectionID, set.OwnerID, set.Name, set.NumParts, set.SetImgURL, set.SetNum, set.SetURL, set.ThemeID, set.Year)
	if err != nil {
		return fmt.Errorf("InsertSet: %w", err)
	}
	return nil
}

// SetsByCollection fetches all set rows belonging to the given collection.
func (r *PostgresSetRepository) SetsByCollection(ctx context.Context, collectionID string) ([]models.Set, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, collection_id, owner_id, name, num_parts, set_img_url, set_num, set_url, theme_id, year
		FROM sets WHERE collection_id = $1
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("SetsByCollection: %w", err)
	}
	defer rows.Close()

	var sets []models.Set
	for rows.Next() {
		var set models.Set
		if err := rows.Scan(&set.ID, &set.CollectionID, &set.OwnerID, &set.Name, &set.NumParts,
			&set.SetImgURL, &set.SetNum, &set.SetURL, &set.ThemeID, &set.Year); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// DeleteSetInCollection removes the set rows for the given set number, scoped
// to one collection. The scoping keeps removal of a last copy in one
// collection from touching the same set number tracked in another.
func (r *PostgresSetRepository) DeleteSetInCollection(ctx context.Context, setNum, collectionID string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM sets WHERE set_num = $1 AND collection_id = $2
	`, setNum, collectionID)
	if err != nil {
		return fmt.Errorf("DeleteSetInCollection: %w", err)
	}
	return nil
}

// DeleteSetsByCollection removes every set row belonging to the given
// collection. Used by the collection deletion cascade.
func (r *PostgresSetRepository) DeleteSetsByCollection(ctx context.Context, collectionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sets WHERE collection_id = $1`, collectionID)
	if err != nil {
		return fmt.Errorf("DeleteSetsByCollection: %w", err)
	}
	return nil
}
