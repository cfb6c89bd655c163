// Package repository provides PostgreSQL persistence for users, collections,
// sets and set quantities.
package repository

import (
	"context"
	"database/sql"
)

// PostgresUserRepository implements user provisioning against a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given
// database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// EnsureUser creates the identity-mirror row for the given subject if it does
// not already exist. Repeated calls for the same subject are no-ops; the row is
// never mutated after creation.
func (r *PostgresUserRepository) EnsureUser(ctx context.Context, userID, username, email string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (user_id, username, email) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		userID, username, email,
	)
	return err
}
