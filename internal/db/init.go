package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    username TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS collections (
    id UUID PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users(user_id),
    name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_collections_owner ON collections(owner_id);

CREATE TABLE IF NOT EXISTS sets (
    id UUID PRIMARY KEY,
    collection_id UUID,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    num_parts INT NOT NULL DEFAULT 0,
    set_img_url TEXT NOT NULL DEFAULT '',
    set_num TEXT NOT NULL,
    set_url TEXT NOT NULL DEFAULT '',
    theme_id INT NOT NULL DEFAULT 0,
    year INT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sets_theme ON sets(theme_id);
CREATE INDEX IF NOT EXISTS idx_sets_year ON sets(year);
CREATE INDEX IF NOT EXISTS idx_sets_set_num ON sets(set_num);
CREATE INDEX IF NOT EXISTS idx_sets_collection ON sets(collection_id);

CREATE TABLE IF NOT EXISTS set_quantities (
    id UUID PRIMARY KEY,
    collection_id UUID NOT NULL,
    set_num TEXT NOT NULL,
    quantity INT NOT NULL,
    condition TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    UNIQUE (set_num, collection_id)
);
CREATE INDEX IF NOT EXISTS idx_set_quantities_collection ON set_quantities(collection_id);
CREATE INDEX IF NOT EXISTS idx_set_quantities_set_num ON set_quantities(set_num);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
