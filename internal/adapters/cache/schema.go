package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DOUBLE PRECISION keeps full float64 coordinates in PostgreSQL and maps to
// REAL affinity in SQLite, so the same DDL serves both backends.
const createGeocodeCacheQuery = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	cache_key TEXT PRIMARY KEY,
	lat DOUBLE PRECISION NOT NULL,
	lon DOUBLE PRECISION NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the geocode cache table if it does not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, createGeocodeCacheQuery); err != nil {
		return fmt.Errorf("init schema: create geocode_cache: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
