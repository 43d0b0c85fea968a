package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/platform/obs"
	"strings"
)

// SQLite backed cache mapping lookup keys to geographic coordinates.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

func (s *SqliteGeocodeCache) Get(ctx context.Context, key string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Coordinates{}, false, nil
	}

	var c domain.Coordinates
	err = s.DB.QueryRowContext(ctx, `
	SELECT
		lat,
		lon
	FROM geocode_cache
	WHERE cache_key = ?;
	`, key).Scan(&c.Lat, &c.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

func (s *SqliteGeocodeCache) Put(ctx context.Context, key string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert geocode cache: empty key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO geocode_cache (
		cache_key,
		lat,
		lon,
		updated_at
	)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP);
	`, key, c.Lat, c.Lon)
	if err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}

	return nil
}
