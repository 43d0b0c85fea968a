package ports

import (
	"context"
	"stroke-risk-service/internal/domain"
)

// Persistent store for resolved geocoding lookups.
// Keys are expected to be normalized by the caller.
type GeocodeCache interface {
	// Return the cached coordinates and whether the key was present.
	Get(ctx context.Context, key string) (domain.Coordinates, bool, error)
	// Store a resolved lookup, replacing any previous value.
	Put(ctx context.Context, key string, c domain.Coordinates) error
}
