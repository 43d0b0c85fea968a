package ports

import (
	"context"
	"stroke-risk-service/internal/domain"
)

// Search radius used when the caller does not provide one.
const DefaultSearchRadiusMeters = 5000

// Contract for discovering hospital-tagged map features around a point.
// A nil error with an empty slice means the search ran and found nothing.
type HospitalFinder interface {
	FindNearby(ctx context.Context, at domain.Coordinates, radiusMeters int) ([]domain.RawFeature, error)
}
