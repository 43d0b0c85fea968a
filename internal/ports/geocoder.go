package ports

import (
	"context"
	"errors"
	"stroke-risk-service/internal/domain"
)

var (
	// The geocoder answered but had no match for the query.
	ErrNoMatch = errors.New("no geocoding match")
	// The upstream response could not be interpreted.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// Contract for resolving a postal code to coordinates.
// Any returned error means the location is unresolved.
type Geocoder interface {
	Resolve(ctx context.Context, postalCode string, country string) (domain.Coordinates, error)
}
