package ports

import (
	"context"
	"stroke-risk-service/internal/domain"
)

// Contract for the pre-trained stroke risk model.
// Implementations must be deterministic for a given vector.
type Classifier interface {
	Classify(ctx context.Context, features domain.FeatureVector) (domain.Label, error)
}
