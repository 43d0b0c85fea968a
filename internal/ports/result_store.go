package ports

import (
	"context"
	"stroke-risk-service/internal/domain"
)

// ResultStore holds the current prediction result per session.
// Put replaces any previous result for the session wholesale.
type ResultStore interface {
	Get(ctx context.Context, sessionID string) (domain.PredictionResult, bool, error)
	Put(ctx context.Context, sessionID string, res domain.PredictionResult) error
}
