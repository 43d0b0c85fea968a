package classifier

import (
	"context"
	"stroke-risk-service/internal/domain"
	"sync"
)

// FixedClassifier returns the same label for every vector and counts calls.
type FixedClassifier struct {
	Label domain.Label
	Err   error

	mu    sync.Mutex
	calls int
}

func (f *FixedClassifier) Classify(ctx context.Context, features domain.FeatureVector) (domain.Label, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.Err != nil {
		return domain.LabelNoRisk, f.Err
	}
	return f.Label, nil
}

func (f *FixedClassifier) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
