package hospitals

import (
	"context"
	"stroke-risk-service/internal/domain"
	"sync"
)

// MockHospitalFinder returns a fixed feature list and records every search.
type MockHospitalFinder struct {
	mu       sync.Mutex
	features []domain.RawFeature
	Err      error
	searches []Search
}

type Search struct {
	At           domain.Coordinates
	RadiusMeters int
}

func NewMockHospitalFinder(features []domain.RawFeature) *MockHospitalFinder {
	return &MockHospitalFinder{features: features}
}

func (m *MockHospitalFinder) FindNearby(ctx context.Context, at domain.Coordinates, radiusMeters int) ([]domain.RawFeature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, Search{At: at, RadiusMeters: radiusMeters})

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.RawFeature, len(m.features))
	copy(out, m.features)
	return out, nil
}

func (m *MockHospitalFinder) Searches() []Search {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Search, len(m.searches))
	copy(out, m.searches)
	return out
}
