package geocode

import (
	"context"
	"fmt"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/ports"
	"sync"
)

// MockGeocoder resolves from a fixed table and counts calls.
// Unknown pincodes return ports.ErrNoMatch; Err, when set, is returned for every call.
type MockGeocoder struct {
	mu      sync.Mutex
	results map[string]domain.Coordinates
	calls   int
	Err     error
}

func NewMockGeocoder(results map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(results))
	for k, v := range results {
		m[k] = v
	}
	return &MockGeocoder{results: m}
}

func (m *MockGeocoder) Resolve(ctx context.Context, postalCode string, country string) (domain.Coordinates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.Err != nil {
		return domain.Coordinates{}, m.Err
	}

	c, ok := m.results[postalCode]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("pincode %q: %w", postalCode, ports.ErrNoMatch)
	}
	return c, nil
}

func (m *MockGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
