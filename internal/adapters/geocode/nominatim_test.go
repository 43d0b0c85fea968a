package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/platform/httpclient"
	"stroke-risk-service/internal/ports"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, h http.HandlerFunc, timeout time.Duration) *NominatimGeocoder {
	t.Helper()
	return newPacedGeocoder(t, h, timeout, 0)
}

func newPacedGeocoder(t *testing.T, h http.HandlerFunc, timeout time.Duration, perSecond float64) *NominatimGeocoder {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewNominatimGeocoder(NominatimConfig{
		BaseURL:       srv.URL,
		UserAgent:     "HeartStrokePrediction/1.0",
		Timeout:       timeout,
		RatePerSecond: perSecond,
	})
	require.NoError(t, err)
	return g
}

func TestNominatimResolve(t *testing.T) {
	var gotPath, gotAgent string
	var gotQuery map[string]string

	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		gotQuery = map[string]string{
			"postalcode": r.URL.Query().Get("postalcode"),
			"country":    r.URL.Query().Get("country"),
			"format":     r.URL.Query().Get("format"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lat": "12.9762516", "lon": "77.6033013", "display_name": "Bengaluru, Karnataka, 560001, India"},
			{"lat": "0", "lon": "0"}
		]`))
	}, time.Second)

	c, err := g.Resolve(context.Background(), "560001", "India")
	require.NoError(t, err)

	assert.Equal(t, domain.Coordinates{Lat: 12.9762516, Lon: 77.6033013}, c)
	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "HeartStrokePrediction/1.0", gotAgent)
	assert.Equal(t, map[string]string{"postalcode": "560001", "country": "India", "format": "json"}, gotQuery)
}

func TestNominatimResolveAcceptsNumericCoordinates(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat": 28.6328, "lon": 77.2197}]`))
	}, time.Second)

	c, err := g.Resolve(context.Background(), "110001", "India")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 28.6328, Lon: 77.2197}, c)
}

func TestNominatimResolveFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "empty result set",
			status: http.StatusOK,
			body:   `[]`,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ports.ErrNoMatch) },
		},
		{
			name:   "server error",
			status: http.StatusServiceUnavailable,
			body:   "busy",
			check: func(t *testing.T, err error) {
				var he *httpclient.StatusError
				require.True(t, errors.As(err, &he))
				assert.Equal(t, http.StatusServiceUnavailable, he.Code)
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>`,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ports.ErrMalformedResponse) },
		},
		{
			name:   "missing lat",
			status: http.StatusOK,
			body:   `[{"lon": "77.6"}]`,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ports.ErrMalformedResponse) },
		},
		{
			name:   "out of range",
			status: http.StatusOK,
			body:   `[{"lat": "123.0", "lon": "77.6"}]`,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ports.ErrMalformedResponse) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, time.Second)

			_, err := g.Resolve(context.Background(), "000000", "India")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestNominatimResolveTimeout(t *testing.T) {
	release := make(chan struct{})
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	start := time.Now()
	_, err := g.Resolve(context.Background(), "560001", "India")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNewNominatimGeocoderValidates(t *testing.T) {
	_, err := NewNominatimGeocoder(NominatimConfig{UserAgent: "x"})
	assert.Error(t, err)

	_, err = NewNominatimGeocoder(NominatimConfig{BaseURL: "http://localhost"})
	assert.Error(t, err)
}

func bengaluruHandler(hits *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[{"lat": "12.9762516", "lon": "77.6033013"}]`))
	}
}

func TestNominatimResolvePacesRequests(t *testing.T) {
	var hits atomic.Int32
	g := newPacedGeocoder(t, bengaluruHandler(&hits), time.Second, 20)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := g.Resolve(context.Background(), "560001", "India")
		require.NoError(t, err)
	}

	// Burst of one at 20/s: the second and third calls each wait ~50ms.
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	assert.Equal(t, int32(3), hits.Load())
}

func TestNominatimResolvePacingRespectsDeadline(t *testing.T) {
	var hits atomic.Int32
	g := newPacedGeocoder(t, bengaluruHandler(&hits), time.Second, 1)

	_, err := g.Resolve(context.Background(), "560001", "India")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = g.Resolve(ctx, "560001", "India")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.Equal(t, int32(1), hits.Load(), "a paced-out call must not reach the server")
}
