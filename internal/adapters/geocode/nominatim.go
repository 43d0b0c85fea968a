package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/platform/obs"
	"stroke-risk-service/internal/ports"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// NominatimGeocoder implements ports.Geocoder against the OpenStreetMap
// Nominatim search API.
//
// Each Resolve issues exactly one request; there is no retry. Requests are
// paced by a shared limiter because the public instance allows at most one
// request per second per application.
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Requests per second; zero or negative disables pacing.
	RatePerSecond float64
}

func NewNominatimGeocoder(cfg NominatimConfig) (*NominatimGeocoder, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("nominatim base url is empty")
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, errors.New("nominatim user agent is empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	return &NominatimGeocoder{
		session:   &http.Client{Timeout: timeout},
		baseURL:   base,
		userAgent: cfg.UserAgent,
		limiter:   limiter,
	}, nil
}

// Nominatim encodes coordinates as JSON strings; json.Number accepts both
// quoted and bare numbers.
type searchResult struct {
	Lat         json.Number `json:"lat"`
	Lon         json.Number `json:"lon"`
	DisplayName string      `json:"display_name"`
}

// Resolve looks up postalCode restricted to country and returns the first match.
func (n *NominatimGeocoder) Resolve(
	ctx context.Context,
	postalCode string,
	country string,
) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Resolve")(&err)

	if err := n.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim rate limit wait: %w", err)
	}

	req, err := n.newRequest(ctx, n.baseURL+"/search")
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim search request: %w", err)
	}

	q := req.URL.Query()
	q.Set("postalcode", postalCode)
	q.Set("country", country)
	q.Set("format", "json")
	req.URL.RawQuery = q.Encode()

	resp, err := n.do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode search response: %w: %v", ports.ErrMalformedResponse, err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("pincode %q: %w", postalCode, ports.ErrNoMatch)
	}

	first := decoded[0]
	lat, err := first.Lat.Float64()
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lat %q: %w", first.Lat, ports.ErrMalformedResponse)
	}
	lon, err := first.Lon.Float64()
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lon %q: %w", first.Lon, ports.ErrMalformedResponse)
	}

	c := domain.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("coordinates out of range %v: %w", c, ports.ErrMalformedResponse)
	}

	return c, nil
}
