package hospitals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/platform/httpclient"
	"stroke-risk-service/internal/platform/obs"
	"stroke-risk-service/internal/ports"
	"strings"
	"time"
)

// Number of features requested from Overpass per search.
const DefaultMaxResults = 10

// OverpassFinder implements ports.HospitalFinder using the Overpass API.
//
// One search is one GET to the interpreter. Ways and relations are returned
// with a centroid computed by Overpass ("out center"); nothing is computed
// locally. Failures are reported as errors so callers can tell them apart
// from a search that legitimately found nothing.
type OverpassFinder struct {
	session    *http.Client
	endpoint   string
	maxResults int
}

type OverpassConfig struct {
	Endpoint   string
	Timeout    time.Duration
	MaxResults int
}

func NewOverpassFinder(cfg OverpassConfig) (*OverpassFinder, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("overpass endpoint is empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &OverpassFinder{
		session:    &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		maxResults: maxResults,
	}, nil
}

// BuildQuery returns the Overpass QL selecting hospital nodes, ways and
// relations within radiusMeters of at.
func BuildQuery(at domain.Coordinates, radiusMeters int, maxResults int) string {
	around := fmt.Sprintf("(around:%d,%s,%s)",
		radiusMeters,
		strconv.FormatFloat(at.Lat, 'f', -1, 64),
		strconv.FormatFloat(at.Lon, 'f', -1, 64),
	)

	var b strings.Builder
	b.WriteString("[out:json];\n(\n")
	for _, kind := range []string{"node", "way", "relation"} {
		fmt.Fprintf(&b, "  %s[\"amenity\"=\"hospital\"]%s;\n", kind, around)
	}
	fmt.Fprintf(&b, ");\nout center %d;\n", maxResults)
	return b.String()
}

type interpreterResponse struct {
	Elements *[]domain.RawFeature `json:"elements"`
	// Set by Overpass when the query hit a runtime error such as a timeout.
	Remark string `json:"remark"`
}

// FindNearby returns raw hospital features in the order Overpass produced them.
func (o *OverpassFinder) FindNearby(
	ctx context.Context,
	at domain.Coordinates,
	radiusMeters int,
) (_ []domain.RawFeature, err error) {
	defer obs.Time(ctx, "overpass.FindNearby")(&err)

	if radiusMeters <= 0 {
		radiusMeters = ports.DefaultSearchRadiusMeters
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("data", BuildQuery(at, radiusMeters, o.maxResults))
	req.URL.RawQuery = q.Encode()

	resp, err := httpclient.Do(o.session, req)
	if err != nil {
		return nil, fmt.Errorf("execute overpass query: %w", err)
	}
	defer resp.Body.Close()

	var decoded interpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w: %v", ports.ErrMalformedResponse, err)
	}

	if decoded.Elements == nil {
		return nil, fmt.Errorf("overpass response has no elements: %w", ports.ErrMalformedResponse)
	}

	elements := *decoded.Elements
	if len(elements) == 0 && strings.TrimSpace(decoded.Remark) != "" {
		return nil, fmt.Errorf("overpass runtime error: %s", strings.TrimSpace(decoded.Remark))
	}

	return elements, nil
}
