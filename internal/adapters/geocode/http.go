package geocode

import (
	"context"
	"fmt"
	"net/http"
	"stroke-risk-service/internal/platform/httpclient"
)

func (n *NominatimGeocoder) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Nominatim rejects anonymous clients; the policy requires an identifying agent.
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (n *NominatimGeocoder) do(req *http.Request) (*http.Response, error) {
	return httpclient.Do(n.session, req)
}
