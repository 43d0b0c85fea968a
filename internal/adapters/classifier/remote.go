package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/platform/httpclient"
	"stroke-risk-service/internal/platform/obs"
	"strings"
	"time"
)

// RemoteClassifier delegates classification to an inference service that
// hosts the trained model.
type RemoteClassifier struct {
	endpoint string
	client   *http.Client
}

func NewRemoteClassifier(endpoint string, timeout time.Duration) (*RemoteClassifier, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("inference endpoint is empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &RemoteClassifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type inferenceRequest struct {
	FeatureNames []string  `json:"feature_names"`
	Features     []float64 `json:"features"`
}

type inferenceResponse struct {
	Label *int `json:"label"`
}

func (c *RemoteClassifier) Classify(ctx context.Context, features domain.FeatureVector) (_ domain.Label, err error) {
	defer obs.Time(ctx, "inference.Classify")(&err)

	if err := features.Validate(); err != nil {
		return domain.LabelNoRisk, fmt.Errorf("classify: %w", err)
	}

	values := features.Values()
	body, err := json.Marshal(inferenceRequest{
		FeatureNames: domain.FeatureNames[:],
		Features:     values[:],
	})
	if err != nil {
		return domain.LabelNoRisk, fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.LabelNoRisk, fmt.Errorf("create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.Do(c.client, req)
	if err != nil {
		return domain.LabelNoRisk, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.LabelNoRisk, fmt.Errorf("decode inference response: %w", err)
	}
	if decoded.Label == nil {
		return domain.LabelNoRisk, errors.New("inference response has no label")
	}

	label := domain.Label(*decoded.Label)
	if !label.Valid() {
		return domain.LabelNoRisk, fmt.Errorf("inference returned label %d, want 0 or 1", *decoded.Label)
	}
	return label, nil
}
