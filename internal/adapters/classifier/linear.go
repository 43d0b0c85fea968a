package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"stroke-risk-service/internal/domain"
)

const (
	LinearModelFormat = "logistic-regression/v1"
	DefaultModelFile  = "stroke_model.json"
)

// Serialized form of a trained logistic regression.
// Mean and Scale, when present, are the per-feature standardization fitted
// during training and are applied before the dot product.
type linearArtifact struct {
	Format    string    `json:"format"`
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Mean      []float64 `json:"mean,omitempty"`
	Scale     []float64 `json:"scale,omitempty"`
	Threshold *float64  `json:"threshold,omitempty"`
}

// LinearModel is a frozen logistic regression loaded once at startup.
// It is immutable after loading and safe for concurrent use.
type LinearModel struct {
	weights   [domain.FeatureCount]float64
	mean      [domain.FeatureCount]float64
	scale     [domain.FeatureCount]float64
	intercept float64
	threshold float64
}

// DefaultModelPath returns the artifact path next to the running executable.
func DefaultModelPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), DefaultModelFile), nil
}

// LoadLinearModel reads and validates a model artifact.
// The artifact's feature list must match domain.FeatureNames exactly, in order.
func LoadLinearModel(path string) (*LinearModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", path, err)
	}

	var a linearArtifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("load model %q: parse json: %w", path, err)
	}

	m, err := newLinearModel(a)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", path, err)
	}
	return m, nil
}

func newLinearModel(a linearArtifact) (*LinearModel, error) {
	if a.Format != LinearModelFormat {
		return nil, fmt.Errorf("unsupported format %q (want %q)", a.Format, LinearModelFormat)
	}

	if len(a.Features) != domain.FeatureCount {
		return nil, fmt.Errorf("model has %d features, want %d", len(a.Features), domain.FeatureCount)
	}
	for i, name := range a.Features {
		if name != domain.FeatureNames[i] {
			return nil, fmt.Errorf("feature %d is %q, want %q: column order differs from training order", i, name, domain.FeatureNames[i])
		}
	}

	if len(a.Weights) != domain.FeatureCount {
		return nil, fmt.Errorf("model has %d weights, want %d", len(a.Weights), domain.FeatureCount)
	}
	if len(a.Mean) != 0 && len(a.Mean) != domain.FeatureCount {
		return nil, fmt.Errorf("model has %d means, want %d", len(a.Mean), domain.FeatureCount)
	}
	if len(a.Scale) != 0 && len(a.Scale) != domain.FeatureCount {
		return nil, fmt.Errorf("model has %d scales, want %d", len(a.Scale), domain.FeatureCount)
	}

	m := &LinearModel{intercept: a.Intercept, threshold: 0.5}
	if a.Threshold != nil {
		if *a.Threshold <= 0 || *a.Threshold >= 1 {
			return nil, fmt.Errorf("threshold must be in (0,1), got %g", *a.Threshold)
		}
		m.threshold = *a.Threshold
	}

	for i := 0; i < domain.FeatureCount; i++ {
		m.weights[i] = a.Weights[i]
		m.scale[i] = 1
		if len(a.Mean) > 0 {
			m.mean[i] = a.Mean[i]
		}
		if len(a.Scale) > 0 {
			if a.Scale[i] == 0 {
				return nil, fmt.Errorf("scale for %q is zero", domain.FeatureNames[i])
			}
			m.scale[i] = a.Scale[i]
		}
	}

	return m, nil
}

// Probability returns the model's positive-class probability for features.
func (m *LinearModel) Probability(features domain.FeatureVector) float64 {
	z := m.intercept
	for i, v := range features.Values() {
		z += m.weights[i] * (v - m.mean[i]) / m.scale[i]
	}
	return 1 / (1 + math.Exp(-z))
}

func (m *LinearModel) Classify(ctx context.Context, features domain.FeatureVector) (domain.Label, error) {
	if m == nil {
		return domain.LabelNoRisk, errors.New("classify: model is not loaded")
	}
	if err := features.Validate(); err != nil {
		return domain.LabelNoRisk, fmt.Errorf("classify: %w", err)
	}

	if m.Probability(features) >= m.threshold {
		return domain.LabelRisk, nil
	}
	return domain.LabelNoRisk, nil
}
