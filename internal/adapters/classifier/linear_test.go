package classifier

import (
	"context"
	"os"
	"path/filepath"
	"stroke-risk-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	highRisk = domain.FeatureVector{
		Gender: 1, Age: 80, Hypertension: 1, HeartDisease: 1, EverMarried: 1,
		WorkType: 2, ResidenceType: 1, AvgGlucoseLevel: 228.69, BMI: 36.6, SmokingStatus: 1,
	}
	lowRisk = domain.FeatureVector{
		Gender: 0, Age: 25, Hypertension: 0, HeartDisease: 0, EverMarried: 0,
		WorkType: 4, ResidenceType: 0, AvgGlucoseLevel: 85, BMI: 22, SmokingStatus: 0,
	}
)

func loadTestModel(t *testing.T) *LinearModel {
	t.Helper()
	m, err := LoadLinearModel(filepath.Join("testdata", "stroke_model.json"))
	require.NoError(t, err)
	return m
}

func TestLinearModelClassify(t *testing.T) {
	m := loadTestModel(t)
	ctx := context.Background()

	label, err := m.Classify(ctx, highRisk)
	require.NoError(t, err)
	assert.Equal(t, domain.LabelRisk, label)

	label, err = m.Classify(ctx, lowRisk)
	require.NoError(t, err)
	assert.Equal(t, domain.LabelNoRisk, label)
}

func TestLinearModelIsDeterministic(t *testing.T) {
	m := loadTestModel(t)
	ctx := context.Background()

	for _, f := range []domain.FeatureVector{highRisk, lowRisk} {
		first, err := m.Classify(ctx, f)
		require.NoError(t, err)
		assert.True(t, first.Valid())

		for i := 0; i < 5; i++ {
			again, err := m.Classify(ctx, f)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestLinearModelRejectsInvalidFeatures(t *testing.T) {
	m := loadTestModel(t)

	bad := highRisk
	bad.WorkType = 9

	_, err := m.Classify(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidFeatures)
}

func TestLoadLinearModelRejectsReorderedFeatures(t *testing.T) {
	_, err := LoadLinearModel(filepath.Join("testdata", "reordered_model.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column order")
}

func TestLoadLinearModelMissingFile(t *testing.T) {
	_, err := LoadLinearModel(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadLinearModelValidation(t *testing.T) {
	names := domain.FeatureNames[:]
	ten := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	threshold := 1.5

	tests := []struct {
		name string
		a    linearArtifact
	}{
		{"wrong format", linearArtifact{Format: "pickle", Features: names, Weights: ten}},
		{"short weights", linearArtifact{Format: LinearModelFormat, Features: names, Weights: ten[:3]}},
		{"short features", linearArtifact{Format: LinearModelFormat, Features: names[:9], Weights: ten}},
		{"bad mean", linearArtifact{Format: LinearModelFormat, Features: names, Weights: ten, Mean: ten[:2]}},
		{"zero scale", linearArtifact{Format: LinearModelFormat, Features: names, Weights: ten, Scale: make([]float64, 10)}},
		{"threshold", linearArtifact{Format: LinearModelFormat, Features: names, Weights: ten, Threshold: &threshold}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLinearModel(tt.a)
			assert.Error(t, err)
		})
	}
}
