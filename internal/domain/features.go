package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidFeatures = errors.New("invalid feature vector")

// FeatureNames is the column order the classifier was trained with.
// Changing it silently corrupts predictions.
var FeatureNames = [FeatureCount]string{
	"gender",
	"age",
	"hypertension",
	"heart_disease",
	"ever_married",
	"work_type",
	"residence_type",
	"avg_glucose_level",
	"bmi",
	"smoking_status",
}

const FeatureCount = 10

// Health metrics collected from the user, one field per model input.
// Categorical fields are label-encoded the same way the training data was.
type FeatureVector struct {
	Gender          float64 // 0=female, 1=male, 2=other
	Age             float64
	Hypertension    float64
	HeartDisease    float64
	EverMarried     float64
	WorkType        float64 // 0..4
	ResidenceType   float64 // 0=rural, 1=urban
	AvgGlucoseLevel float64 // mg/dL
	BMI             float64
	SmokingStatus   float64 // 0..3
}

// Values returns the fields in FeatureNames order.
func (f FeatureVector) Values() [FeatureCount]float64 {
	return [FeatureCount]float64{
		f.Gender,
		f.Age,
		f.Hypertension,
		f.HeartDisease,
		f.EverMarried,
		f.WorkType,
		f.ResidenceType,
		f.AvgGlucoseLevel,
		f.BMI,
		f.SmokingStatus,
	}
}

type featureRange struct {
	min, max float64
	integral bool
}

var featureRanges = [FeatureCount]featureRange{
	{0, 2, true},
	{0, 120, false},
	{0, 1, true},
	{0, 1, true},
	{0, 1, true},
	{0, 4, true},
	{0, 1, true},
	{0, 500, false},
	{10, 60, false},
	{0, 3, true},
}

// Validate checks every field against the domain the model was trained on.
// All violations are reported in a single error wrapping ErrInvalidFeatures.
func (f FeatureVector) Validate() error {
	var problems []string
	for i, v := range f.Values() {
		r := featureRanges[i]
		name := FeatureNames[i]

		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			problems = append(problems, fmt.Sprintf("%s must be a finite number", name))
		case v < r.min || v > r.max:
			problems = append(problems, fmt.Sprintf("%s must be between %g and %g, got %g", name, r.min, r.max, v))
		case r.integral && v != math.Trunc(v):
			problems = append(problems, fmt.Sprintf("%s must be a whole number, got %g", name, v))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidFeatures, strings.Join(problems, "; "))
	}
	return nil
}
