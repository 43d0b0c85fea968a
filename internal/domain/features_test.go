package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func validFeatures() FeatureVector {
	return FeatureVector{
		Gender:          1,
		Age:             67,
		Hypertension:    0,
		HeartDisease:    1,
		EverMarried:     1,
		WorkType:        2,
		ResidenceType:   1,
		AvgGlucoseLevel: 228.69,
		BMI:             36.6,
		SmokingStatus:   1,
	}
}

func TestFeatureVectorValuesOrder(t *testing.T) {
	f := validFeatures()

	got := f.Values()
	want := [FeatureCount]float64{1, 67, 0, 1, 1, 2, 1, 228.69, 36.6, 1}
	if got != want {
		t.Fatalf("Values() = %v, want %v", got, want)
	}

	if FeatureNames[0] != "gender" || FeatureNames[FeatureCount-1] != "smoking_status" {
		t.Fatalf("unexpected feature order: %v", FeatureNames)
	}
}

func TestFeatureVectorValidate(t *testing.T) {
	if err := validFeatures().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*FeatureVector)
		field  string
	}{
		{"gender out of range", func(f *FeatureVector) { f.Gender = 3 }, "gender"},
		{"age negative", func(f *FeatureVector) { f.Age = -1 }, "age"},
		{"age too high", func(f *FeatureVector) { f.Age = 121 }, "age"},
		{"hypertension fractional", func(f *FeatureVector) { f.Hypertension = 0.5 }, "hypertension"},
		{"work type", func(f *FeatureVector) { f.WorkType = 5 }, "work_type"},
		{"glucose", func(f *FeatureVector) { f.AvgGlucoseLevel = 501 }, "avg_glucose_level"},
		{"bmi too low", func(f *FeatureVector) { f.BMI = 9.9 }, "bmi"},
		{"smoking", func(f *FeatureVector) { f.SmokingStatus = 4 }, "smoking_status"},
		{"nan", func(f *FeatureVector) { f.Age = math.NaN() }, "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFeatures()
			tt.mutate(&f)

			err := f.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidFeatures) {
				t.Fatalf("error %v does not wrap ErrInvalidFeatures", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("error %q does not mention %q", err, tt.field)
			}
		})
	}
}

func TestFeatureVectorValidateReportsAllFields(t *testing.T) {
	f := validFeatures()
	f.Gender = 7
	f.BMI = 80

	err := f.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "gender") || !strings.Contains(err.Error(), "bmi") {
		t.Fatalf("error %q should mention both fields", err)
	}
}
