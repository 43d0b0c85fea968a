package services

import (
	"stroke-risk-service/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func f64(v float64) *float64 { return &v }

func TestNormalizeHospitals(t *testing.T) {
	raw := []domain.RawFeature{
		{Type: "node", ID: 1, Lat: f64(12.9), Lon: f64(77.6), Tags: map[string]string{"name": "St. Martha's Hospital"}},
		{Type: "way", ID: 2, Center: &domain.RawCenter{Lat: f64(13.0), Lon: f64(77.7)}},
		{Type: "relation", ID: 3, Tags: map[string]string{"name": "No Geometry"}},
		{Type: "node", ID: 4, Lat: f64(12.95), Lon: f64(77.58), Tags: map[string]string{"name": "   "}},
	}

	got := NormalizeHospitals(raw)
	want := []domain.HospitalRecord{
		{Name: "St. Martha's Hospital", Lat: 12.9, Lon: 77.6},
		{Name: domain.UnnamedHospital, Lat: 13.0, Lon: 77.7},
		{Name: domain.UnnamedHospital, Lat: 12.95, Lon: 77.58},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("NormalizeHospitals mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeHospitalsMixesDirectAndCenter(t *testing.T) {
	raw := []domain.RawFeature{
		// Direct lat, center lon: each component is resolved on its own.
		{Type: "way", Lat: f64(12.1), Center: &domain.RawCenter{Lat: f64(99), Lon: f64(77.1)}},
		// Only one component anywhere: dropped.
		{Type: "way", Center: &domain.RawCenter{Lat: f64(12.2)}},
		// Zero is a real coordinate, not a missing one.
		{Type: "node", Lat: f64(0), Lon: f64(0)},
	}

	got := NormalizeHospitals(raw)
	want := []domain.HospitalRecord{
		{Name: domain.UnnamedHospital, Lat: 12.1, Lon: 77.1},
		{Name: domain.UnnamedHospital, Lat: 0, Lon: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("NormalizeHospitals mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeHospitalsEmpty(t *testing.T) {
	got := NormalizeHospitals(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestNormalizeHospitalsKeepsOrderWithoutTruncating(t *testing.T) {
	raw := make([]domain.RawFeature, 0, 12)
	for i := 0; i < 12; i++ {
		raw = append(raw, domain.RawFeature{Lat: f64(float64(i)), Lon: f64(77)})
	}

	got := NormalizeHospitals(raw)
	if len(got) != 12 {
		t.Fatalf("len = %d, want 12", len(got))
	}
	for i, r := range got {
		if r.Lat != float64(i) {
			t.Fatalf("record %d lat = %v, want %d", i, r.Lat, i)
		}
	}
}
