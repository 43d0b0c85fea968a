package services

import (
	"stroke-risk-service/internal/domain"
	"strings"
)

// NormalizeHospitals reduces raw Overpass features to display records.
//
// Coordinates come from the feature itself (nodes) or from its
// service-computed center (ways, relations), resolved per component. A
// feature that still lacks either coordinate is dropped. Input order is
// preserved and nothing is truncated.
func NormalizeHospitals(raw []domain.RawFeature) []domain.HospitalRecord {
	out := make([]domain.HospitalRecord, 0, len(raw))
	for _, f := range raw {
		lat, lon := f.Lat, f.Lon
		if f.Center != nil {
			if lat == nil {
				lat = f.Center.Lat
			}
			if lon == nil {
				lon = f.Center.Lon
			}
		}
		if lat == nil || lon == nil {
			continue
		}

		name := strings.TrimSpace(f.Tags["name"])
		if name == "" {
			name = domain.UnnamedHospital
		}

		out = append(out, domain.HospitalRecord{Name: name, Lat: *lat, Lon: *lon})
	}
	return out
}
