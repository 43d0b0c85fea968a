package services

import (
	"fmt"
	"slices"
	"stroke-risk-service/internal/domain"
	"strings"
)

// Number of hospitals shown when the caller does not choose.
const DefaultDisplayLimit = 5

// A hospital as presented to the user.
type DisplayHospital struct {
	Rank           int
	Name           string
	Lat            float64
	Lon            float64
	DistanceMeters float64
}

// TopHospitals picks the records to display.
//
// By default the upstream order is kept and the first limit records are
// returned. With byDistance set, records are stable-sorted by great-circle
// distance from origin before truncation. Ranks start at 1.
func TopHospitals(origin domain.Coordinates, records []domain.HospitalRecord, limit int, byDistance bool) []DisplayHospital {
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}

	out := make([]DisplayHospital, 0, len(records))
	for _, r := range records {
		out = append(out, DisplayHospital{
			Name:           r.Name,
			Lat:            r.Lat,
			Lon:            r.Lon,
			DistanceMeters: origin.DistanceMeters(r.Coordinates()),
		})
	}

	if byDistance {
		slices.SortStableFunc(out, func(a, b DisplayHospital) int {
			switch {
			case a.DistanceMeters < b.DistanceMeters:
				return -1
			case a.DistanceMeters > b.DistanceMeters:
				return 1
			}
			return 0
		})
	}

	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

type MarkerColor string

const (
	MarkerUser     MarkerColor = "red"
	MarkerHospital MarkerColor = "green"
)

type MapMarker struct {
	Lat     float64
	Lon     float64
	Tooltip string
	Color   MarkerColor
}

// Data needed by a front end to draw the result map.
type MapView struct {
	Center  domain.Coordinates
	Zoom    int
	Markers []MapMarker
}

// BuildMapView places the user's location and the listed hospitals.
func BuildMapView(origin domain.Coordinates, shown []DisplayHospital) MapView {
	markers := make([]MapMarker, 0, 1+len(shown))
	markers = append(markers, MapMarker{Lat: origin.Lat, Lon: origin.Lon, Tooltip: "Your Location", Color: MarkerUser})
	for _, h := range shown {
		markers = append(markers, MapMarker{Lat: h.Lat, Lon: h.Lon, Tooltip: h.Name, Color: MarkerHospital})
	}
	return MapView{Center: origin, Zoom: 13, Markers: markers}
}

// View is everything a front end renders for one prediction.
type View struct {
	Result    domain.PredictionResult
	Hospitals []DisplayHospital
	Map       *MapView
}

func BuildView(res domain.PredictionResult, limit int, byDistance bool) View {
	v := View{Result: res, Hospitals: []DisplayHospital{}}
	if res.Location == nil {
		return v
	}

	v.Hospitals = TopHospitals(*res.Location, res.Hospitals, limit, byDistance)
	if len(v.Hospitals) > 0 {
		m := BuildMapView(*res.Location, v.Hospitals)
		v.Map = &m
	}
	return v
}

// Text renders the view as plain lines, one hospital per line.
func (v View) Text() string {
	var b strings.Builder
	if v.Result.AtRisk() {
		b.WriteString(MessageRisk + "\n")
	}
	b.WriteString(v.Result.Message + "\n")
	if v.Result.Warning != "" {
		fmt.Fprintf(&b, "(%s)\n", v.Result.Warning)
	}
	for _, h := range v.Hospitals {
		fmt.Fprintf(&b, "%d. %s (%.4f, %.4f) %.1f km\n", h.Rank, h.Name, h.Lat, h.Lon, h.DistanceMeters/1000)
	}
	return b.String()
}
