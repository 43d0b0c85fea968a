package domain

import "math"

const earthRadiusMeters = 6371000.0

// Geographic coordinates in decimal degrees (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Report whether both components are finite and inside WGS84 bounds.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Great-circle distance in meters using the haversine formula.
func (c Coordinates) DistanceMeters(other Coordinates) float64 {
	rad := math.Pi / 180
	dLat := (other.Lat - c.Lat) * rad
	dLon := (other.Lon - c.Lon) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(c.Lat*rad)*math.Cos(other.Lat*rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
