package domain

// Name used when an OSM feature carries no name tag.
const UnnamedHospital = "Unnamed Hospital"

// Optional coordinate pair as returned by Overpass.
// Fields are pointers so a missing value is distinguishable from 0.
type RawCenter struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// One element of an Overpass response.
// Nodes carry Lat/Lon directly; ways and relations carry a service-computed Center
// when the query asks for "out center".
type RawFeature struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *RawCenter        `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// A hospital reduced to what the display needs.
type HospitalRecord struct {
	Name string
	Lat  float64
	Lon  float64
}

func (h HospitalRecord) Coordinates() Coordinates {
	return Coordinates{Lat: h.Lat, Lon: h.Lon}
}
