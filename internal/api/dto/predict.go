package dto

type PredictRequest struct {
	Gender          *float64 `json:"gender"`
	Age             *float64 `json:"age"`
	Hypertension    *float64 `json:"hypertension"`
	HeartDisease    *float64 `json:"heart_disease"`
	EverMarried     *float64 `json:"ever_married"`
	WorkType        *float64 `json:"work_type"`
	ResidenceType   *float64 `json:"residence_type"`
	AvgGlucoseLevel *float64 `json:"avg_glucose_level"`
	BMI             *float64 `json:"bmi"`
	SmokingStatus   *float64 `json:"smoking_status"`
	Pincode         string   `json:"pincode"`
}

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type HospitalResponse struct {
	Rank           int     `json:"rank"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DistanceMeters int     `json:"distance_meters"`
}

type MarkerResponse struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Tooltip string  `json:"tooltip"`
	Color   string  `json:"color"`
}

type MapResponse struct {
	Center  LocationResponse `json:"center"`
	Zoom    int              `json:"zoom"`
	Markers []MarkerResponse `json:"markers"`
}

type PredictionResponse struct {
	Label     int                `json:"label"`
	AtRisk    bool               `json:"at_risk"`
	Outcome   string             `json:"outcome"`
	Message   string             `json:"message"`
	Warning   string             `json:"warning,omitempty"`
	Pincode   string             `json:"pincode"`
	Location  *LocationResponse  `json:"location"`
	Hospitals []HospitalResponse `json:"hospitals"`
	Map       *MapResponse       `json:"map"`
}
