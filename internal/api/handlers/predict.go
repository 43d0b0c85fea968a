package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"stroke-risk-service/internal/api/dto"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/platform/obs"
	"stroke-risk-service/internal/ports"
	"stroke-risk-service/internal/services"
	"strings"
)

type PredictHandler struct {
	Pipeline       *services.Pipeline
	Results        ports.ResultStore
	DisplayLimit   int
	SortByDistance bool
}

// Predict runs one prediction cycle and stores the outcome as the session's current result.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.PredictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	features, err := featuresFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pincode, err := domain.NormalizePincode(req.Pincode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sid := ensureSession(w, r)

	res, err := h.Pipeline.Run(r.Context(), services.PredictRequest{Features: features, Pincode: pincode})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFeatures) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("req_id=%s predict failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Results.Put(r.Context(), sid, res); err != nil {
		log.Printf("req_id=%s store result session=%s failed: %v", obs.RequestID(r.Context()), sid, err)
	}

	writeJSON(w, r, http.StatusOK, toPredictionResponse(services.BuildView(res, h.DisplayLimit, h.SortByDistance)))
}

// featuresFromRequest requires every feature to be present, then validates ranges.
func featuresFromRequest(req dto.PredictRequest) (domain.FeatureVector, error) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"gender", req.Gender},
		{"age", req.Age},
		{"hypertension", req.Hypertension},
		{"heart_disease", req.HeartDisease},
		{"ever_married", req.EverMarried},
		{"work_type", req.WorkType},
		{"residence_type", req.ResidenceType},
		{"avg_glucose_level", req.AvgGlucoseLevel},
		{"bmi", req.BMI},
		{"smoking_status", req.SmokingStatus},
	}

	var missing []string
	for _, f := range fields {
		if f.v == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.FeatureVector{}, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	fv := domain.FeatureVector{
		Gender:          *req.Gender,
		Age:             *req.Age,
		Hypertension:    *req.Hypertension,
		HeartDisease:    *req.HeartDisease,
		EverMarried:     *req.EverMarried,
		WorkType:        *req.WorkType,
		ResidenceType:   *req.ResidenceType,
		AvgGlucoseLevel: *req.AvgGlucoseLevel,
		BMI:             *req.BMI,
		SmokingStatus:   *req.SmokingStatus,
	}
	if err := fv.Validate(); err != nil {
		return domain.FeatureVector{}, err
	}
	return fv, nil
}

func toPredictionResponse(v services.View) dto.PredictionResponse {
	res := dto.PredictionResponse{
		Label:     int(v.Result.Label),
		AtRisk:    v.Result.AtRisk(),
		Outcome:   string(v.Result.Outcome),
		Message:   v.Result.Message,
		Warning:   v.Result.Warning,
		Pincode:   v.Result.Pincode,
		Hospitals: make([]dto.HospitalResponse, 0, len(v.Hospitals)),
	}

	if v.Result.Location != nil {
		res.Location = &dto.LocationResponse{Lat: v.Result.Location.Lat, Lon: v.Result.Location.Lon}
	}

	for _, h := range v.Hospitals {
		res.Hospitals = append(res.Hospitals, dto.HospitalResponse{
			Rank:           h.Rank,
			Name:           h.Name,
			Lat:            h.Lat,
			Lon:            h.Lon,
			DistanceMeters: int(math.Round(h.DistanceMeters)),
		})
	}

	if v.Map != nil {
		m := &dto.MapResponse{
			Center:  dto.LocationResponse{Lat: v.Map.Center.Lat, Lon: v.Map.Center.Lon},
			Zoom:    v.Map.Zoom,
			Markers: make([]dto.MarkerResponse, 0, len(v.Map.Markers)),
		}
		for _, mk := range v.Map.Markers {
			m.Markers = append(m.Markers, dto.MarkerResponse{
				Lat:     mk.Lat,
				Lon:     mk.Lon,
				Tooltip: mk.Tooltip,
				Color:   string(mk.Color),
			})
		}
		res.Map = m
	}

	return res
}
