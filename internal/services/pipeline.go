package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/platform/httpclient"
	"stroke-risk-service/internal/platform/obs"
	"stroke-risk-service/internal/ports"
)

const (
	MessageNoRisk           = "No immediate stroke risk detected."
	MessageRisk             = "Risk of stroke detected."
	MessageUnresolved       = "Invalid or unrecognized pincode."
	MessageNoHospitals      = "No hospitals found nearby."
	MessageHospitalsFound   = "Nearby hospitals:"
	MessageSearchFailed     = "Could not fetch hospital data."
	warningGeocodeNoMatch   = "No location matches this pincode."
	warningGeocodeMalformed = "The location service returned an unexpected response."
	warningGeocodeFailed    = "The location service could not be reached."
	warningSearchStatus     = "The hospital search service returned an error."
	warningSearchMalformed  = "The hospital search service returned an unexpected response."
	warningSearchFailed     = "The hospital search service could not be reached."
)

type PredictRequest struct {
	Features domain.FeatureVector
	Pincode  string
}

// Pipeline runs one prediction cycle: classify, then (on risk) geocode the
// pincode and search for nearby hospitals.
//
// Steps run strictly in sequence with no retries. Every external failure
// is converted into a terminal outcome at the step that detected it; only a
// classification failure is returned as an error.
type Pipeline struct {
	Classifier   ports.Classifier
	Geocoder     ports.Geocoder
	Finder       ports.HospitalFinder
	Country      string
	RadiusMeters int
}

func (p *Pipeline) Run(ctx context.Context, req PredictRequest) (_ domain.PredictionResult, err error) {
	defer obs.Time(ctx, "pipeline.Run")(&err)

	if p.Classifier == nil || p.Geocoder == nil || p.Finder == nil {
		return domain.PredictionResult{}, errors.New("run pipeline: classifier, geocoder and finder are required")
	}

	label, err := p.Classifier.Classify(ctx, req.Features)
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("run pipeline: classify: %w", err)
	}
	if !label.Valid() {
		return domain.PredictionResult{}, fmt.Errorf("run pipeline: classifier returned label %d", label)
	}

	res := domain.PredictionResult{
		Label:     label,
		Pincode:   req.Pincode,
		Hospitals: []domain.HospitalRecord{},
	}

	// No risk: skip the network entirely.
	if label == domain.LabelNoRisk {
		return p.finish(res, domain.OutcomeNoRisk, MessageNoRisk, ""), nil
	}

	loc, err := p.Geocoder.Resolve(ctx, req.Pincode, p.Country)
	if err != nil {
		log.Printf("req_id=%s geocode pincode=%q failed: %v", obs.RequestID(ctx), req.Pincode, err)
		return p.finish(res, domain.OutcomePincodeUnresolved, MessageUnresolved, geocodeWarning(err)), nil
	}
	res.Location = &loc

	radius := p.RadiusMeters
	if radius <= 0 {
		radius = ports.DefaultSearchRadiusMeters
	}

	raw, err := p.Finder.FindNearby(ctx, loc, radius)
	if err != nil {
		log.Printf("req_id=%s hospital search at=%.5f,%.5f failed: %v", obs.RequestID(ctx), loc.Lat, loc.Lon, err)
		return p.finish(res, domain.OutcomeHospitalSearchFailed, MessageSearchFailed, searchWarning(err)), nil
	}

	res.Hospitals = NormalizeHospitals(raw)
	if len(res.Hospitals) == 0 {
		return p.finish(res, domain.OutcomeHospitalsListed, MessageNoHospitals, ""), nil
	}
	return p.finish(res, domain.OutcomeHospitalsListed, MessageHospitalsFound, ""), nil
}

func (p *Pipeline) finish(res domain.PredictionResult, outcome domain.Outcome, msg, warning string) domain.PredictionResult {
	res.Outcome = outcome
	res.Message = msg
	res.Warning = warning
	obs.PipelineOutcomes.WithLabelValues(string(outcome)).Inc()
	return res
}

func geocodeWarning(err error) string {
	switch {
	case errors.Is(err, ports.ErrNoMatch):
		return warningGeocodeNoMatch
	case errors.Is(err, ports.ErrMalformedResponse):
		return warningGeocodeMalformed
	default:
		return warningGeocodeFailed
	}
}

func searchWarning(err error) string {
	var statusErr *httpclient.StatusError
	switch {
	case errors.As(err, &statusErr):
		return warningSearchStatus
	case errors.Is(err, ports.ErrMalformedResponse):
		return warningSearchMalformed
	default:
		return warningSearchFailed
	}
}
