package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExternalCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stroke_operation_duration_seconds",
		Help:    "Latency of timed operations (geocoding, hospital search, cache, inference)",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "status"})

	PipelineOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stroke_pipeline_outcomes_total",
		Help: "Prediction runs by terminal outcome",
	}, []string{"outcome"})

	GeocodeCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stroke_geocode_cache_lookups_total",
		Help: "Geocode cache lookups by result (hit, miss, error)",
	}, []string{"result"})
)
