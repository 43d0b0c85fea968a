package api

import (
	"net/http"
	"stroke-risk-service/internal/api/handlers"
	"stroke-risk-service/internal/ports"
	"stroke-risk-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	DisplayLimit   int
	SortByDistance bool
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(pipeline *services.Pipeline, results ports.ResultStore, opts Options) http.Handler {
	mux := http.NewServeMux()

	predictHandler := &handlers.PredictHandler{
		Pipeline:       pipeline,
		Results:        results,
		DisplayLimit:   opts.DisplayLimit,
		SortByDistance: opts.SortByDistance,
	}
	resultHandler := &handlers.ResultHandler{
		Results:        results,
		DisplayLimit:   opts.DisplayLimit,
		SortByDistance: opts.SortByDistance,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/predict", predictHandler.Predict)
	mux.HandleFunc("/result", resultHandler.Get)
	mux.Handle("/metrics", promhttp.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
