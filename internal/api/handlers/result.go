package handlers

import (
	"log"
	"net/http"
	"stroke-risk-service/internal/platform/obs"
	"stroke-risk-service/internal/ports"
	"stroke-risk-service/internal/services"
)

type ResultHandler struct {
	Results        ports.ResultStore
	DisplayLimit   int
	SortByDistance bool
}

// Get returns the session's most recent prediction.
func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	sid := sessionID(r)
	if sid == "" {
		writeError(w, r, http.StatusNotFound, "no result for this session")
		return
	}

	res, ok, err := h.Results.Get(r.Context(), sid)
	if err != nil {
		log.Printf("req_id=%s load result session=%s failed: %v", obs.RequestID(r.Context()), sid, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "no result for this session")
		return
	}

	writeJSON(w, r, http.StatusOK, toPredictionResponse(services.BuildView(res, h.DisplayLimit, h.SortByDistance)))
}
