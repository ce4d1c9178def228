package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Siteline-Labs/Siteline/internal/analyze"
)

type AnalysesHandler struct {
	svc   *analyze.Service
	stats *serverStats
}

func NewAnalysesHandler(svc *analyze.Service, stats *serverStats) *AnalysesHandler {
	return &AnalysesHandler{svc: svc, stats: stats}
}

func (h *AnalysesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req analyze.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Address == "" && req.Lat == 0 && req.Lon == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address or coordinates required"})
		return
	}

	started := time.Now()
	result, err := h.svc.Run(r.Context(), req)
	if err != nil {
		analysesTotal.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	analysesTotal.WithLabelValues("ok").Inc()
	analysisDuration.Observe(time.Since(started).Seconds())
	h.stats.analyses.Add(1)

	writeJSON(w, http.StatusCreated, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
