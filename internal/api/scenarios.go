package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Siteline-Labs/Siteline/internal/analysis"
	"github.com/Siteline-Labs/Siteline/internal/analyze"
	"github.com/Siteline-Labs/Siteline/internal/config"
	"github.com/Siteline-Labs/Siteline/internal/engine"
)

type ScenariosHandler struct {
	svc     *analyze.Service
	planner *analysis.Planner
	cfg     config.EngineConfig
	stats   *serverStats
}

func NewScenariosHandler(svc *analyze.Service, planner *analysis.Planner,
	cfg config.EngineConfig, stats *serverStats) *ScenariosHandler {
	return &ScenariosHandler{svc: svc, planner: planner, cfg: cfg, stats: stats}
}

type ScenariosRequest struct {
	BusinessID string                        `json:"business_id"`
	Context    *engine.MarketContext         `json:"context"`
	Custom     []analysis.ScenarioDefinition `json:"custom_scenarios,omitempty"`
}

func (h *ScenariosHandler) Scenarios(w http.ResponseWriter, r *http.Request) {
	var req ScenariosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.BusinessID == "" || req.Context == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "business_id and context required"})
		return
	}

	results := h.planner.RunScenarios(req.BusinessID, req.Context, req.Custom)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"business_id": req.BusinessID,
		"scenarios":   results,
	})
}

type MonteCarloRequest struct {
	BusinessID       string                `json:"business_id"`
	Context          *engine.MarketContext `json:"context"`
	Simulations      int                   `json:"simulations,omitempty"`
	Workers          int                   `json:"workers,omitempty"`
	Seed             int64                 `json:"seed,omitempty"`
	SuccessThreshold float64               `json:"success_threshold,omitempty"`
}

func (h *ScenariosHandler) MonteCarlo(w http.ResponseWriter, r *http.Request) {
	var req MonteCarloRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.BusinessID == "" || req.Context == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "business_id and context required"})
		return
	}

	opts := analysis.MonteCarloOptions{
		Simulations:      req.Simulations,
		Workers:          req.Workers,
		Seed:             req.Seed,
		SuccessThreshold: req.SuccessThreshold,
	}
	if opts.Simulations <= 0 {
		opts.Simulations = h.cfg.DefaultSimulations
	}
	if opts.Workers <= 0 {
		opts.Workers = h.cfg.SimulationWorkers
	}
	if opts.SuccessThreshold == 0 {
		opts.SuccessThreshold = h.cfg.SuccessThreshold
	}

	result, err := h.svc.RunMonteCarlo(h.planner, req.BusinessID, req.Context, opts)
	if err != nil {
		if errors.Is(err, analysis.ErrNoValidSimulations) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	simulationsTotal.Inc()
	h.stats.simulations.Add(1)

	writeJSON(w, http.StatusOK, result)
}
