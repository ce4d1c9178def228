package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/Siteline-Labs/Siteline/internal/engine"
	"github.com/Siteline-Labs/Siteline/internal/rules"
)

type ScoreHandler struct {
	engine     *engine.Engine
	rules      *rules.Engine
	adjustment float64
	stats      *serverStats
}

func NewScoreHandler(eng *engine.Engine, ruleEngine *rules.Engine,
	adjustment float64, stats *serverStats) *ScoreHandler {
	return &ScoreHandler{engine: eng, rules: ruleEngine, adjustment: adjustment, stats: stats}
}

type ScoreRequest struct {
	BusinessID      string                `json:"business_id"`
	Context         *engine.MarketContext `json:"context"`
	CustomerTarget  string                `json:"customer_target,omitempty"`
	PriceLevel      int                   `json:"price_level,omitempty"`
	Month           int                   `json:"month,omitempty"`
	MarketCondition string                `json:"market_condition,omitempty"`
	LocationType    string                `json:"location_type,omitempty"`
}

func (req *ScoreRequest) validate() string {
	if req.BusinessID == "" {
		return "business_id required"
	}
	if req.Context == nil {
		return "context required"
	}
	return ""
}

func (req *ScoreRequest) inputs() engine.Inputs {
	return engine.Inputs{
		CustomerTarget: req.CustomerTarget,
		PriceLevel:     req.PriceLevel,
		Month:          req.Month,
	}
}

func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	result := h.engine.ScoreBusinessWithOptions(req.BusinessID, req.inputs(), req.Context,
		engine.MarketCondition(req.MarketCondition), engine.LocationType(req.LocationType))

	scoresTotal.WithLabelValues(req.BusinessID).Inc()
	h.stats.scores.Add(1)

	writeJSON(w, http.StatusOK, result)
}

func (h *ScoreHandler) Rules(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	components := engine.ScoreComponents(req.BusinessID, req.inputs(), req.Context)
	results := h.rules.Evaluate(req.BusinessID, req.Context, components)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"business_id": req.BusinessID,
		"results":     results,
		"summary":     rules.Summarize(results),
	})
}

type SensitivityRequest struct {
	ScoreRequest
	AdjustmentPct float64 `json:"adjustment_pct,omitempty"`
}

type FactorSensitivity struct {
	Factor    engine.Factor           `json:"factor"`
	ImpactPct float64                 `json:"impact_pct"`
	Level     engine.SensitivityLevel `json:"level"`
}

func (h *ScoreHandler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	var req SensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	adjustment := req.AdjustmentPct
	if adjustment <= 0 {
		adjustment = h.adjustment
	}

	result := h.engine.ScoreBusinessWithOptions(req.BusinessID, req.inputs(), req.Context,
		engine.MarketCondition(req.MarketCondition), engine.LocationType(req.LocationType))
	impacts := engine.AnalyzeSensitivity(result.Components, result.Weights, adjustment)

	factors := make([]FactorSensitivity, 0, len(impacts))
	for f, pct := range impacts {
		factors = append(factors, FactorSensitivity{
			Factor:    f,
			ImpactPct: pct,
			Level:     engine.ClassifySensitivity(pct),
		})
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].ImpactPct > factors[j].ImpactPct })

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"business_id":    req.BusinessID,
		"base_score":     result.Score,
		"adjustment_pct": adjustment,
		"factors":        factors,
	})
}
