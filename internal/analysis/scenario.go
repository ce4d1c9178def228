// Package analysis layers what-if tooling over the scoring engine: named
// scenario runs and Monte Carlo uncertainty simulation.
package analysis

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/Siteline-Labs/Siteline/internal/engine"
)

// baselineInputs pins the neutral inputs every comparative run scores
// against, so scenario deltas measure the context change and nothing else.
var baselineInputs = engine.Inputs{CustomerTarget: "general", PriceLevel: 2}

// ScenarioDefinition is a named set of factor deltas in [-1,1]. Deltas under
// BusinessSpecific override the general modification for that factor when the
// scenario runs against the named business.
type ScenarioDefinition struct {
	Name             string                                  `json:"name"`
	Description      string                                  `json:"description"`
	Modifications    map[engine.Factor]float64               `json:"modifications"`
	BusinessSpecific map[string]map[engine.Factor]float64    `json:"business_specific,omitempty"`
	ExternalFactors  map[string]float64                      `json:"external_factors,omitempty"`
}

// ScenarioResult reports one scenario's effect relative to the baseline score.
type ScenarioResult struct {
	ScenarioName       string   `json:"scenario_name"`
	ModifiedScore      float64  `json:"modified_score"`
	ScoreChange        float64  `json:"score_change"`
	ScoreChangePercent float64  `json:"score_change_percent"`
	KeyImpacts         []string `json:"key_impacts"`
	RiskLevelChange    string   `json:"risk_level_change"`
	Recommendations    []string `json:"recommendations"`
}

// Planner runs scenarios and simulations against one scoring engine.
type Planner struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewPlanner(eng *engine.Engine, logger *slog.Logger) *Planner {
	return &Planner{engine: eng, logger: logger}
}

// BaseScenarios returns the stock scenario catalog.
func BaseScenarios() []ScenarioDefinition {
	return []ScenarioDefinition{
		{
			Name:        "economic_downturn",
			Description: "economy contracts, cutting income and spending",
			Modifications: map[engine.Factor]float64{
				engine.FactorMarket:    -0.3,
				engine.FactorCustomer:  -0.2,
				engine.FactorFinancial: -0.4,
			},
			ExternalFactors: map[string]float64{
				"economic_growth": -0.1, "unemployment_rate": 0.05,
			},
		},
		{
			Name:        "strong_growth",
			Description: "fast area development, rising population and income",
			Modifications: map[engine.Factor]float64{
				engine.FactorMarket:      0.4,
				engine.FactorCustomer:    0.2,
				engine.FactorCompetition: 0.3, // attractiveness draws rivals too
				engine.FactorFinancial:   0.2,
			},
			ExternalFactors: map[string]float64{
				"economic_growth": 0.15, "population_growth": 0.08,
			},
		},
		{
			Name:        "infrastructure_upgrade",
			Description: "heavy investment in transit and public amenities",
			Modifications: map[engine.Factor]float64{
				engine.FactorTransport: 0.5,
				engine.FactorSafety:    0.3,
				engine.FactorLandmark:  0.2,
				engine.FactorMarket:    0.3,
			},
			ExternalFactors: map[string]float64{"infrastructure_investment": 0.5},
		},
		{
			Name:        "market_saturation",
			Description: "a wave of new entrants floods the market",
			Modifications: map[engine.Factor]float64{
				engine.FactorCompetition: -0.6,
				engine.FactorMarket:      -0.3,
				engine.FactorFinancial:   -0.3,
			},
			ExternalFactors: map[string]float64{"new_business_rate": 0.5},
		},
		{
			Name:        "demographic_shift",
			Description: "a younger population changes consumption habits",
			Modifications: map[engine.Factor]float64{
				engine.FactorCustomer: 0.3,
				engine.FactorMarket:   0.2,
			},
			BusinessSpecific: map[string]map[engine.Factor]float64{
				"milk_tea": {engine.FactorCustomer: 0.5},
				"gaming":   {engine.FactorCustomer: 0.4},
				"spa":      {engine.FactorCustomer: -0.2},
			},
		},
		{
			Name:        "security_crisis",
			Description: "public safety deteriorates",
			Modifications: map[engine.Factor]float64{
				engine.FactorSafety:   -0.7,
				engine.FactorCustomer: -0.3,
				engine.FactorMarket:   -0.4,
			},
			ExternalFactors: map[string]float64{"crime_rate": 0.3},
		},
		{
			Name:        "digital_disruption",
			Description: "e-commerce reshapes local retail",
			Modifications: map[engine.Factor]float64{
				engine.FactorOperational: 0.2,
				engine.FactorCompetition: 0.4,
			},
			BusinessSpecific: map[string]map[engine.Factor]float64{
				"bookstore":   {engine.FactorCompetition: -0.5, engine.FactorMarket: -0.4},
				"electronics": {engine.FactorCompetition: -0.3},
				"clothing":    {engine.FactorCompetition: -0.2},
				"grocery":     {engine.FactorOperational: 0.4},
			},
		},
		{
			Name:        "pandemic_shock",
			Description: "an epidemic disrupts in-person business",
			Modifications: map[engine.Factor]float64{
				engine.FactorCustomer:    -0.4,
				engine.FactorFinancial:   -0.5,
				engine.FactorOperational: -0.3,
			},
			BusinessSpecific: map[string]map[engine.Factor]float64{
				"spa":      {engine.FactorCustomer: -0.8, engine.FactorOperational: -0.7},
				"gaming":   {engine.FactorCustomer: -0.6, engine.FactorOperational: -0.8},
				"pharmacy": {engine.FactorCustomer: 0.3, engine.FactorMarket: 0.4},
				"grocery":  {engine.FactorCustomer: 0.2, engine.FactorMarket: 0.3},
			},
		},
	}
}

// RunScenarios scores the stock catalog plus any custom scenarios against the
// baseline and returns results ordered by impact magnitude, largest first.
// The input context is never mutated.
func (p *Planner) RunScenarios(businessID string, ctx *engine.MarketContext, custom []ScenarioDefinition) []ScenarioResult {
	scenarios := append(BaseScenarios(), custom...)

	baseline := p.engine.ScoreBusiness(businessID, baselineInputs, ctx)

	results := make([]ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		results = append(results, p.runScenario(sc, businessID, ctx, baseline.Score))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return math.Abs(results[i].ScoreChange) > math.Abs(results[j].ScoreChange)
	})
	return results
}

func (p *Planner) runScenario(sc ScenarioDefinition, businessID string, ctx *engine.MarketContext, baseline float64) ScenarioResult {
	mods := effectiveModifications(sc, businessID)

	modified := ctx.Clone()
	applyModifications(modified, mods)

	result := p.engine.ScoreBusiness(businessID, baselineInputs, modified)

	change := result.Score - baseline
	changePct := 0.0
	if baseline > 0 {
		changePct = change / baseline * 100
	}

	return ScenarioResult{
		ScenarioName:       sc.Name,
		ModifiedScore:      result.Score,
		ScoreChange:        change,
		ScoreChangePercent: changePct,
		KeyImpacts:         keyImpacts(mods),
		RiskLevelChange:    riskLevelChange(changePct),
		Recommendations:    scenarioRecommendations(sc, change, mods),
	}
}

// effectiveModifications merges the general deltas with the business-specific
// overrides, overrides winning per factor.
func effectiveModifications(sc ScenarioDefinition, businessID string) map[engine.Factor]float64 {
	mods := make(map[engine.Factor]float64, len(sc.Modifications))
	for f, d := range sc.Modifications {
		mods[f] = d
	}
	for f, d := range sc.BusinessSpecific[businessID] {
		mods[f] = d
	}
	return mods
}

// applyModifications translates factor deltas into context mutations. Only
// competition and transport deltas map onto observable context fields
// (competitor counts and transit stops); the remaining deltas describe the
// scenario but have no direct context representation and show up in the key
// impacts instead.
func applyModifications(ctx *engine.MarketContext, mods map[engine.Factor]float64) {
	if delta, ok := mods[engine.FactorCompetition]; ok {
		for category, n := range ctx.CategoryCounts {
			scaled := int(float64(n) * (1 + delta))
			if scaled < 0 {
				scaled = 0
			}
			ctx.CategoryCounts[category] = scaled
		}
	}
	if delta, ok := mods[engine.FactorTransport]; ok {
		for _, tag := range []string{engine.TagBusStop, engine.TagSubway} {
			if n, ok := ctx.OSM[tag]; ok {
				scaled := int(float64(n) * (1 + delta))
				if scaled < 0 {
					scaled = 0
				}
				ctx.OSM[tag] = scaled
			}
		}
	}
}

var factorDescriptions = map[engine.Factor]string{
	engine.FactorCustomer:    "customer fit",
	engine.FactorCompetition: "competitive pressure",
	engine.FactorMarket:      "market potential",
	engine.FactorFinancial:   "profitability",
	engine.FactorTransport:   "transport access",
	engine.FactorSafety:      "safety",
	engine.FactorLandmark:    "nearby landmarks",
	engine.FactorOperational: "operational feasibility",
}

// keyImpacts names the three largest deltas in plain language.
func keyImpacts(mods map[engine.Factor]float64) []string {
	type mod struct {
		factor engine.Factor
		delta  float64
	}
	sorted := make([]mod, 0, len(mods))
	for f, d := range mods {
		sorted = append(sorted, mod{f, d})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].delta) != math.Abs(sorted[j].delta) {
			return math.Abs(sorted[i].delta) > math.Abs(sorted[j].delta)
		}
		return sorted[i].factor < sorted[j].factor
	})

	var impacts []string
	for i := 0; i < len(sorted) && i < 3; i++ {
		desc, ok := factorDescriptions[sorted[i].factor]
		if !ok {
			desc = string(sorted[i].factor)
		}
		switch d := sorted[i].delta; {
		case d > 0.2:
			impacts = append(impacts, fmt.Sprintf("major improvement in %s", desc))
		case d > 0:
			impacts = append(impacts, fmt.Sprintf("slight improvement in %s", desc))
		case d < -0.2:
			impacts = append(impacts, fmt.Sprintf("sharp decline in %s", desc))
		default:
			impacts = append(impacts, fmt.Sprintf("slight decline in %s", desc))
		}
	}
	return impacts
}

func riskLevelChange(changePct float64) string {
	switch {
	case changePct > 20:
		return "risk reduced significantly"
	case changePct > 10:
		return "risk reduced slightly"
	case changePct > -10:
		return "risk unchanged"
	case changePct > -20:
		return "risk increased slightly"
	default:
		return "risk increased significantly"
	}
}

func scenarioRecommendations(sc ScenarioDefinition, change float64, mods map[engine.Factor]float64) []string {
	var recs []string

	if change > 10 {
		recs = append(recs, fmt.Sprintf("scenario %q works in your favor; prepare to capitalize on it", sc.Name))
	} else if change < -10 {
		recs = append(recs, fmt.Sprintf("scenario %q carries high risk; have a mitigation plan ready", sc.Name))
	}

	if mods[engine.FactorCompetition] > 0.3 {
		recs = append(recs, "prepare a differentiation strategy for a crowded field")
	}
	if mods[engine.FactorMarket] < -0.3 {
		recs = append(recs, "diversify the offer to spread demand risk")
	}
	if mods[engine.FactorFinancial] < -0.3 {
		recs = append(recs, "trim operating costs and hold a financial reserve")
	}
	if mods[engine.FactorTransport] > 0.3 {
		recs = append(recs, "use improved transit links to widen the catchment area")
	}

	switch sc.Name {
	case "economic_downturn":
		recs = append(recs,
			"focus on essential goods and services",
			"cut operating overhead",
			"invest in customer loyalty")
	case "strong_growth":
		recs = append(recs,
			"prepare to scale capacity",
			"spend on marketing to capture share early")
	case "pandemic_shock":
		recs = append(recs,
			"build an online sales channel",
			"keep the operating model flexible")
	}

	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}
