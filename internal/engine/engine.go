package engine

import (
	"fmt"
	"log/slog"
)

// Engine bundles the catalogs needed for a scoring run. Everything in here is
// built once at startup and read-only afterwards; one Engine serves concurrent
// requests without synchronization.
type Engine struct {
	resolver *WeightResolver
	logger   *slog.Logger
}

// New creates an Engine with the stock weight catalogs.
func New(logger *slog.Logger) *Engine {
	return &Engine{
		resolver: NewWeightResolver(),
		logger:   logger,
	}
}

// Resolver exposes the weight resolver for the analysis layers.
func (e *Engine) Resolver() *WeightResolver { return e.resolver }

// ScoreBusiness runs the full pipeline for one business: resolve weights,
// score components, aggregate, and explain. It always returns a well-formed
// result; an internal panic degrades to a zero-score, zero-confidence result
// rather than propagating.
func (e *Engine) ScoreBusiness(businessID string, in Inputs, ctx *MarketContext) (result *ScoringResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("scoring failed, returning degraded result",
				"business", businessID, "panic", fmt.Sprint(r))
			result = &ScoringResult{
				BusinessID: businessID,
				Score:      0,
				Confidence: 0,
				Reasons:    []string{"internal scoring failure; treat as insufficient data"},
			}
		}
	}()

	weights := e.resolver.Resolve(businessID, "", "")
	return e.scoreWithWeights(businessID, in, ctx, weights)
}

// ScoreBusinessWithOptions is ScoreBusiness with explicit market condition and
// location type feeding the weight resolution.
func (e *Engine) ScoreBusinessWithOptions(businessID string, in Inputs, ctx *MarketContext,
	condition MarketCondition, location LocationType) *ScoringResult {
	weights := e.resolver.Resolve(businessID, condition, location)
	return e.scoreWithWeights(businessID, in, ctx, weights)
}

func (e *Engine) scoreWithWeights(businessID string, in Inputs, ctx *MarketContext, weights WeightMap) *ScoringResult {
	components := ScoreComponents(businessID, in, ctx)
	score, confidence := Aggregate(components, weights)

	result := &ScoringResult{
		BusinessID:  businessID,
		Score:       score,
		Confidence:  confidence,
		Components:  components,
		Weights:     weights,
		Reasons:     buildReasons(components),
		Warnings:    buildWarnings(businessID, components, ctx),
		Sensitivity: AnalyzeSensitivity(components, weights, defaultAdjustment),
	}
	result.Recommendations = buildRecommendations(businessID, result, ctx)
	return result
}

func buildReasons(scores ComponentScores) []string {
	var reasons []string
	if scores[FactorCompetition] > 0.7 {
		reasons = append(reasons, "few competitors in the area")
	}
	if scores[FactorSafety] > 0.6 {
		reasons = append(reasons, "good safety infrastructure nearby")
	}
	if scores[FactorCustomer] > 0.5 {
		reasons = append(reasons, "strong fit with the target customer group")
	}
	if scores[FactorTransport] > 0.5 {
		reasons = append(reasons, "easy to reach by public transport")
	}
	if scores[FactorLandmark] > 0.5 {
		reasons = append(reasons, "close to schools, offices or parks")
	}
	if scores[FactorMarket] > 0.6 {
		reasons = append(reasons, "above-average market potential")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "no standout characteristics for this location")
	}
	return reasons
}

func buildWarnings(businessID string, scores ComponentScores, ctx *MarketContext) []string {
	var warnings []string
	if scores[FactorCompetition] < 0.3 {
		warnings = append(warnings, fmt.Sprintf("market for %s looks crowded (%d competitors)",
			businessID, ctx.Competitors(businessID)))
	}
	if scores[FactorSafety] == 0 {
		warnings = append(warnings, "no police or hospital coverage in the area")
	}
	if scores[FactorTransport] < 0.2 {
		warnings = append(warnings, "poor public transport access")
	}
	if scores[FactorFinancial] < 0.3 {
		warnings = append(warnings, "weak financial outlook at this rent level")
	}
	return warnings
}

func buildRecommendations(businessID string, r *ScoringResult, ctx *MarketContext) []string {
	var recs []string
	switch {
	case r.Score >= 70:
		recs = append(recs, "location is a strong match; validate rent terms before committing")
	case r.Score >= 50:
		recs = append(recs, "viable location; address the flagged weaknesses first")
	default:
		recs = append(recs, "consider a different location or business type")
	}
	if r.Components[FactorCompetition] < 0.4 {
		recs = append(recs, "differentiate strongly; the segment is contested here")
	}
	if r.Components[FactorTransport] < 0.3 {
		recs = append(recs, "plan for delivery or online channels to offset weak transit")
	}
	if ctx.IncomeLevel == IncomeHigh && r.Components[FactorCustomer] > 0.6 {
		recs = append(recs, "area supports premium positioning")
	}
	return recs
}
