package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Siteline-Labs/Siteline/internal/engine"
)

// Engine holds the rule catalogs and predicate registry. Built once at
// startup; evaluation is stateless and safe for concurrent use.
type Engine struct {
	general    []Rule
	byBusiness map[string][]Rule
	contextual []Rule
	predicates map[string]Predicate
	logger     *slog.Logger
}

// NewEngine builds the stock catalogs and registry.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		general:    generalRules(),
		byBusiness: businessRules(),
		contextual: contextualRules(),
		predicates: predicateRegistry(),
		logger:     logger,
	}
}

// Evaluate runs every applicable rule against the business. A predicate that
// panics or is missing from the registry counts as not triggered; one broken
// rule never aborts the rest. Results come back ordered blocking-first, then
// by descending priority within each severity.
func (e *Engine) Evaluate(businessID string, ctx *engine.MarketContext, scores engine.ComponentScores) []Result {
	applicable := e.applicableRules(businessID)

	var results []Result
	for _, rule := range applicable {
		if e.triggered(rule, businessID, ctx, scores) {
			results = append(results, Result{
				RuleID:         rule.ID,
				Severity:       rule.Severity,
				Category:       rule.Category,
				Message:        rule.Message,
				Recommendation: rule.Recommendation,
				Confidence:     e.ruleConfidence(rule, ctx),
				SupportingData: supportingData(rule, ctx),
			})
		}
	}

	priorities := make(map[string]int, len(applicable))
	for _, rule := range applicable {
		priorities[rule.ID] = rule.Priority
	}
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := severityRank[results[i].Severity], severityRank[results[j].Severity]
		if ri != rj {
			return ri < rj
		}
		return priorities[results[i].RuleID] > priorities[results[j].RuleID]
	})

	return results
}

func (e *Engine) applicableRules(businessID string) []Rule {
	rules := make([]Rule, 0, len(e.general)+len(e.contextual)+2)
	rules = append(rules, e.general...)
	rules = append(rules, e.byBusiness[businessID]...)
	rules = append(rules, e.contextual...)
	return rules
}

func (e *Engine) triggered(rule Rule, businessID string, ctx *engine.MarketContext, scores engine.ComponentScores) (fired bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("rule evaluation failed",
				"rule", rule.ID, "business", businessID, "panic", fmt.Sprint(r))
			fired = false
		}
	}()

	pred, ok := e.predicates[rule.Predicate]
	if !ok {
		e.logger.Error("rule references unknown predicate",
			"rule", rule.ID, "predicate", rule.Predicate)
		return false
	}
	return pred(businessID, ctx, scores)
}

// ruleConfidence scales the category base confidence by how much of the OSM
// feature set is actually populated, capped at 1.0.
func (e *Engine) ruleConfidence(rule Rule, ctx *engine.MarketContext) float64 {
	base, ok := categoryConfidence[rule.Category]
	if !ok {
		base = 0.7
	}

	completeness := 0.0
	if len(engine.FeatureTags) > 0 {
		populated := 0
		for _, tag := range engine.FeatureTags {
			if ctx.Feature(tag) > 0 {
				populated++
			}
		}
		completeness = float64(populated) / float64(len(engine.FeatureTags))
	}

	confidence := base*completeness + 0.1
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func supportingData(rule Rule, ctx *engine.MarketContext) map[string]any {
	data := map[string]any{"rule_category": string(rule.Category)}

	switch rule.Predicate {
	case predMarketSaturation, predHighCompetition, predCafeCrowded, predMilkTeaOversaturated:
		data["competitor_counts"] = ctx.CategoryCounts
	case predNoSafetyInfra:
		data["safety_infrastructure"] = map[string]int{
			"police":   ctx.Feature(engine.TagPolice),
			"hospital": ctx.Feature(engine.TagHospital),
		}
	case predLowTransportScore:
		data["transport_options"] = map[string]int{
			"bus_stops": ctx.Feature(engine.TagBusStop),
			"subway":    ctx.Feature(engine.TagSubway),
		}
	}
	return data
}

// Summarize counts results per severity and category and derives the overall
// risk label: any blocking issue is very_high; more than two criticals is
// high; any critical or more than three warnings is medium; any warning is
// low; otherwise very_low.
func Summarize(results []Result) Summary {
	s := Summary{
		TotalTriggered: len(results),
		Categories:     make(map[Category]int, len(AllCategories)),
	}
	for _, c := range AllCategories {
		s.Categories[c] = 0
	}
	for _, r := range results {
		switch r.Severity {
		case SeverityBlocking:
			s.BlockingIssues++
		case SeverityCritical:
			s.CriticalIssues++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.InfoItems++
		}
		s.Categories[r.Category]++
	}

	switch {
	case s.BlockingIssues > 0:
		s.OverallRisk = "very_high"
	case s.CriticalIssues > 2:
		s.OverallRisk = "high"
	case s.CriticalIssues > 0 || s.Warnings > 3:
		s.OverallRisk = "medium"
	case s.Warnings > 0:
		s.OverallRisk = "low"
	default:
		s.OverallRisk = "very_low"
	}
	return s
}
