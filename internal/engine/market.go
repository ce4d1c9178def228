package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// CompetitionLevel buckets the total business count in an area.
type CompetitionLevel string

const (
	CompetitionVeryLow CompetitionLevel = "very_low"
	CompetitionLow     CompetitionLevel = "low"
	CompetitionMedium  CompetitionLevel = "medium"
	CompetitionHigh    CompetitionLevel = "high"
)

// CompetitionIntensity summarizes how contested an area already is.
type CompetitionIntensity struct {
	Level              CompetitionLevel `json:"level"`
	Score              float64          `json:"score"`
	TotalBusinesses    int              `json:"total_businesses"`
	DominantCategories []string         `json:"dominant_categories,omitempty"`
	Concentration      float64          `json:"market_concentration"` // Herfindahl-Hirschman index
	DiversityIndex     float64          `json:"diversity_index"`
}

// InfrastructureQuality breaks area infrastructure into weighted components.
type InfrastructureQuality struct {
	OverallScore float64            `json:"overall_score"`
	Rating       string             `json:"quality_rating"` // excellent/good/fair/poor
	Components   map[string]float64 `json:"component_scores"`
	Strengths    []string           `json:"strengths,omitempty"`
	Weaknesses   []string           `json:"weaknesses,omitempty"`
}

// MarketGap is an unserved demand signal detected from the context.
type MarketGap struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Opportunity string `json:"opportunity"`
	Priority    string `json:"priority"`
}

// RiskFactor flags a structural weakness of the area.
type RiskFactor struct {
	Type        string `json:"type"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// MarketInsights is the area-level analysis computed alongside per-business
// scores.
type MarketInsights struct {
	MaturityLevel   float64               `json:"maturity_level"`
	GrowthPotential float64               `json:"growth_potential"`
	Competition     CompetitionIntensity  `json:"competition_intensity"`
	Infrastructure  InfrastructureQuality `json:"infrastructure_quality"`
	IncomeLevel     IncomeLevel           `json:"income_level"`
	Accessibility   float64               `json:"accessibility_score"`
	Gaps            []MarketGap           `json:"market_gaps,omitempty"`
	Risks           []RiskFactor          `json:"risk_factors,omitempty"`
	Summary         string                `json:"summary"`
	Recommendations []string              `json:"recommendations,omitempty"`
}

const (
	competitionLowTotal    = 5
	competitionMediumTotal = 15
	competitionHighTotal   = 30
)

// AnalyzeMarket computes area-level insights from a context. Pure and
// side-effect free; safe on a shared context.
func AnalyzeMarket(ctx *MarketContext) *MarketInsights {
	insights := &MarketInsights{
		MaturityLevel:   marketMaturity(ctx),
		GrowthPotential: growthPotential(ctx),
		Competition:     analyzeCompetition(ctx),
		Infrastructure:  assessInfrastructure(ctx),
		IncomeLevel:     EstimateIncomeLevel(ctx),
		Accessibility:   accessibilityScore(ctx),
		Gaps:            findMarketGaps(ctx),
		Risks:           findRiskFactors(ctx),
	}
	insights.Summary = summarize(insights)
	insights.Recommendations = marketRecommendations(insights)
	return insights
}

// EstimateIncomeLevel derives an income bucket from office density relative to
// housing. Used when the caller has no better signal.
func EstimateIncomeLevel(ctx *MarketContext) IncomeLevel {
	residential := ctx.Feature(TagResidential)
	if residential < 1 {
		residential = 1
	}
	ratio := float64(ctx.Feature(TagOffice)) / float64(residential)
	switch {
	case ratio > 0.3:
		return IncomeHigh
	case ratio > 0.1:
		return IncomeMedium
	default:
		return IncomeLow
	}
}

func marketMaturity(ctx *MarketContext) float64 {
	density := math.Min(float64(ctx.TotalBusinesses())/50, 1.0)

	infra := ctx.Feature(TagOffice) + ctx.Feature(TagHospital) + ctx.Feature(TagSchool)
	infraMaturity := math.Min(float64(infra)/20, 1.0)

	diversity := math.Min(float64(len(ctx.CategoryCounts))/25, 1.0)

	return density*0.4 + infraMaturity*0.4 + diversity*0.2
}

func growthPotential(ctx *MarketContext) float64 {
	indicators := map[string]float64{
		TagResidential: 0.3,
		TagOffice:      0.3,
		TagSubway:      0.2,
		TagHospital:    0.1,
		TagSchool:      0.1,
	}
	score := 0.0
	for tag, w := range indicators {
		score += math.Min(float64(ctx.Feature(tag))/10, 1.0) * w
	}
	if ctx.Feature(TagSubway) > 0 {
		score *= 1.2
	}
	return math.Min(score, 1.0)
}

func analyzeCompetition(ctx *MarketContext) CompetitionIntensity {
	total := ctx.TotalBusinesses()
	if total == 0 {
		return CompetitionIntensity{Level: CompetitionVeryLow}
	}

	hhi := 0.0
	for _, n := range ctx.CategoryCounts {
		share := float64(n) / float64(total)
		hhi += share * share
	}

	type catCount struct {
		id string
		n  int
	}
	cats := make([]catCount, 0, len(ctx.CategoryCounts))
	for id, n := range ctx.CategoryCounts {
		cats = append(cats, catCount{id, n})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].n != cats[j].n {
			return cats[i].n > cats[j].n
		}
		return cats[i].id < cats[j].id
	})
	var dominant []string
	for i := 0; i < len(cats) && i < 3; i++ {
		dominant = append(dominant, cats[i].id)
	}

	level := CompetitionHigh
	switch {
	case total < competitionLowTotal:
		level = CompetitionVeryLow
	case total < competitionMediumTotal:
		level = CompetitionLow
	case total < competitionHighTotal:
		level = CompetitionMedium
	}

	return CompetitionIntensity{
		Level:              level,
		Score:              math.Min(float64(total)/competitionHighTotal, 1.0),
		TotalBusinesses:    total,
		DominantCategories: dominant,
		Concentration:      hhi,
		DiversityIndex:     1 - hhi,
	}
}

func assessInfrastructure(ctx *MarketContext) InfrastructureQuality {
	norm := func(tag string) float64 { return math.Min(float64(ctx.Feature(tag))/5, 1.0) }

	components := map[string]float64{
		"transport":  norm(TagBusStop)*0.6 + norm(TagSubway)*0.4,
		"healthcare": norm(TagHospital)*0.7 + norm(TagPharmacy)*0.3,
		"education":  norm(TagSchool),
		"safety":     norm(TagPolice),
		"recreation": norm(TagPark),
	}
	componentWeights := map[string]float64{
		"transport": 0.3, "healthcare": 0.2, "education": 0.2,
		"safety": 0.15, "recreation": 0.15,
	}

	total := 0.0
	var strengths, weaknesses []string
	for name, score := range components {
		total += score * componentWeights[name]
		if score > 0.7 {
			strengths = append(strengths, name)
		}
		if score < 0.3 {
			weaknesses = append(weaknesses, name)
		}
	}
	sort.Strings(strengths)
	sort.Strings(weaknesses)

	rating := "poor"
	switch {
	case total >= 0.8:
		rating = "excellent"
	case total >= 0.6:
		rating = "good"
	case total >= 0.4:
		rating = "fair"
	}

	return InfrastructureQuality{
		OverallScore: total,
		Rating:       rating,
		Components:   components,
		Strengths:    strengths,
		Weaknesses:   weaknesses,
	}
}

func accessibilityScore(ctx *MarketContext) float64 {
	transport := math.Min((float64(ctx.Feature(TagBusStop))*0.3+float64(ctx.Feature(TagSubway))*0.7)/5, 1.0)
	walkability := math.Min(float64(ctx.Feature(TagPark)+ctx.Feature(TagSchool))/5, 1.0)
	return transport*0.7 + walkability*0.3
}

func findMarketGaps(ctx *MarketContext) []MarketGap {
	var gaps []MarketGap

	if ctx.Feature(TagHospital) == 0 {
		gaps = append(gaps, MarketGap{
			Type:        "healthcare",
			Description: "no medical facilities in the area",
			Opportunity: "pharmacy",
			Priority:    "high",
		})
	}
	if ctx.Feature(TagSchool) > 2 && ctx.Competitors("stationery") == 0 {
		gaps = append(gaps, MarketGap{
			Type:        "education_support",
			Description: "several schools but no stationery shop",
			Opportunity: "stationery",
			Priority:    "medium",
		})
	}
	if ctx.Feature(TagOffice) > 3 {
		if ctx.Competitors("cafe") < 2 {
			gaps = append(gaps, MarketGap{
				Type:        "food_service",
				Description: "office district short on cafes",
				Opportunity: "cafe",
				Priority:    "high",
			})
		}
		if ctx.Competitors("laundry") == 0 {
			gaps = append(gaps, MarketGap{
				Type:        "convenience",
				Description: "office workers lack laundry services",
				Opportunity: "laundry",
				Priority:    "medium",
			})
		}
	}
	if ctx.Feature(TagResidential) > 5 && ctx.Competitors("grocery") == 0 {
		gaps = append(gaps, MarketGap{
			Type:        "daily_needs",
			Description: "residential area without a grocery store",
			Opportunity: "grocery",
			Priority:    "high",
		})
	}
	return gaps
}

func findRiskFactors(ctx *MarketContext) []RiskFactor {
	var risks []RiskFactor
	if ctx.TotalBusinesses() > competitionHighTotal {
		risks = append(risks, RiskFactor{
			Type: "market_saturation", Level: "high",
			Description: "area shows signs of saturation",
		})
	}
	if ctx.Feature(TagPolice) == 0 {
		risks = append(risks, RiskFactor{
			Type: "security", Level: "medium",
			Description: "no public security presence",
		})
	}
	if ctx.Feature(TagHospital) == 0 {
		risks = append(risks, RiskFactor{
			Type: "emergency_services", Level: "medium",
			Description: "no emergency medical coverage",
		})
	}
	if ctx.Feature(TagBusStop) == 0 && ctx.Feature(TagSubway) == 0 {
		risks = append(risks, RiskFactor{
			Type: "accessibility", Level: "high",
			Description: "no public transport access",
		})
	}
	return risks
}

func summarize(in *MarketInsights) string {
	switch {
	case in.MaturityLevel > 0.7 && in.GrowthPotential > 0.6:
		return "mature market with solid growth potential"
	case in.MaturityLevel > 0.5 && (in.Competition.Level == CompetitionLow || in.Competition.Level == CompetitionMedium):
		return "stable market with moderate competitive pressure"
	case in.GrowthPotential > 0.7:
		return "emerging market with high potential"
	case in.MaturityLevel < 0.3:
		return "immature market; proceed with caution"
	default:
		return "balanced market with mixed opportunities"
	}
}

func marketRecommendations(in *MarketInsights) []string {
	var recs []string
	if in.Infrastructure.OverallScore < 0.4 {
		recs = append(recs, "expect to compensate for weak local infrastructure")
	}
	switch in.Competition.Level {
	case CompetitionVeryLow, CompetitionLow:
		recs = append(recs, "good entry window with few incumbents")
	case CompetitionHigh:
		recs = append(recs, "strong differentiation strategy required")
	}
	if len(in.Gaps) > 0 {
		var high []string
		for _, g := range in.Gaps {
			if g.Priority == "high" {
				high = append(high, g.Opportunity)
			}
		}
		if len(high) > 0 {
			recs = append(recs, fmt.Sprintf("priority opportunities: %s", strings.Join(high, ", ")))
		}
	}
	switch in.IncomeLevel {
	case IncomeHigh:
		recs = append(recs, "area supports premium services")
	case IncomeLow:
		recs = append(recs, "focus on affordable, convenience-driven offers")
	}
	return recs
}
