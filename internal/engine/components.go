package engine

import "math"

// Population density thresholds (people per km²) used to bucket the density
// signal.
const (
	densityMedium = 500
	densityHigh   = 1500
	densityPeak   = 3000
)

// baseCapacity estimates how many outlets of a type a neutral area can
// support. Scaled by density and income before computing saturation.
var baseCapacity = map[string]float64{
	"cafe":      8,
	"milk_tea":  6,
	"fast_food": 10,
	"pharmacy":  3,
	"spa":       4,
	"gaming":    2,
	"grocery":   6,
	"clothing":  7,
	"bakery":    5,
}

const defaultCapacity = 5

// profitMargin is a rough sector margin constant feeding the financial
// viability score.
var profitMargin = map[string]float64{
	"milk_tea":    0.65,
	"cafe":        0.55,
	"drink_shop":  0.60,
	"spa":         0.50,
	"nail":        0.55,
	"fast_food":   0.45,
	"bakery":      0.50,
	"pharmacy":    0.35,
	"clothing":    0.45,
	"electronics": 0.25,
	"grocery":     0.20,
	"gaming":      0.40,
}

const defaultMargin = 0.40

// competitionIntensity scales the saturation score by how aggressively a
// sector competes. Food & beverage and entertainment run hotter than average;
// service trades run cooler.
var competitionIntensity = map[Category]float64{
	CategoryFoodBeverage:  0.9,
	CategoryEntertainment: 0.9,
	CategoryRetail:        1.0,
	CategoryService:       1.1,
}

// ScoreComponents computes the eight bounded sub-scores for a business at a
// site. Each component is computed independently, the seasonal factor is
// applied uniformly, then business-type modifiers shift individual components.
// Every returned value is clamped to [0,1].
func ScoreComponents(businessID string, in Inputs, ctx *MarketContext) ComponentScores {
	scores := ComponentScores{
		FactorCustomer:    customerScore(businessID, in.CustomerTarget, ctx),
		FactorCompetition: competitionScore(businessID, ctx),
		FactorSafety:      safetyScore(ctx),
		FactorTransport:   transportScore(ctx),
		FactorLandmark:    landmarkScore(ctx),
		FactorMarket:      marketPotentialScore(ctx),
		FactorOperational: operationalScore(ctx),
		FactorFinancial:   financialScore(businessID, ctx),
	}

	seasonal := ctx.SeasonalFactor
	if seasonal <= 0 {
		seasonal = SeasonalFactor(businessID, in.CustomerTarget, in.Month)
	}
	for f := range scores {
		scores[f] *= seasonal
	}

	applyCategoryModifiers(businessID, scores)

	for f := range scores {
		scores[f] = clamp01(scores[f])
	}
	return scores
}

func customerScore(businessID, customerTarget string, ctx *MarketContext) float64 {
	base := CustomerMatch(businessID, customerTarget)
	return clamp01(base * demographicMultiplier(businessID, ctx.IncomeLevel))
}

// competitionScore puts competitor count against an estimated market capacity
// and maps the saturation ratio through a logistic curve centered at 50%
// saturation. Zero capacity means no room regardless of competitor count.
func competitionScore(businessID string, ctx *MarketContext) float64 {
	capacity := capacityFor(businessID)
	capacity *= densityFactor(ctx.PopulationDensity)
	capacity *= incomeFactor(ctx.IncomeLevel)
	if capacity <= 0 {
		return 0
	}

	saturation := float64(ctx.Competitors(businessID)) / capacity
	score := 1.0 / (1.0 + math.Exp(5*(saturation-0.5)))

	intensity, ok := competitionIntensity[CategoryOf(businessID)]
	if !ok {
		intensity = 1.0
	}
	return clamp01(score * intensity)
}

func capacityFor(businessID string) float64 {
	if c, ok := baseCapacity[businessID]; ok {
		return c
	}
	return defaultCapacity
}

func densityFactor(density float64) float64 {
	switch {
	case density >= densityPeak:
		return 1.3
	case density >= densityHigh:
		return 1.15
	case density >= densityMedium:
		return 1.0
	default:
		return 0.7
	}
}

func incomeFactor(income IncomeLevel) float64 {
	switch income {
	case IncomeHigh:
		return 1.2
	case IncomeLow:
		return 0.8
	default:
		return 1.0
	}
}

func safetyScore(ctx *MarketContext) float64 {
	n := ctx.Feature(TagPolice) + ctx.Feature(TagHospital)
	return math.Min(float64(n), 3) / 3
}

func transportScore(ctx *MarketContext) float64 {
	n := ctx.Feature(TagBusStop) + 2*ctx.Feature(TagSubway)
	return math.Min(float64(n), 5) / 5
}

func landmarkScore(ctx *MarketContext) float64 {
	n := ctx.Feature(TagSchool) + ctx.Feature(TagOffice) + ctx.Feature(TagPark)
	return math.Min(float64(n), 10) / 10
}

// marketPotentialScore averages three normalized signals: population density,
// income level, and the transport/office infrastructure base.
func marketPotentialScore(ctx *MarketContext) float64 {
	density := math.Min(ctx.PopulationDensity/densityPeak, 1.0)
	income := incomeSignal(ctx.IncomeLevel)
	infra := math.Min(
		float64(ctx.Feature(TagBusStop)+2*ctx.Feature(TagSubway)+ctx.Feature(TagOffice))/10, 1.0)
	return (density + income + infra) / 3
}

func incomeSignal(income IncomeLevel) float64 {
	switch income {
	case IncomeHigh:
		return 0.9
	case IncomeLow:
		return 0.3
	default:
		return 0.6
	}
}

// operationalScore averages labor availability (residential density), supply
// chain reach (transport density), and a regulatory-acceptance proxy from how
// much business already operates nearby.
func operationalScore(ctx *MarketContext) float64 {
	labor := math.Min(float64(ctx.Feature(TagResidential))/10, 1.0)
	supply := math.Min(float64(ctx.Feature(TagBusStop)+ctx.Feature(TagSubway))/5, 1.0)
	regulatory := math.Min(float64(ctx.TotalBusinesses())/30, 1.0)
	return (labor + supply + regulatory) / 3
}

// financialScore combines foot-traffic-adjusted revenue potential, a rent
// penalty that falls off linearly with rent level, and the sector margin.
func financialScore(businessID string, ctx *MarketContext) float64 {
	revenue := clamp01(ctx.FootTraffic) * incomeSignal(ctx.IncomeLevel)

	rent := ctx.RentLevel
	if rent < 1 {
		rent = 2 // missing rent data defaults to mid-market
	}
	if rent > 4 {
		rent = 4
	}
	rentScore := 1.0 - float64(rent-1)/3

	margin, ok := profitMargin[businessID]
	if !ok {
		margin = defaultMargin
	}

	return math.Min((revenue*0.4+rentScore*0.3+margin*0.3)/1.0, 1.0)
}

// applyCategoryModifiers shifts components by business type: food & beverage
// leans on transit and landmarks, service trades on customer fit.
func applyCategoryModifiers(businessID string, scores ComponentScores) {
	switch CategoryOf(businessID) {
	case CategoryFoodBeverage:
		scores[FactorTransport] *= 1.2
		scores[FactorLandmark] *= 1.1
	case CategoryService:
		scores[FactorTransport] *= 0.9
		scores[FactorCustomer] *= 1.2
	}
}
