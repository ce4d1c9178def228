package rules

import (
	"github.com/Siteline-Labs/Siteline/internal/engine"
)

// Predicate decides whether a rule fires. Predicates are pure functions keyed
// by name; rules reference them by that name rather than carrying closures, so
// the catalog stays plain data.
type Predicate func(businessID string, ctx *engine.MarketContext, scores engine.ComponentScores) bool

// Predicate names referenced by the rule catalogs.
const (
	predMarketSaturation     = "market_saturation"
	predHighCompetition      = "high_competition"
	predLowFinancialScore    = "low_financial_score"
	predHighRentArea         = "high_rent_area"
	predNoSafetyInfra        = "no_safety_infra"
	predLowTransportScore    = "low_transport_score"
	predLowMarketPotential   = "low_market_potential"
	predLowCustomerScore     = "low_customer_score"
	predFewOffices           = "few_offices"
	predCafeCrowded          = "cafe_crowded"
	predNoSchools            = "no_schools"
	predMilkTeaOversaturated = "milk_tea_oversaturated"
	predNoHospital           = "no_hospital"
	predAlways               = "always"
	predLowIncomeArea        = "low_income_area"
	predLowStudentPopulation = "low_student_population"
	predDenseResidential     = "dense_residential"
	predPandemicSensitive    = "pandemic_sensitive"
	predStronglySeasonal     = "strongly_seasonal"
	predDigitalPressure      = "digital_pressure"
)

// saturationThresholds is the per-business competitor count at which the
// market counts as oversaturated. Unlisted types default to 5.
var saturationThresholds = map[string]int{
	"milk_tea":  6,
	"cafe":      8,
	"pharmacy":  3,
	"spa":       4,
	"gaming":    2,
	"fast_food": 10,
}

const defaultSaturationThreshold = 5

var pandemicSensitive = map[string]bool{
	"spa": true, "gaming": true, "nail": true, "barbershop": true, "tattoo": true,
}

var stronglySeasonal = map[string]bool{
	"ice_cream": true, "flower_shop": true, "toy_store": true,
}

var digitalPressure = map[string]bool{
	"bookstore": true, "electronics": true, "clothing": true, "pharmacy": true,
}

func predicateRegistry() map[string]Predicate {
	return map[string]Predicate{
		predMarketSaturation: func(businessID string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			threshold, ok := saturationThresholds[businessID]
			if !ok {
				threshold = defaultSaturationThreshold
			}
			return ctx.Competitors(businessID) >= threshold
		},
		predHighCompetition: func(_ string, _ *engine.MarketContext, scores engine.ComponentScores) bool {
			s, ok := scores[engine.FactorCompetition]
			return ok && s < 0.4
		},
		predLowFinancialScore: func(_ string, _ *engine.MarketContext, scores engine.ComponentScores) bool {
			return scores[engine.FactorFinancial] < 0.3
		},
		predHighRentArea: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			commercial := ctx.Feature(engine.TagOffice) + 2*ctx.Feature(engine.TagSubway)
			return commercial > 15
		},
		predNoSafetyInfra: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			return ctx.Feature(engine.TagPolice)+ctx.Feature(engine.TagHospital) == 0
		},
		predLowTransportScore: func(_ string, _ *engine.MarketContext, scores engine.ComponentScores) bool {
			return scores[engine.FactorTransport] < 0.3
		},
		predLowMarketPotential: func(_ string, _ *engine.MarketContext, scores engine.ComponentScores) bool {
			return scores[engine.FactorMarket] < 0.3
		},
		predLowCustomerScore: func(_ string, _ *engine.MarketContext, scores engine.ComponentScores) bool {
			return scores[engine.FactorCustomer] < 0.4
		},
		predFewOffices: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			return ctx.Feature(engine.TagOffice) < 2
		},
		predCafeCrowded: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			return ctx.Competitors("cafe") > 5
		},
		predNoSchools: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			return ctx.Feature(engine.TagSchool) < 1
		},
		predMilkTeaOversaturated: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			return ctx.Competitors("milk_tea") > 8
		},
		predNoHospital: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			return ctx.Feature(engine.TagHospital) < 1
		},
		predAlways: func(_ string, _ *engine.MarketContext, _ engine.ComponentScores) bool {
			return true
		},
		predLowIncomeArea: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			return areaIncomeLevel(ctx) == engine.IncomeLow
		},
		predLowStudentPopulation: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			return studentRatio(ctx) < 0.3
		},
		predDenseResidential: func(_ string, ctx *engine.MarketContext, _ engine.ComponentScores) bool {
			return ctx.Feature(engine.TagResidential) > 10
		},
		predPandemicSensitive: func(businessID string, _ *engine.MarketContext, _ engine.ComponentScores) bool {
			return pandemicSensitive[businessID]
		},
		predStronglySeasonal: func(businessID string, _ *engine.MarketContext, _ engine.ComponentScores) bool {
			return stronglySeasonal[businessID]
		},
		predDigitalPressure: func(businessID string, _ *engine.MarketContext, _ engine.ComponentScores) bool {
			return digitalPressure[businessID]
		},
	}
}

// areaIncomeLevel is a coarser income proxy than the engine's office/housing
// ratio; it weights hospitals and parks as wealth markers.
func areaIncomeLevel(ctx *engine.MarketContext) engine.IncomeLevel {
	score := ctx.Feature(engine.TagOffice)*2 +
		ctx.Feature(engine.TagHospital)*3 +
		ctx.Feature(engine.TagPark)
	switch {
	case score > 15:
		return engine.IncomeHigh
	case score > 5:
		return engine.IncomeMedium
	default:
		return engine.IncomeLow
	}
}

// studentRatio estimates the student share of the local population from
// school counts relative to housing and office density.
func studentRatio(ctx *engine.MarketContext) float64 {
	indicators := ctx.Feature(engine.TagResidential) + ctx.Feature(engine.TagOffice)
	if indicators == 0 {
		return 0
	}
	ratio := float64(ctx.Feature(engine.TagSchool)) / float64(indicators)
	if ratio > 1 {
		return 1
	}
	return ratio
}
