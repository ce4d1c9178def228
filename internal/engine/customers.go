package engine

// customerMatchMatrix maps a customer segment to per-business affinity scores
// in [0,1]. Pairs absent from a known segment default to 0.4; segments absent
// from the matrix fall back to generalDefaults, then 0.5.
var customerMatchMatrix = map[string]map[string]float64{
	"student": {
		"milk_tea":  1.0,
		"fast_food": 0.9,
		"cafe":      0.8,
		"printing":  0.8,
		"gaming":    0.7,
		"bookstore": 0.6,
	},
	"office": {
		"cafe":     1.0,
		"pharmacy": 0.8,
		"laundry":  0.7,
		"bakery":   0.6,
		"spa":      0.6,
	},
	"family": {
		"grocery":     1.0,
		"pharmacy":    0.9,
		"clothing":    0.8,
		"pet_shop":    0.6,
		"flower_shop": 0.6,
	},
	"tourist": {
		"ice_cream":  1.0,
		"spa":        0.8,
		"drink_shop": 0.8,
		"tattoo":     0.7,
	},
}

var generalDefaults = map[string]float64{
	"cafe":        0.7,
	"milk_tea":    0.7,
	"fast_food":   0.7,
	"grocery":     0.8,
	"pharmacy":    0.75,
	"drink_shop":  0.7,
	"bakery":      0.7,
	"clothing":    0.65,
	"electronics": 0.6,
	"spa":         0.55,
	"hair_salon":  0.65,
	"nail":        0.6,
	"flower_shop": 0.6,
	"stationery":  0.55,
	"pet_shop":    0.55,
	"barbershop":  0.5,
	"bookstore":   0.5,
	"laundry":     0.5,
	"repair":      0.5,
	"toy_store":   0.5,
	"ice_cream":   0.5,
	"printing":    0.5,
	"tattoo":      0.4,
	"gaming":      0.4,
	"bike_shop":   0.4,
}

// demographicMultipliers adjust the customer match by area income level.
// Premium-leaning businesses do better in high-income areas, budget-leaning
// ones in low-income areas. Unlisted pairs multiply by 1.0.
var demographicMultipliers = map[string]map[IncomeLevel]float64{
	"spa":         {IncomeLow: 0.6, IncomeHigh: 1.3},
	"nail":        {IncomeLow: 0.7, IncomeHigh: 1.2},
	"electronics": {IncomeLow: 0.8, IncomeHigh: 1.2},
	"clothing":    {IncomeLow: 0.8, IncomeHigh: 1.15},
	"fast_food":   {IncomeLow: 1.15, IncomeHigh: 0.9},
	"grocery":     {IncomeLow: 1.1},
	"milk_tea":    {IncomeLow: 1.05, IncomeHigh: 0.95},
	"laundry":     {IncomeHigh: 1.1},
}

// CustomerMatch returns the base affinity between a business and a customer
// target. Unknown business ids never fail; they take the generic default.
func CustomerMatch(businessID, customerTarget string) float64 {
	if row, ok := customerMatchMatrix[customerTarget]; ok {
		if v, ok := row[businessID]; ok {
			return v
		}
		return 0.4
	}
	if v, ok := generalDefaults[businessID]; ok {
		return v
	}
	return 0.5
}

func demographicMultiplier(businessID string, income IncomeLevel) float64 {
	if row, ok := demographicMultipliers[businessID]; ok {
		if m, ok := row[income]; ok {
			return m
		}
	}
	return 1.0
}
