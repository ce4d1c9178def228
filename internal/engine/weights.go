package engine

import (
	"fmt"
	"math"
)

// WeightMap assigns a relative importance to each factor. After resolution all
// values are >= 0 and sum to 1.0 (±1e-6 tolerance).
type WeightMap map[Factor]float64

// Sum returns the total of all weights.
func (w WeightMap) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightMap) Validate() error {
	if math.Abs(w.Sum()-1.0) > 1e-6 {
		return fmt.Errorf("weights sum to %.6f, must sum to 1.0", w.Sum())
	}
	for f, v := range w {
		if v < 0 {
			return fmt.Errorf("negative weight for %s: %f", f, v)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (w WeightMap) Clone() WeightMap {
	cp := make(WeightMap, len(w))
	for k, v := range w {
		cp[k] = v
	}
	return cp
}

// Normalize scales the map in place so it sums to 1.0. A zero-sum map is left
// untouched; callers guard that case.
func (w WeightMap) Normalize() {
	total := w.Sum()
	if total <= 0 {
		return
	}
	for k, v := range w {
		w[k] = v / total
	}
}

// MarketCondition adjusts the weight mix for the broader market cycle.
type MarketCondition string

const (
	MarketHighGrowth MarketCondition = "high_growth"
	MarketMature     MarketCondition = "mature_market"
	MarketDeclining  MarketCondition = "declining_market"
)

// LocationType adjusts the weight mix for the kind of neighborhood.
type LocationType string

const (
	LocationCityCenter  LocationType = "city_center"
	LocationResidential LocationType = "residential"
	LocationCommercial  LocationType = "commercial"
	LocationSuburban    LocationType = "suburban"
)

// WeightResolver produces normalized per-business weight maps. Tables are
// built once at engine construction and read-only afterwards, so a single
// resolver is safe for concurrent use.
type WeightResolver struct {
	defaults   WeightMap
	byBusiness map[string]WeightMap
	byMarket   map[MarketCondition]map[Factor]float64
	byLocation map[LocationType]map[Factor]float64
}

// NewWeightResolver builds the resolver with the stock weight tables.
func NewWeightResolver() *WeightResolver {
	return &WeightResolver{
		defaults:   defaultWeights(),
		byBusiness: businessWeights(),
		byMarket:   marketConditionModifiers(),
		byLocation: locationTypeModifiers(),
	}
}

// Defaults returns a copy of the fallback weight table.
func (r *WeightResolver) Defaults() WeightMap {
	return r.defaults.Clone()
}

// Resolve returns the normalized weight map for a business, optionally
// adjusted for market condition and location type. Unknown business ids take
// the default table; this is never an error. If all multipliers drive the sum
// to zero, the default table is returned unmodified rather than dividing by
// zero.
func (r *WeightResolver) Resolve(businessID string, condition MarketCondition, location LocationType) WeightMap {
	base, ok := r.byBusiness[businessID]
	if !ok {
		base = r.defaults
	}
	weights := base.Clone()

	if mods, ok := r.byMarket[condition]; ok {
		for f, m := range mods {
			if _, present := weights[f]; present {
				weights[f] *= m
			}
		}
	}
	if mods, ok := r.byLocation[location]; ok {
		for f, m := range mods {
			if _, present := weights[f]; present {
				weights[f] *= m
			}
		}
	}

	if weights.Sum() <= 0 {
		return r.defaults.Clone()
	}
	weights.Normalize()
	return weights
}

func defaultWeights() WeightMap {
	return WeightMap{
		FactorCustomer:    0.20,
		FactorCompetition: 0.18,
		FactorMarket:      0.15,
		FactorFinancial:   0.15,
		FactorSafety:      0.08,
		FactorTransport:   0.12,
		FactorLandmark:    0.07,
		FactorOperational: 0.05,
	}
}

func businessWeights() map[string]WeightMap {
	return map[string]WeightMap{
		"cafe": {
			FactorCustomer:    0.25,
			FactorCompetition: 0.20,
			FactorMarket:      0.12,
			FactorFinancial:   0.13,
			FactorSafety:      0.05,
			FactorTransport:   0.15,
			FactorLandmark:    0.08,
			FactorOperational: 0.02,
		},
		"milk_tea": {
			FactorCustomer:    0.30,
			FactorCompetition: 0.22,
			FactorMarket:      0.10,
			FactorFinancial:   0.12,
			FactorSafety:      0.03,
			FactorTransport:   0.18,
			FactorLandmark:    0.04,
			FactorOperational: 0.01,
		},
		"fast_food": {
			FactorCustomer:    0.15,
			FactorCompetition: 0.25,
			FactorMarket:      0.15,
			FactorFinancial:   0.18,
			FactorSafety:      0.05,
			FactorTransport:   0.17,
			FactorLandmark:    0.03,
			FactorOperational: 0.02,
		},
		"spa": {
			FactorCustomer:    0.28,
			FactorCompetition: 0.15,
			FactorMarket:      0.18,
			FactorFinancial:   0.20,
			FactorSafety:      0.10,
			FactorTransport:   0.05,
			FactorLandmark:    0.02,
			FactorOperational: 0.02,
		},
		"pharmacy": {
			FactorCustomer:    0.12,
			FactorCompetition: 0.20,
			FactorMarket:      0.15,
			FactorFinancial:   0.15,
			FactorSafety:      0.12,
			FactorTransport:   0.18,
			FactorLandmark:    0.06,
			FactorOperational: 0.02,
		},
		"hair_salon": {
			FactorCustomer:    0.22,
			FactorCompetition: 0.18,
			FactorMarket:      0.13,
			FactorFinancial:   0.16,
			FactorSafety:      0.08,
			FactorTransport:   0.10,
			FactorLandmark:    0.05,
			FactorOperational: 0.08,
		},
		"grocery": {
			FactorCustomer:    0.10,
			FactorCompetition: 0.16,
			FactorMarket:      0.12,
			FactorFinancial:   0.18,
			FactorSafety:      0.08,
			FactorTransport:   0.25,
			FactorLandmark:    0.08,
			FactorOperational: 0.03,
		},
		"clothing": {
			FactorCustomer:    0.30,
			FactorCompetition: 0.20,
			FactorMarket:      0.18,
			FactorFinancial:   0.15,
			FactorSafety:      0.05,
			FactorTransport:   0.08,
			FactorLandmark:    0.02,
			FactorOperational: 0.02,
		},
		"electronics": {
			FactorCustomer:    0.18,
			FactorCompetition: 0.22,
			FactorMarket:      0.20,
			FactorFinancial:   0.20,
			FactorSafety:      0.08,
			FactorTransport:   0.08,
			FactorLandmark:    0.02,
			FactorOperational: 0.02,
		},
		"gaming": {
			FactorCustomer:    0.35,
			FactorCompetition: 0.18,
			FactorMarket:      0.15,
			FactorFinancial:   0.12,
			FactorSafety:      0.05,
			FactorTransport:   0.10,
			FactorLandmark:    0.03,
			FactorOperational: 0.02,
		},
	}
}

func marketConditionModifiers() map[MarketCondition]map[Factor]float64 {
	return map[MarketCondition]map[Factor]float64{
		MarketHighGrowth: {
			FactorMarket:      1.3,
			FactorCompetition: 0.9,
			FactorFinancial:   1.2,
		},
		MarketMature: {
			FactorCompetition: 1.2,
			FactorCustomer:    1.1,
			FactorOperational: 1.1,
		},
		MarketDeclining: {
			FactorMarket:      0.7,
			FactorCompetition: 1.4,
			FactorFinancial:   0.8,
		},
	}
}

func locationTypeModifiers() map[LocationType]map[Factor]float64 {
	return map[LocationType]map[Factor]float64{
		LocationCityCenter: {
			FactorTransport:   1.3,
			FactorCompetition: 1.2,
			FactorFinancial:   0.8, // rent pressure
		},
		LocationResidential: {
			FactorCustomer:    1.2,
			FactorSafety:      1.2,
			FactorCompetition: 0.9,
		},
		LocationCommercial: {
			FactorLandmark:    1.3,
			FactorTransport:   1.1,
			FactorCompetition: 1.1,
		},
		LocationSuburban: {
			FactorSafety:    1.2,
			FactorFinancial: 1.1,
			FactorTransport: 0.8,
		},
	}
}
