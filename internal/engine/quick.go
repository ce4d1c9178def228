package engine

import "math"

// QuickScore is the original five-factor formula kept for cheap first-pass
// ranking: customer match, a linear competitor falloff, and raw count-based
// safety/transport/landmark signals. weights normally carries just those five
// factors. Returns the 0-100 score and the component breakdown.
func QuickScore(businessID string, in Inputs, ctx *MarketContext, weights WeightMap) (float64, ComponentScores) {
	scores := ComponentScores{
		FactorCustomer:    CustomerMatch(businessID, in.CustomerTarget),
		FactorCompetition: math.Max(1-float64(ctx.Competitors(businessID))/10, 0),
		FactorSafety:      math.Min(float64(ctx.Feature(TagPolice)+ctx.Feature(TagHospital)), 5) / 5,
		FactorTransport:   math.Min(float64(ctx.Feature(TagBusStop)), 5) / 5,
		FactorLandmark:    math.Min(float64(ctx.Feature(TagSchool)+ctx.Feature(TagOffice)+ctx.Feature(TagPark)), 10) / 10,
	}

	total := 0.0
	for f, w := range weights {
		if s, ok := scores[f]; ok {
			total += s * w
		}
	}
	return total * 100, scores
}
