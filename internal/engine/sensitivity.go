package engine

import "math"

// defaultAdjustment is the weight perturbation applied when the caller does
// not supply one (20%).
const defaultAdjustment = 0.2

// SensitivityLevel buckets a factor's elasticity.
type SensitivityLevel string

const (
	SensitivityHigh   SensitivityLevel = "high"
	SensitivityMedium SensitivityLevel = "medium"
	SensitivityLow    SensitivityLevel = "low"
)

// AnalyzeSensitivity measures how much the aggregate score moves when each
// factor's weight is scaled by (1+adjustmentPct) and the map renormalized.
// Component scores are reused as-is; only the aggregation weights change. The
// returned values are percentage deltas relative to the base score: 0 when
// the base score is 0.
func AnalyzeSensitivity(scores ComponentScores, weights WeightMap, adjustmentPct float64) map[Factor]float64 {
	if adjustmentPct == 0 {
		adjustmentPct = defaultAdjustment
	}
	base, _ := Aggregate(scores, weights)

	out := make(map[Factor]float64, len(weights))
	for factor := range weights {
		if base == 0 {
			out[factor] = 0
			continue
		}
		perturbed := weights.Clone()
		perturbed[factor] *= 1 + adjustmentPct
		if perturbed.Sum() <= 0 {
			out[factor] = 0
			continue
		}
		perturbed.Normalize()

		modified, _ := Aggregate(scores, perturbed)
		out[factor] = math.Abs(modified-base) / base * 100
	}
	return out
}

// ClassifySensitivity maps a sensitivity percentage to its level: >30% high,
// 10-30% medium, <10% low.
func ClassifySensitivity(pct float64) SensitivityLevel {
	switch {
	case pct > 30:
		return SensitivityHigh
	case pct >= 10:
		return SensitivityMedium
	default:
		return SensitivityLow
	}
}
