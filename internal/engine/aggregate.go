package engine

// Aggregate combines component scores and weights into a 0-100 score plus a
// confidence value. Only factors present in both maps contribute; the score is
// renormalized over the weight mass actually used, so a partial component set
// still lands on the full 0-100 scale. No overlap at all yields score 0.
//
// Confidence starts at 1 minus the weighted variance of components around the
// neutral 0.5 midpoint, floored at 0.5: variance alone is a weak trust proxy
// and must not drive reported confidence arbitrarily low.
func Aggregate(scores ComponentScores, weights WeightMap) (float64, float64) {
	var weighted, used float64
	for f, w := range weights {
		s, ok := scores[f]
		if !ok {
			continue
		}
		weighted += clamp01(s) * w
		used += w
	}
	if used <= 0 {
		return 0, 0.5
	}

	final := 100 * weighted / used

	variance := 0.0
	for f, w := range weights {
		s, ok := scores[f]
		if !ok {
			continue
		}
		d := clamp01(s) - 0.5
		variance += w * d * d
	}
	confidence := clamp(1-variance, 0.5, 1.0)

	return final, confidence
}
