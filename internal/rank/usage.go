package rank

import "math"

// rawUsage implements spec section 4.5's usage formula before batch
// normalization: log(1+views) + 2*log(1+cites) + 0.5*log(1+edits).
func rawUsage(views, cites, edits int) float64 {
	return math.Log1p(float64(views)) + 2*math.Log1p(float64(cites)) + 0.5*math.Log1p(float64(edits))
}

// minMaxNormalize rescales raw usage scores to [0,1] across the candidate
// batch. A batch with no spread collapses every non-zero score to 1.0.
func minMaxNormalize(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	spread := max - min
	for id, s := range scores {
		switch {
		case spread == 0 && s == 0:
			out[id] = 0
		case spread == 0:
			out[id] = 1
		default:
			out[id] = (s - min) / spread
		}
	}
	return out
}
