package search

import "math"

// minMaxNormalize rescales raw scores to [0,1] over the candidate batch, the
// min-max normalization spec section 4.3 requires before BM25 scores enter
// the relevance blend. A batch with no spread collapses to 1.0 for every
// non-zero score (all candidates equally relevant) and 0 otherwise.
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
