package forgetting

import (
	"math"
	"time"

	"github.com/mnemo-systems/mnemo/internal/store"
)

// usageScore implements spec section 4.6's "recency-weighted access score
// combined with normalized counter score": the average of how recently the
// memory was last accessed and its batch-normalized view/cite/edit counter.
func usageScore(mem *store.Memory, now time.Time, normalizedCounter float64) float64 {
	accessRecency := 0.0
	if mem.LastAccessed != nil {
		ageDays := now.Sub(*mem.LastAccessed).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		accessRecency = math.Exp(-math.Ln2 * ageDays / 30) // 30-day half-life on raw access recency
	}
	return 0.5*accessRecency + 0.5*normalizedCounter
}

// rawCounterScore is the log-scaled counter signal, pre-normalization.
func rawCounterScore(mem *store.Memory) float64 {
	return math.Log1p(float64(mem.ViewCount)) + 2*math.Log1p(float64(mem.CiteCount)) + 0.5*math.Log1p(float64(mem.EditCount))
}

// minMaxNormalize rescales raw scores to [0,1] over the batch.
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
