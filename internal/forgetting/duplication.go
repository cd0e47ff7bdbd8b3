package forgetting

import "github.com/mnemo-systems/mnemo/internal/store"

// duplicationRatios implements spec section 4.6's "coarse same-type count
// over total": each memory's duplication_ratio is simply how much of the
// batch shares its type, a cheap proxy that doesn't require pairwise
// similarity the way internal/rank's MMR penalty does.
func duplicationRatios(memories []*store.Memory) map[string]float64 {
	counts := make(map[store.MemoryType]int, 4)
	for _, m := range memories {
		counts[m.Type]++
	}

	total := len(memories)
	out := make(map[string]float64, total)
	if total == 0 {
		return out
	}
	for _, m := range memories {
		out[m.ID] = float64(counts[m.Type]) / float64(total)
	}
	return out
}
