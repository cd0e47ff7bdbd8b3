package rank

import (
	"context"
	"fmt"
	"time"

	"github.com/mnemo-systems/mnemo/internal/search"
	"github.com/mnemo-systems/mnemo/internal/store"
)

// HybridRanker applies spec section 4.5's five-signal overlay on top of the
// relevance blend internal/search produces, selecting greedily so the MMR
// duplication penalty can account for items already chosen.
type HybridRanker struct {
	weights Weights
}

func NewHybridRanker() *HybridRanker {
	return &HybridRanker{weights: DefaultWeights()}
}

func (r *HybridRanker) WithWeights(w Weights) *HybridRanker {
	r.weights = w
	return r
}

type scored struct {
	candidate  search.Candidate
	memory     *store.Memory
	recency    float64
	importance float64
	usage      float64
	shingles   map[string]struct{}
}

// Rank overlays recency/importance/usage/duplication onto candidates and
// returns up to limit results, sorted by final score descending with the
// deterministic (pinned, importance, created_at, id) tie-break from spec
// section 4.5.
func (r *HybridRanker) Rank(_ context.Context, candidates []search.Candidate, memories map[string]*store.Memory, now time.Time, limit int) []Ranked {
	pool := make([]scored, 0, len(candidates))
	rawUsages := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		mem, ok := memories[c.MemoryID]
		if !ok {
			continue
		}
		u := rawUsage(mem.ViewCount, mem.CiteCount, mem.EditCount)
		rawUsages[c.MemoryID] = u
		pool = append(pool, scored{
			candidate:  c,
			memory:     mem,
			recency:    RecencyScore(mem.Type, mem.CreatedAt, now),
			importance: store.ClampImportance(mem.Importance),
			shingles:   contentShingles(mem.Content),
		})
	}

	normalizedUsage := minMaxNormalize(rawUsages)
	for i := range pool {
		pool[i].usage = normalizedUsage[pool[i].candidate.MemoryID]
	}

	if limit <= 0 || limit > len(pool) {
		limit = len(pool)
	}

	results := make([]Ranked, 0, limit)
	selectedShingles := make([]map[string]struct{}, 0, limit)
	remaining := pool

	for len(results) < limit && len(remaining) > 0 {
		bestIdx := 0
		bestScore := -1.0
		var bestDup float64
		for i, s := range remaining {
			dup := maxSimilarityTo(s.shingles, selectedShingles)
			score := r.weights.Relevance*s.candidate.Relevance +
				r.weights.Recency*s.recency +
				r.weights.Importance*s.importance +
				r.weights.Usage*s.usage -
				r.weights.Duplication*dup

			if betterCandidate(score, bestScore, s, remaining[bestIdx]) {
				bestIdx = i
				bestScore = score
				bestDup = dup
			}
		}

		s := remaining[bestIdx]
		results = append(results, Ranked{
			MemoryID:     s.candidate.MemoryID,
			Score:        bestScore,
			Relevance:    s.candidate.Relevance,
			Recency:      s.recency,
			Importance:   s.importance,
			Usage:        s.usage,
			Duplication:  bestDup,
			RecallReason: recallReason(s.candidate),
		})
		selectedShingles = append(selectedShingles, s.shingles)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return results
}

// betterCandidate reports whether candidate a (with score scoreA) should be
// selected over the current best b (with score scoreB).
func betterCandidate(scoreA, scoreB float64, a, b scored) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	if a.memory.Pinned != b.memory.Pinned {
		return a.memory.Pinned
	}
	if a.importance != b.importance {
		return a.importance > b.importance
	}
	if !a.memory.CreatedAt.Equal(b.memory.CreatedAt) {
		return a.memory.CreatedAt.After(b.memory.CreatedAt)
	}
	return a.candidate.MemoryID < b.candidate.MemoryID
}

func recallReason(c search.Candidate) string {
	switch {
	case c.HasVector && c.HasText:
		return "text+vector merged"
	case c.HasVector:
		return fmt.Sprintf("vector similarity: %.3f", c.VectorSimilarity)
	default:
		return "text match"
	}
}
