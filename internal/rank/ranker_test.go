package rank

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-systems/mnemo/internal/search"
	"github.com/mnemo-systems/mnemo/internal/store"
)

func TestRankPrefersHigherRelevance(t *testing.T) {
	now := time.Now().UTC()
	memories := map[string]*store.Memory{
		"mem_hi": {ID: "mem_hi", Type: store.TypeSemantic, Content: "alpha beta gamma", Importance: 0.5, CreatedAt: now},
		"mem_lo": {ID: "mem_lo", Type: store.TypeSemantic, Content: "delta epsilon zeta", Importance: 0.5, CreatedAt: now},
	}
	candidates := []search.Candidate{
		{MemoryID: "mem_hi", Relevance: 0.9, HasText: true},
		{MemoryID: "mem_lo", Relevance: 0.1, HasText: true},
	}

	ranked := NewHybridRanker().Rank(context.Background(), candidates, memories, now, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "mem_hi", ranked[0].MemoryID)
}

func TestRankTieBreaksOnPinnedFirst(t *testing.T) {
	now := time.Now().UTC()
	memories := map[string]*store.Memory{
		"mem_a": {ID: "mem_a", Type: store.TypeSemantic, Content: "shared text", Importance: 0.5, CreatedAt: now, Pinned: true},
		"mem_b": {ID: "mem_b", Type: store.TypeSemantic, Content: "shared text", Importance: 0.5, CreatedAt: now},
	}
	candidates := []search.Candidate{
		{MemoryID: "mem_a", Relevance: 0.5, HasText: true},
		{MemoryID: "mem_b", Relevance: 0.5, HasText: true},
	}

	ranked := NewHybridRanker().Rank(context.Background(), candidates, memories, now, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "mem_a", ranked[0].MemoryID, "pinned memory should win the tie")
}

func TestRankPenalizesDuplicateContent(t *testing.T) {
	now := time.Now().UTC()
	memories := map[string]*store.Memory{
		"mem_orig": {ID: "mem_orig", Type: store.TypeSemantic, Content: "spaced repetition boosts recall", Importance: 0.5, CreatedAt: now},
		"mem_dup":  {ID: "mem_dup", Type: store.TypeSemantic, Content: "spaced repetition boosts recall", Importance: 0.5, CreatedAt: now},
		"mem_uniq": {ID: "mem_uniq", Type: store.TypeSemantic, Content: "completely unrelated subject matter", Importance: 0.5, CreatedAt: now},
	}
	candidates := []search.Candidate{
		{MemoryID: "mem_orig", Relevance: 0.85, HasText: true},
		{MemoryID: "mem_dup", Relevance: 0.8, HasText: true},
		{MemoryID: "mem_uniq", Relevance: 0.79, HasText: true},
	}

	ranked := NewHybridRanker().Rank(context.Background(), candidates, memories, now, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "mem_orig", ranked[0].MemoryID)
	// mem_dup should be penalized enough by duplication to fall behind mem_uniq.
	assert.Equal(t, "mem_uniq", ranked[1].MemoryID)
}

func TestRankAttachesRecallReason(t *testing.T) {
	now := time.Now().UTC()
	memories := map[string]*store.Memory{
		"mem_both": {ID: "mem_both", Type: store.TypeSemantic, Content: "x", Importance: 0.5, CreatedAt: now},
		"mem_vec":  {ID: "mem_vec", Type: store.TypeSemantic, Content: "y", Importance: 0.5, CreatedAt: now},
		"mem_text": {ID: "mem_text", Type: store.TypeSemantic, Content: "z", Importance: 0.5, CreatedAt: now},
	}
	candidates := []search.Candidate{
		{MemoryID: "mem_both", Relevance: 0.5, HasText: true, HasVector: true},
		{MemoryID: "mem_vec", Relevance: 0.5, HasVector: true, VectorSimilarity: 0.732},
		{MemoryID: "mem_text", Relevance: 0.5, HasText: true},
	}

	ranked := NewHybridRanker().Rank(context.Background(), candidates, memories, now, 3)
	reasons := map[string]string{}
	for _, r := range ranked {
		reasons[r.MemoryID] = r.RecallReason
	}
	assert.Equal(t, "text+vector merged", reasons["mem_both"])
	assert.Equal(t, "vector similarity: 0.732", reasons["mem_vec"])
	assert.Equal(t, "text match", reasons["mem_text"])
}

func TestRecencyScoreDecaysWithHalfLife(t *testing.T) {
	now := time.Now().UTC()
	halfLifeAgo := now.Add(-2 * 24 * time.Hour) // working memory half-life is 2 days
	got := RecencyScore(store.TypeWorking, halfLifeAgo, now)
	assert.InDelta(t, 0.5, got, 1e-6)
}

func TestRawUsageMatchesSpecFormula(t *testing.T) {
	got := rawUsage(1, 1, 1)
	want := 0.6931471805599453 + 2*0.6931471805599453 + 0.5*0.6931471805599453
	assert.InDelta(t, want, got, 1e-9)
}
