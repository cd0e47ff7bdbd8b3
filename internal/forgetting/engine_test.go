package forgetting

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-systems/mnemo/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "mnemo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func defaultThresholds() Thresholds {
	return Thresholds{
		SoftScore: 0.6,
		HardScore: 0.7,
		SoftTTL: map[store.MemoryType]time.Duration{
			store.TypeWorking: 48 * time.Hour,
		},
		HardTTL: map[store.MemoryType]time.Duration{
			store.TypeWorking: 96 * time.Hour,
		},
		MaxPerRun: 500,
	}
}

func TestSweepFlagsAgedWorkingMemoryForSoftDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	old := &store.Memory{
		ID:         "mem_old",
		Type:       store.TypeWorking,
		Content:    "ephemeral scratch note",
		Importance: 0.2,
		CreatedAt:  now.Add(-72 * time.Hour), // past the 48h working TTL
	}
	require.NoError(t, s.CreateMemory(ctx, old))

	eng := NewEngine(DefaultWeights(), defaultThresholds())
	candidates, err := eng.Sweep(ctx, s, now)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "mem_old", candidates[0].MemoryID)
	assert.Contains(t, candidates[0].Reasons, "aged")
}

func TestSweepNeverHardDeletesPinned(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	pinned := &store.Memory{
		ID:         "mem_pinned",
		Type:       store.TypeWorking,
		Content:    "pinned scratch note",
		Importance: 0.1,
		CreatedAt:  now.Add(-200 * time.Hour), // well past hard TTL too
		Pinned:     true,
	}
	require.NoError(t, s.CreateMemory(ctx, pinned))

	eng := NewEngine(DefaultWeights(), defaultThresholds())
	candidates, err := eng.Sweep(ctx, s, now)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, ActionSoftDelete, candidates[0].Action)
}

func TestSweepSkipsFreshHighImportanceMemory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	fresh := &store.Memory{
		ID:         "mem_fresh",
		Type:       store.TypeSemantic,
		Content:    "durable architectural decision",
		Importance: 0.9,
		CreatedAt:  now,
	}
	require.NoError(t, s.CreateMemory(ctx, fresh))

	eng := NewEngine(DefaultWeights(), defaultThresholds())
	candidates, err := eng.Sweep(ctx, s, now)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSweepRespectsMaxPerRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		m := &store.Memory{
			ID:         "mem_" + string(rune('a'+i)),
			Type:       store.TypeWorking,
			Content:    "stale scratch note",
			Importance: 0.1,
			CreatedAt:  now.Add(-96 * time.Hour),
		}
		require.NoError(t, s.CreateMemory(ctx, m))
	}

	thresholds := defaultThresholds()
	thresholds.MaxPerRun = 2
	eng := NewEngine(DefaultWeights(), thresholds)

	candidates, err := eng.Sweep(ctx, s, now)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestForgetScoreFormula(t *testing.T) {
	w := DefaultWeights()
	got := w.Score(Features{Recency: 1, Usage: 1, Duplication: 0, Importance: 1, Pinned: true})
	// All signals maximally "keep": recency=1, usage=1, importance=1, pinned.
	want := 0.35*(1-1) + 0.25*(1-1) + 0.20*0 - 0.15*1 - 0.30*1
	assert.InDelta(t, want, got, 1e-9)
}
