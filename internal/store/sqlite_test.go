package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mnemo.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleMemory(id string) *Memory {
	return &Memory{
		ID:           id,
		Type:         TypeSemantic,
		Content:      "Testing spaced repetition algorithms",
		Importance:   0.8,
		PrivacyScope: ScopePrivate,
		CreatedAt:    time.Now().UTC(),
		Tags:         []string{"study", "sr"},
	}
}

func TestCreateAndGetMemory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	m := sampleMemory("mem_1")

	require.NoError(t, s.CreateMemory(ctx, m))

	got, err := s.GetMemory(ctx, "mem_1")
	require.NoError(t, err)
	assert.Equal(t, m.Content, got.Content)
	assert.Equal(t, []string{"study", "sr"}, got.Tags)
}

func TestGetMemoryNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetMemory(context.Background(), "mem_missing")
	require.Error(t, err)
}

func TestSoftThenHardDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	m := sampleMemory("mem_del")
	require.NoError(t, s.CreateMemory(ctx, m))

	require.NoError(t, s.SoftDeleteMemory(ctx, "mem_del"))
	got, err := s.GetMemory(ctx, "mem_del")
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	require.NoError(t, s.HardDeleteMemory(ctx, "mem_del"))
	_, err = s.GetMemory(ctx, "mem_del")
	require.Error(t, err)

	// Repeating hard delete yields NotFound, never Internal.
	err = s.HardDeleteMemory(ctx, "mem_del")
	require.Error(t, err)
}

func TestHardDeleteRejectsPinned(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	m := sampleMemory("mem_pinned")
	m.Pinned = true
	require.NoError(t, s.CreateMemory(ctx, m))

	err := s.HardDeleteMemory(ctx, "mem_pinned")
	require.Error(t, err)

	got, getErr := s.GetMemory(ctx, "mem_pinned")
	require.NoError(t, getErr)
	assert.False(t, got.Deleted)
}

func TestListMemoriesFiltersByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateMemory(ctx, sampleMemory("mem_a")))
	require.NoError(t, s.CreateMemory(ctx, sampleMemory("mem_b")))

	out, err := s.ListMemories(ctx, Filter{IDs: []string{"mem_a"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "mem_a", out[0].ID)
}

func TestListMemoriesExcludesSoftDeletedByDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateMemory(ctx, sampleMemory("mem_live")))
	require.NoError(t, s.CreateMemory(ctx, sampleMemory("mem_gone")))
	require.NoError(t, s.SoftDeleteMemory(ctx, "mem_gone"))

	out, err := s.ListMemories(ctx, Filter{})
	require.NoError(t, err)
	ids := make([]string, len(out))
	for i, m := range out {
		ids[i] = m.ID
	}
	assert.Contains(t, ids, "mem_live")
	assert.NotContains(t, ids, "mem_gone")
}

func TestFeedbackAppendAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateMemory(ctx, sampleMemory("mem_fb")))

	require.NoError(t, s.AppendFeedback(ctx, &FeedbackEvent{
		MemoryID: "mem_fb", Kind: FeedbackHelpful, Score: 1, CreatedAt: time.Now(),
	}))

	events, err := s.ListFeedback(ctx, "mem_fb")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, FeedbackHelpful, events[0].Kind)
}

func TestEmbeddingUpsertGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateMemory(ctx, sampleMemory("mem_emb")))

	e := &Embedding{MemoryID: "mem_emb", Vector: []float32{0.1, 0.2, 0.3}, Dimension: 3, Model: "lexical", CreatedAt: time.Now()}
	require.NoError(t, s.UpsertEmbedding(ctx, e))

	got, err := s.GetEmbedding(ctx, "mem_emb")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3}, toFloat64(got.Vector), 1e-6)

	require.NoError(t, s.DeleteEmbedding(ctx, "mem_emb"))
	_, err = s.GetEmbedding(ctx, "mem_emb")
	require.Error(t, err)
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

func TestReviewScheduleUpsertAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateMemory(ctx, sampleMemory("mem_rev")))

	now := time.Now().UTC()
	r := &ReviewSchedule{MemoryID: "mem_rev", IntervalDays: 10, LastReviewedAt: now, NextReviewAt: now.AddDate(0, 0, 10), LastRecallProbability: 0.9}
	require.NoError(t, s.UpsertReviewSchedule(ctx, r))

	got, err := s.GetReviewSchedule(ctx, "mem_rev")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.IntervalDays)
}

func TestHardDeleteRemovesDependents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateMemory(ctx, sampleMemory("mem_cascade")))
	require.NoError(t, s.UpsertEmbedding(ctx, &Embedding{MemoryID: "mem_cascade", Vector: []float32{1, 2}, Dimension: 2, Model: "lexical", CreatedAt: time.Now()}))
	require.NoError(t, s.AppendFeedback(ctx, &FeedbackEvent{MemoryID: "mem_cascade", Kind: FeedbackViewed, CreatedAt: time.Now()}))

	require.NoError(t, s.HardDeleteMemory(ctx, "mem_cascade"))

	_, err := s.GetEmbedding(ctx, "mem_cascade")
	require.Error(t, err)
	events, err := s.ListFeedback(ctx, "mem_cascade")
	require.NoError(t, err)
	assert.Empty(t, events)
}
