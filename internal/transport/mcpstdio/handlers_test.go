package mcpstdio

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mnemo-systems/mnemo/internal/alert"
	"github.com/mnemo-systems/mnemo/internal/cache"
	"github.com/mnemo-systems/mnemo/internal/config"
	"github.com/mnemo-systems/mnemo/internal/embed"
	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
	"github.com/mnemo-systems/mnemo/internal/queue"
	"github.com/mnemo-systems/mnemo/internal/rank"
	"github.com/mnemo-systems/mnemo/internal/store"
	"github.com/mnemo-systems/mnemo/internal/tools"
)

func newTestSurface(t *testing.T) *tools.Surface {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "mnemo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	embedder := embed.NewLexicalEmbedder()
	t.Cleanup(func() { _ = embedder.Close() })

	return tools.New(
		st, st, store.NewHNSWVectorIndex(embed.LexicalDimensions), embedder,
		rank.NewHybridRanker(),
		cache.NewQueryCache(cache.DefaultQueryCacheSize, time.Minute, time.Minute),
		cache.NewEmbeddingCache(cache.DefaultEmbeddingCacheSize, time.Minute),
		queue.NewTaskQueue(2, 100),
		alert.NewMonitor(alert.DefaultThresholds(), alert.DefaultRingCapacity),
		nil,
		config.SearchConfig{DefaultLimit: 10, MaxLimit: 100, SimilarityFloor: 0.0},
	)
}

func TestHandleRememberThenRecall(t *testing.T) {
	srv := &Server{surface: newTestSurface(t)}
	ctx := context.Background()

	_, rememberOut, err := srv.handleRemember(ctx, nil, tools.RememberInput{
		Content: "the mitochondria is the powerhouse of the cell",
		Type:    "semantic",
	})
	require.NoError(t, err)
	require.NotEmpty(t, rememberOut.MemoryID)

	_, recallOut, err := srv.handleRecall(ctx, nil, tools.RecallInput{Query: "powerhouse of the cell"})
	require.NoError(t, err)
	require.NotEmpty(t, recallOut.Items)
	require.Equal(t, rememberOut.MemoryID, recallOut.Items[0].MemoryID)
}

func TestHandleForgetUnknownIDReturnsRPCNotFound(t *testing.T) {
	srv := &Server{surface: newTestSurface(t)}
	ctx := context.Background()

	_, _, err := srv.handleForget(ctx, nil, tools.ForgetInput{ID: "does-not-exist"})
	require.Error(t, err)
	rpcErr, ok := err.(*rpcError)
	require.True(t, ok)
	require.Equal(t, rpcNotFound, rpcErr.Code)
}

func TestHandlePinThenUnpinRequiresConfirmAboveImportanceThreshold(t *testing.T) {
	srv := &Server{surface: newTestSurface(t)}
	ctx := context.Background()

	importance := 0.95
	_, rememberOut, err := srv.handleRemember(ctx, nil, tools.RememberInput{
		Content:    "critical deployment runbook",
		Type:       "procedural",
		Importance: &importance,
	})
	require.NoError(t, err)

	_, pinOut, err := srv.handlePin(ctx, nil, tools.PinInput{ID: rememberOut.MemoryID})
	require.NoError(t, err)
	require.Len(t, pinOut.Results, 1)
	require.True(t, pinOut.Results[0].Success)

	_, unpinOut, err := srv.handleUnpin(ctx, nil, tools.PinInput{ID: rememberOut.MemoryID})
	require.NoError(t, err)
	require.Len(t, unpinOut.Results, 1)
	require.False(t, unpinOut.Results[0].Success)
	require.NotEmpty(t, unpinOut.Results[0].Error)
}

func TestMapErrorTranslatesEachCategory(t *testing.T) {
	cases := []struct {
		err  *mnerr.MemError
		code int
	}{
		{mnerr.Invalid(mnerr.ErrCodeInvalidRequest, "bad input"), jsonRPCInvalidParams},
		{mnerr.NotFound(mnerr.ErrCodeMemoryNotFound, "missing"), rpcNotFound},
		{mnerr.Conflict(mnerr.ErrCodePinnedCannotHardDelete, "cannot hard-delete a pinned memory"), rpcConflict},
		{mnerr.Busy(mnerr.ErrCodeStoreBusy, "locked", nil), rpcBusy},
		{mnerr.Unavailable(mnerr.ErrCodeEmbeddingUnavailable, "down"), rpcUnavailable},
	}

	for _, tc := range cases {
		got := mapError(tc.err)
		rpcErr, ok := got.(*rpcError)
		require.True(t, ok)
		require.Equal(t, tc.code, rpcErr.Code)
	}
}
