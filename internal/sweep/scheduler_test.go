package sweep

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mnemo-systems/mnemo/internal/alert"
	"github.com/mnemo-systems/mnemo/internal/forgetting"
	"github.com/mnemo-systems/mnemo/internal/queue"
	"github.com/mnemo-systems/mnemo/internal/review"
	"github.com/mnemo-systems/mnemo/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "mnemo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSchedulerRunsForgetAndReviewTicksUntilStopped(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	staleAccess := time.Now().Add(-96 * time.Hour)
	require.NoError(t, st.CreateMemory(ctx, &store.Memory{
		ID:           "m1",
		Content:      "short-lived working note",
		Type:         store.TypeWorking,
		Importance:   0.1,
		CreatedAt:    time.Now().Add(-96 * time.Hour),
		LastAccessed: &staleAccess,
	}))

	forgetEngine := forgetting.NewEngine(forgetting.DefaultWeights(), forgetting.Thresholds{
		SoftScore: 0.1,
		HardScore: 0.9,
		SoftTTL:   map[store.MemoryType]time.Duration{store.TypeWorking: time.Hour},
		HardTTL:   map[store.MemoryType]time.Duration{store.TypeWorking: 1000 * time.Hour},
		MaxPerRun: 10,
	})
	reviewEngine := review.NewEngine(review.NewScheduler(review.DefaultWeights(), review.DefaultBounds()))

	s := New(Config{ForgetInterval: 10 * time.Millisecond, ReviewInterval: 10 * time.Millisecond, AlertInterval: time.Hour}, st, forgetEngine, reviewEngine, nil, nil, nil)
	s.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	mem, err := st.GetMemory(ctx, "m1")
	require.NoError(t, err)
	require.True(t, mem.Deleted)
}

func TestSchedulerSamplesQueueIntoAlerts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	forgetEngine := forgetting.NewEngine(forgetting.DefaultWeights(), forgetting.Thresholds{MaxPerRun: 10})
	reviewEngine := review.NewEngine(review.NewScheduler(review.DefaultWeights(), review.DefaultBounds()))

	tasks := queue.NewTaskQueue(1, 10)
	tasks.Start(ctx)
	defer tasks.Stop(time.Second)

	monitor := alert.NewMonitor([]alert.Threshold{
		{Metric: alert.MetricThroughput, Level: alert.LevelCritical, Value: 1000, Cooldown: 0},
	}, alert.DefaultRingCapacity)

	s := New(Config{ForgetInterval: time.Hour, ReviewInterval: time.Hour, AlertInterval: 10 * time.Millisecond}, st, forgetEngine, reviewEngine, tasks, monitor, nil)
	s.Start(ctx)
	time.Sleep(40 * time.Millisecond)
	s.Stop()

	require.NotEmpty(t, monitor.Snapshot())
}
