package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskQueueRunsSubmittedTask(t *testing.T) {
	q := NewTaskQueue(2, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	var ran atomic.Bool
	done := make(chan struct{})
	err := q.Submit(&Task{
		ID:   "t1",
		Kind: KindMemoryOperation,
		Run: func(ctx context.Context) error {
			ran.Store(true)
			close(done)
			return nil
		},
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run in time")
	}
	assert.True(t, ran.Load())
	q.Stop(time.Second)
}

func TestTaskQueueDispatchesHighestPriorityFirst(t *testing.T) {
	q := NewTaskQueue(1, 10)

	var mu sync.Mutex
	var order []string
	block := make(chan struct{})

	// First task occupies the single worker and blocks, so the remaining
	// two queue up and we can observe dispatch order deterministically.
	require.NoError(t, q.Submit(&Task{
		ID: "blocker", Priority: 0,
		Run: func(ctx context.Context) error {
			<-block
			return nil
		},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	time.Sleep(50 * time.Millisecond) // let the blocker be picked up

	require.NoError(t, q.Submit(&Task{
		ID: "low", Priority: 1,
		Run: func(ctx context.Context) error {
			mu.Lock()
			order = append(order, "low")
			mu.Unlock()
			return nil
		},
	}))
	require.NoError(t, q.Submit(&Task{
		ID: "high", Priority: 5,
		Run: func(ctx context.Context) error {
			mu.Lock()
			order = append(order, "high")
			mu.Unlock()
			return nil
		},
	}))

	close(block)
	time.Sleep(200 * time.Millisecond)
	q.Stop(time.Second)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 2)
	assert.Equal(t, "high", order[0])
	assert.Equal(t, "low", order[1])
}

func TestTaskQueueRetriesUntilExhausted(t *testing.T) {
	q := NewTaskQueue(1, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	var attempts atomic.Int32
	require.NoError(t, q.Submit(&Task{
		ID:         "flaky",
		MaxRetries: 2,
		Run: func(ctx context.Context) error {
			attempts.Add(1)
			return errors.New("transient failure")
		},
	}))

	require.Eventually(t, func() bool {
		return q.Stats().Failed == 1
	}, 2*time.Second, 10*time.Millisecond)

	q.Stop(time.Second)
	assert.Equal(t, int32(3), attempts.Load()) // initial attempt + 2 retries
}

func TestTaskQueueTreatsDeadlineExceededAsNonRetryable(t *testing.T) {
	q := NewTaskQueue(1, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	var attempts atomic.Int32
	require.NoError(t, q.Submit(&Task{
		ID:         "slow",
		MaxRetries: 5,
		Timeout:    10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			attempts.Add(1)
			<-ctx.Done()
			return ctx.Err()
		},
	}))

	require.Eventually(t, func() bool {
		return q.Stats().Failed == 1
	}, 2*time.Second, 10*time.Millisecond)

	q.Stop(time.Second)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestTaskQueueSubmitRejectsWhenSaturated(t *testing.T) {
	q := NewTaskQueue(1, 1)
	block := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	require.NoError(t, q.Submit(&Task{
		ID: "occupy",
		Run: func(ctx context.Context) error {
			<-block
			return nil
		},
	}))
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, q.Submit(&Task{ID: "fills-queue", Run: func(ctx context.Context) error { return nil }}))
	err := q.Submit(&Task{ID: "overflow", Run: func(ctx context.Context) error { return nil }})
	require.Error(t, err)

	close(block)
	q.Stop(time.Second)
}

func TestTaskQueueStatsReflectCompletions(t *testing.T) {
	q := NewTaskQueue(2, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Submit(&Task{
			ID: "job",
			Run: func(ctx context.Context) error {
				defer wg.Done()
				return nil
			},
		}))
	}
	wg.Wait()
	time.Sleep(50 * time.Millisecond)

	stats := q.Stats()
	assert.Equal(t, 0, stats.InFlight)
	assert.GreaterOrEqual(t, stats.ThroughputPerMin, 0.0)
	q.Stop(time.Second)
}
