package queue

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"

	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
)

// TaskQueue is spec section 4.9's bounded worker-pool scheduler: a
// priority-descending heap drained by a fixed worker count, with
// per-task retry-until-exhausted and timeout handling. Lifecycle is
// modeled on the teacher's BackgroundIndexer (running flag guarded by
// a mutex, a WaitGroup joining worker goroutines on Stop).
type TaskQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	heap    taskHeap
	nextSeq uint64

	workers      int
	maxQueueSize int
	running      bool
	wg           sync.WaitGroup

	statsMu     sync.Mutex
	inFlight    int
	failed      int
	completions []completionSample
}

// NewTaskQueue builds a queue with the given worker count and max pending
// size. Zero values fall back to the spec defaults.
func NewTaskQueue(workers, maxQueueSize int) *TaskQueue {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if maxQueueSize <= 0 {
		maxQueueSize = DefaultMaxQueueSize
	}
	q := &TaskQueue{workers: workers, maxQueueSize: maxQueueSize}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Start launches the bounded worker set. It returns immediately; workers
// run until ctx is canceled or Stop is called.
func (q *TaskQueue) Start(ctx context.Context) {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}

	go func() {
		<-ctx.Done()
		q.mu.Lock()
		q.running = false
		q.cond.Broadcast()
		q.mu.Unlock()
	}()
}

// Stop signals workers to drain and wait up to gracePeriod for them to
// finish their current task before returning.
func (q *TaskQueue) Stop(gracePeriod time.Duration) {
	q.mu.Lock()
	q.running = false
	q.cond.Broadcast()
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(gracePeriod):
	}
}

// Submit enqueues a task. It fails with ErrCodeQueueSaturated once pending
// tasks reach maxQueueSize.
func (q *TaskQueue) Submit(t *Task) error {
	if t.Run == nil {
		return mnerr.Invalid(mnerr.ErrCodeInvalidRequest, "task has no Run function")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.heap) >= q.maxQueueSize {
		return mnerr.Busy(mnerr.ErrCodeQueueSaturated, "task queue is at capacity", nil)
	}

	q.nextSeq++
	t.seq = q.nextSeq
	t.enqueuedAt = time.Now()
	heap.Push(&q.heap, t)
	q.cond.Signal()
	return nil
}

// Stats returns a snapshot of queue health.
func (q *TaskQueue) Stats() Stats {
	q.mu.Lock()
	depth := len(q.heap)
	q.mu.Unlock()

	q.statsMu.Lock()
	defer q.statsMu.Unlock()
	return q.snapshotLocked(depth)
}

func (q *TaskQueue) worker(ctx context.Context) {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		for len(q.heap) == 0 && q.running {
			q.cond.Wait()
		}
		if len(q.heap) == 0 && !q.running {
			q.mu.Unlock()
			return
		}
		task := heap.Pop(&q.heap).(*Task)
		q.mu.Unlock()

		q.runTask(ctx, task)
	}
}

// runTask executes one task with its per-task timeout and applies the
// retry-until-exhausted rule on failure. Deadline expiry is treated as a
// non-retryable timeout, per the scheduling model's cancellation design:
// once a task's own deadline passes, re-running it under a fresh deadline
// would not address why it was slow.
func (q *TaskQueue) runTask(ctx context.Context, task *Task) {
	taskCtx := ctx
	var cancel context.CancelFunc
	if task.Timeout > 0 {
		taskCtx, cancel = context.WithTimeout(ctx, task.Timeout)
	}

	q.statsMu.Lock()
	q.inFlight++
	q.statsMu.Unlock()

	start := time.Now()
	err := task.Run(taskCtx)
	duration := time.Since(start)
	if cancel != nil {
		cancel()
	}

	q.statsMu.Lock()
	q.inFlight--
	q.recordCompletion(duration, time.Now())
	q.statsMu.Unlock()

	if err == nil {
		return
	}

	deadlineExceeded := errors.Is(err, context.DeadlineExceeded)
	if !deadlineExceeded && task.retries < task.MaxRetries {
		task.retries++
		q.mu.Lock()
		if q.running {
			heap.Push(&q.heap, task)
			q.cond.Signal()
		}
		q.mu.Unlock()
		return
	}

	q.statsMu.Lock()
	q.failed++
	q.statsMu.Unlock()
}
