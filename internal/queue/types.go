// Package queue implements spec section 4.9's TaskQueue: a bounded
// priority-descending worker pool with per-task retry and timeout,
// grounded on the teacher's background-indexer goroutine lifecycle
// (internal/async.BackgroundIndexer: stop/done channels, running flag).
package queue

import (
	"context"
	"time"
)

// Kind enumerates the task categories from spec section 4.9.
type Kind string

const (
	KindEmbedding       Kind = "embedding"
	KindSearch          Kind = "search"
	KindCleanup         Kind = "cleanup"
	KindBatchInsert     Kind = "batch_insert"
	KindMemoryOperation Kind = "memory_operation"
)

// DefaultWorkers is the default bounded worker count.
const DefaultWorkers = 8

// DefaultMaxQueueSize bounds pending tasks before Submit starts rejecting
// with ErrCodeQueueSaturated.
const DefaultMaxQueueSize = 1000

// Func is the work a Task performs.
type Func func(ctx context.Context) error

// Task is one unit of scheduled work.
type Task struct {
	ID         string
	Kind       Kind
	Priority   int
	MaxRetries int
	Timeout    time.Duration
	Run        Func

	retries    int
	enqueuedAt time.Time
	seq        uint64
}
