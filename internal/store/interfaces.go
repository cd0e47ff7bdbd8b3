package store

import "context"

// Store is the durable contract from spec section 4.1: create/read/
// update/soft-delete/hard-delete Memory; append FeedbackEvent; upsert
// Embedding; upsert ReviewSchedule; filtered enumeration for cleanup.
// Every multi-table write commits as a single transaction. Readers may run
// concurrently; writers serialize on the store's own lock.
type Store interface {
	CreateMemory(ctx context.Context, m *Memory) error
	GetMemory(ctx context.Context, id string) (*Memory, error)
	UpdateMemory(ctx context.Context, m *Memory) error
	SoftDeleteMemory(ctx context.Context, id string) error
	HardDeleteMemory(ctx context.Context, id string) error
	ListMemories(ctx context.Context, filter Filter) ([]*Memory, error)

	AppendFeedback(ctx context.Context, ev *FeedbackEvent) error
	ListFeedback(ctx context.Context, memoryID string) ([]*FeedbackEvent, error)

	UpsertEmbedding(ctx context.Context, e *Embedding) error
	GetEmbedding(ctx context.Context, memoryID string) (*Embedding, error)
	DeleteEmbedding(ctx context.Context, memoryID string) error
	ListEmbeddings(ctx context.Context) ([]*Embedding, error)

	UpsertReviewSchedule(ctx context.Context, r *ReviewSchedule) error
	GetReviewSchedule(ctx context.Context, memoryID string) (*ReviewSchedule, error)
	ListReviewSchedules(ctx context.Context) ([]*ReviewSchedule, error)

	Checkpoint(ctx context.Context) error
	Close() error
}

// TextIndexer maintains the FTS index powering TextSearcher (spec 4.3).
type TextIndexer interface {
	Index(ctx context.Context, memoryID, content string) error
	Delete(ctx context.Context, memoryID string) error
	Search(ctx context.Context, query string, limit int) ([]TextHit, error)
	Close() error
}

// TextHit is one lexical search result: a raw BM25-derived score (not yet
// normalized — TextSearcher min-max normalizes across the candidate set).
type TextHit struct {
	MemoryID string
	Score    float64
}

// VectorIndexer maintains the dense index powering VectorSearcher (spec 4.4).
// Search accepts an optional type set: when non-empty, only embeddings
// belonging to one of those memory types are scored.
type VectorIndexer interface {
	Add(ctx context.Context, memoryID string, vector []float32, memType MemoryType) error
	Delete(ctx context.Context, memoryID string) error
	Search(ctx context.Context, query []float32, k int, types []MemoryType) ([]VectorHit, error)
	Dimensions() int
	Close() error
}

// VectorHit is one dense search result.
type VectorHit struct {
	MemoryID   string
	Similarity float64
}
