package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mnemo-systems/mnemo/internal/queue"
	"github.com/mnemo-systems/mnemo/internal/store"
)

// Remember validates and writes a new Memory, enqueues its embedding, and
// invalidates the query cache so the new memory is immediately recallable
// by text (spec section 4.11, invariant: remember happens-before its first
// text recall).
func (s *Surface) Remember(ctx context.Context, in RememberInput) (*RememberOutput, error) {
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}

	memType, err := parseMemoryType(in.Type)
	if err != nil {
		return nil, err
	}
	scope, err := parsePrivacyScope(in.PrivacyScope)
	if err != nil {
		return nil, err
	}

	importance := defaultImportanceByType[memType]
	if in.Importance != nil {
		if err := validateImportance(*in.Importance); err != nil {
			return nil, err
		}
		importance = *in.Importance
	}

	now := s.clock()
	m := &store.Memory{
		ID:           "mem_" + uuid.NewString(),
		Type:         memType,
		Content:      in.Content,
		Importance:   importance,
		PrivacyScope: scope,
		CreatedAt:    now,
		Tags:         in.Tags,
		Source:       in.Source,
	}

	if err := s.Store.CreateMemory(ctx, m); err != nil {
		return nil, err
	}

	if err := s.TextIndex.Index(ctx, m.ID, m.Content); err != nil {
		s.Logger.Error("indexing memory text failed", slog.String("memory_id", m.ID), slog.String("error", err.Error()))
		return nil, err
	}

	s.enqueueEmbedding(m)

	if s.Queries != nil {
		s.Queries.PurgeAll()
	}

	return &RememberOutput{
		MemoryID:   m.ID,
		CreatedAt:  m.CreatedAt,
		Type:       string(m.Type),
		Importance: m.Importance,
	}, nil
}

// enqueueEmbedding schedules background embedding generation. Failure here
// degrades recall to text-only for this memory but never fails the write
// (spec section 4.11's failure semantics), so errors are logged, not
// returned.
func (s *Surface) enqueueEmbedding(m *store.Memory) {
	if s.Tasks == nil || s.Embedder == nil || s.VectorIndex == nil {
		return
	}

	task := &queue.Task{
		ID:         "embed:" + m.ID,
		Kind:       queue.KindEmbedding,
		Priority:   5,
		MaxRetries: 3,
		Timeout:    30 * time.Second,
		Run: func(ctx context.Context) error {
			if !s.Embedder.Available(ctx) {
				return nil
			}
			vector, modelTag, _, err := s.Embedder.Embed(ctx, m.Content)
			if err != nil {
				return err
			}
			if err := s.Store.UpsertEmbedding(ctx, &store.Embedding{
				MemoryID:  m.ID,
				Vector:    vector,
				Dimension: len(vector),
				Model:     modelTag,
				CreatedAt: s.clock(),
			}); err != nil {
				return err
			}
			return s.VectorIndex.Add(ctx, m.ID, vector, m.Type)
		},
	}

	if err := s.Tasks.Submit(task); err != nil {
		s.Logger.Warn("embedding task rejected", slog.String("memory_id", m.ID), slog.String("error", err.Error()))
	}
}
