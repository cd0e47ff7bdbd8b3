package tools

import (
	"context"

	"github.com/mnemo-systems/mnemo/internal/store"
)

// Feedback appends a FeedbackEvent and touches the memory's access
// timestamp; helpful/not_helpful counts are derived live from the
// FeedbackEvent log by internal/review rather than duplicated on Memory.
// CiteCount/EditCount, read by the usage term of the ranking (internal/rank),
// forgetting (internal/forgetting), and review (internal/review) formulas,
// are the one exception: they are maintained directly on Memory here,
// mirroring how Recall's touchAccessed bumps ViewCount.
func (s *Surface) Feedback(ctx context.Context, in FeedbackInput) (*FeedbackOutput, error) {
	mem, err := s.Store.GetMemory(ctx, in.MemoryID)
	if err != nil {
		return nil, err
	}

	kind := store.FeedbackHelpful
	if !in.Helpful {
		kind = store.FeedbackNotHelpful
	}
	if in.Kind != "" {
		kind, err = parseFeedbackKind(in.Kind)
		if err != nil {
			return nil, err
		}
	}

	score := 1.0
	if in.Score != nil {
		score = *in.Score
	}

	if err := s.Store.AppendFeedback(ctx, &store.FeedbackEvent{
		MemoryID:  in.MemoryID,
		Kind:      kind,
		Score:     score,
		CreatedAt: s.clock(),
	}); err != nil {
		return nil, err
	}

	switch kind {
	case store.FeedbackCited:
		mem.CiteCount++
	case store.FeedbackEdited:
		mem.EditCount++
	case store.FeedbackViewed:
		mem.ViewCount++
	}

	now := s.clock()
	mem.LastAccessed = &now
	_ = s.Store.UpdateMemory(ctx, mem)

	return &FeedbackOutput{MemoryID: in.MemoryID, Recorded: true}, nil
}
