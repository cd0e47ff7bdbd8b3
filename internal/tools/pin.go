package tools

import (
	"context"

	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
	"github.com/mnemo-systems/mnemo/internal/store"
)

const highImportanceConfirmThreshold = 0.8

// Pin sets Pinned=true on one or a batch of memories. Pin is an orthogonal
// boolean and never changes lifecycle state (spec section 4.11).
func (s *Surface) Pin(ctx context.Context, in PinInput) (*PinOutput, error) {
	return s.setPinned(ctx, in, true)
}

// Unpin clears Pinned. A memory with importance above 0.8 requires
// confirm=true, surfaced as Conflict when missing.
func (s *Surface) Unpin(ctx context.Context, in PinInput) (*PinOutput, error) {
	return s.setPinned(ctx, in, false)
}

func (s *Surface) setPinned(ctx context.Context, in PinInput, pinned bool) (*PinOutput, error) {
	ids := in.Batch
	if in.ID != "" {
		ids = append([]string{in.ID}, ids...)
	}
	if len(ids) == 0 {
		return nil, mnerr.Invalid(mnerr.ErrCodeInvalidRequest, "id or batch is required")
	}

	out := &PinOutput{Results: make([]PinResult, 0, len(ids))}
	for _, id := range ids {
		out.Results = append(out.Results, s.setPinnedOne(ctx, id, pinned, in.Confirm))
	}
	return out, nil
}

func (s *Surface) setPinnedOne(ctx context.Context, id string, pinned, confirm bool) PinResult {
	mem, err := s.Store.GetMemory(ctx, id)
	if err != nil {
		return PinResult{ID: id, Success: false, Error: err.Error()}
	}

	if !pinned && mem.Importance > highImportanceConfirmThreshold && !confirm {
		err := mnerr.Conflict(mnerr.ErrCodeUnpinConfirmationRequired, "unpinning a high-importance memory requires confirm=true")
		return PinResult{ID: id, Success: false, Error: err.Error()}
	}

	mem.Pinned = pinned
	if err := s.Store.UpdateMemory(ctx, mem); err != nil {
		return PinResult{ID: id, Success: false, Error: err.Error()}
	}

	kind := store.FeedbackPinned
	if !pinned {
		kind = store.FeedbackUnpinned
	}
	_ = s.Store.AppendFeedback(ctx, &store.FeedbackEvent{
		MemoryID:  id,
		Kind:      kind,
		CreatedAt: s.clock(),
	})

	return PinResult{ID: id, Success: true}
}
