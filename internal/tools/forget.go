package tools

import "context"

// Forget soft- or hard-deletes a memory. Store.SoftDeleteMemory and
// Store.HardDeleteMemory already enforce the lifecycle/pin invariants
// (live→soft_deleted→hard_deleted, pinned cannot hard-delete), so Forget
// is a thin dispatch plus cache invalidation.
func (s *Surface) Forget(ctx context.Context, in ForgetInput) (*ForgetOutput, error) {
	var err error
	status := "soft_deleted"
	if in.Hard {
		status = "hard_deleted"
		err = s.Store.HardDeleteMemory(ctx, in.ID)
	} else {
		err = s.Store.SoftDeleteMemory(ctx, in.ID)
	}
	if err != nil {
		return nil, err
	}

	if in.Hard {
		if s.VectorIndex != nil {
			_ = s.VectorIndex.Delete(ctx, in.ID)
		}
	}
	_ = s.TextIndex.Delete(ctx, in.ID)

	if s.Queries != nil {
		s.Queries.PurgeAll()
	}

	return &ForgetOutput{ID: in.ID, Status: status}, nil
}
