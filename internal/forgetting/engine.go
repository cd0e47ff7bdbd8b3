package forgetting

import (
	"context"
	"sort"
	"time"

	"github.com/mnemo-systems/mnemo/internal/rank"
	"github.com/mnemo-systems/mnemo/internal/store"
)

// Engine is spec section 4.6's ForgettingEngine: on each tick it scores
// every non-deleted memory and returns soft/hard delete candidates, capped
// at thresholds.MaxPerRun.
type Engine struct {
	weights    Weights
	thresholds Thresholds
}

func NewEngine(weights Weights, thresholds Thresholds) *Engine {
	return &Engine{weights: weights, thresholds: thresholds}
}

// Sweep pulls every non-deleted memory from st, scores it, and returns
// soft/hard delete candidates ordered by descending forget_score, truncated
// to the per-run cap.
func (e *Engine) Sweep(ctx context.Context, st store.Store, now time.Time) ([]Candidate, error) {
	memories, err := st.ListMemories(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}

	ratios := duplicationRatios(memories)

	rawCounters := make(map[string]float64, len(memories))
	for _, m := range memories {
		rawCounters[m.ID] = rawCounterScore(m)
	}
	normalizedCounters := minMaxNormalize(rawCounters)

	candidates := make([]Candidate, 0)
	for _, m := range memories {
		recency := rank.RecencyScore(m.Type, m.CreatedAt, now)
		usage := usageScore(m, now, normalizedCounters[m.ID])
		features := Features{
			Recency:     recency,
			Usage:       usage,
			Duplication: ratios[m.ID],
			Importance:  store.ClampImportance(m.Importance),
			Pinned:      m.Pinned,
			AgeDays:     now.Sub(m.CreatedAt).Hours() / 24,
		}
		score := e.weights.Score(features)

		action, reasons, eligible := e.classify(m, features, score)
		if !eligible {
			continue
		}
		candidates = append(candidates, Candidate{
			MemoryID:    m.ID,
			Action:      action,
			ForgetScore: score,
			Reasons:     reasons,
			AgeDays:     features.AgeDays,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ForgetScore > candidates[j].ForgetScore
	})

	if e.thresholds.MaxPerRun > 0 && len(candidates) > e.thresholds.MaxPerRun {
		candidates = candidates[:e.thresholds.MaxPerRun]
	}
	return candidates, nil
}

// classify applies spec section 4.6's soft/hard decision rules and builds
// the machine-readable reason list.
func (e *Engine) classify(m *store.Memory, f Features, score float64) (Action, []string, bool) {
	var reasons []string

	softTTL := e.thresholds.SoftTTL[m.Type]
	hardTTL := e.thresholds.HardTTL[m.Type]
	ageExceedsSoftTTL := softTTL > 0 && time.Duration(f.AgeDays*float64(24*time.Hour)) > softTTL
	ageExceedsHardTTL := hardTTL > 0 && time.Duration(f.AgeDays*float64(24*time.Hour)) > hardTTL

	softEligible := score >= e.thresholds.SoftScore || ageExceedsSoftTTL
	if !softEligible {
		return "", nil, false
	}

	if ageExceedsSoftTTL {
		reasons = append(reasons, "aged")
	}
	if f.Usage < 0.3 {
		reasons = append(reasons, "unused")
	}
	if f.Duplication > 0.5 {
		reasons = append(reasons, "duplicate")
	}
	if f.Importance < 0.3 {
		reasons = append(reasons, "low importance")
	}
	if !f.Pinned {
		reasons = append(reasons, "unpinned")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "aged")
	}

	if m.Pinned {
		return ActionSoftDelete, reasons, true
	}

	hardEligible := score >= e.thresholds.HardScore || ageExceedsHardTTL
	if hardEligible {
		return ActionHardDelete, reasons, true
	}
	return ActionSoftDelete, reasons, true
}
