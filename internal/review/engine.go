package review

import (
	"context"
	"math"
	"time"

	"github.com/mnemo-systems/mnemo/internal/store"
)

// DefaultInitialIntervalDays seeds the schedule for a memory with no prior
// review record.
const DefaultInitialIntervalDays = 1

// Engine sweeps the store for non-pinned, previously-accessed memories and
// writes their updated review schedules.
type Engine struct {
	scheduler *Scheduler
}

func NewEngine(scheduler *Scheduler) *Engine {
	return &Engine{scheduler: scheduler}
}

// Sweep computes and persists updated ReviewSchedule rows for every
// eligible memory, returning the results for callers that want to surface
// needs-review memories immediately.
func (e *Engine) Sweep(ctx context.Context, st store.Store, now time.Time) ([]Result, error) {
	memories, err := st.ListMemories(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}

	rawUsage := make(map[string]float64, len(memories))
	feedbackByMemory := make(map[string][]*store.FeedbackEvent, len(memories))
	for _, m := range memories {
		events, err := st.ListFeedback(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		feedbackByMemory[m.ID] = events
		rawUsage[m.ID] = math.Log1p(float64(m.ViewCount)) + 2*math.Log1p(float64(m.CiteCount)) + 0.5*math.Log1p(float64(m.EditCount))
	}
	normalizedUsage := minMaxNormalize(rawUsage)

	results := make([]Result, 0, len(memories))
	for _, m := range memories {
		if m.Pinned {
			continue
		}
		events := feedbackByMemory[m.ID]
		if m.ViewCount == 0 && len(events) == 0 {
			continue // "at least one access" per spec section 4.7
		}

		existing, err := st.GetReviewSchedule(ctx, m.ID)
		currentInterval := float64(DefaultInitialIntervalDays)
		lastReviewedAt := m.CreatedAt
		if err == nil && existing != nil {
			currentInterval = existing.IntervalDays
			lastReviewedAt = existing.LastReviewedAt
		}

		helpful, bad := 0, 0
		for _, ev := range events {
			switch ev.Kind {
			case store.FeedbackHelpful:
				helpful++
			case store.FeedbackNotHelpful:
				bad++
			}
		}

		result := e.scheduler.Schedule(Input{
			MemoryID:            m.ID,
			CurrentIntervalDays: currentInterval,
			Importance:          store.ClampImportance(m.Importance),
			Usage:               normalizedUsage[m.ID],
			HelpfulCount:        helpful,
			BadCount:            bad,
			LastReviewedAt:      lastReviewedAt,
		}, now)

		if err := st.UpsertReviewSchedule(ctx, &store.ReviewSchedule{
			MemoryID:              m.ID,
			IntervalDays:          result.NextIntervalDays,
			LastReviewedAt:        lastReviewedAt,
			NextReviewAt:          result.NextReviewAt,
			LastRecallProbability: result.RecallProbability,
		}); err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}

// minMaxNormalize rescales raw usage scores to [0,1] over the batch.
func minMaxNormalize(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	if len(scores) == 0 {
		return out
	}
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	spread := max - min
	for id, s := range scores {
		switch {
		case spread == 0 && s == 0:
			out[id] = 0
		case spread == 0:
			out[id] = 1
		default:
			out[id] = (s - min) / spread
		}
	}
	return out
}
