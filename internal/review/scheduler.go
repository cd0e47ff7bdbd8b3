package review

import (
	"math"
	"time"
)

// NeedsReviewThreshold is the recall-probability ceiling below which a
// memory is flagged for review, per spec section 4.7.
const NeedsReviewThreshold = 0.7

// Scheduler computes next-interval and recall-probability per spec
// section 4.7's formulas.
type Scheduler struct {
	weights Weights
	bounds  Bounds
}

func NewScheduler(weights Weights, bounds Bounds) *Scheduler {
	return &Scheduler{weights: weights, bounds: bounds}
}

// Schedule applies spec section 4.7's formula:
// next_interval = ceil(current_interval * (1 + A1*importance + A2*usage +
// A3*helpful - A4*bad)), clamped to [min,max]; recall_probability =
// exp(-days_since_last_review/interval); needs_review = p <= 0.7.
func (s *Scheduler) Schedule(in Input, now time.Time) Result {
	helpful := float64(in.HelpfulCount)
	bad := float64(in.BadCount)

	multiplier := 1 + s.weights.Importance*in.Importance + s.weights.Usage*in.Usage +
		s.weights.Helpful*helpful - s.weights.Bad*bad

	interval := math.Ceil(in.CurrentIntervalDays * multiplier)
	interval = clamp(interval, s.bounds.MinDays, s.bounds.MaxDays)

	daysSinceLastReview := now.Sub(in.LastReviewedAt).Hours() / 24
	if daysSinceLastReview < 0 {
		daysSinceLastReview = 0
	}

	recallProbability := math.Exp(-daysSinceLastReview / interval)

	return Result{
		MemoryID:          in.MemoryID,
		NextIntervalDays:  interval,
		NextReviewAt:      now.Add(time.Duration(interval*24) * time.Hour),
		RecallProbability: recallProbability,
		NeedsReview:       recallProbability <= NeedsReviewThreshold,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
