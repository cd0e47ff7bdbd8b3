// Package review implements spec section 4.7's ReviewScheduler: the
// spaced-repetition interval update and recall-probability check, run over
// every non-pinned memory that has been accessed at least once.
package review

import "time"

// Weights are the next-interval mixing coefficients.
type Weights struct {
	Importance float64
	Usage      float64
	Helpful    float64
	Bad        float64
}

// DefaultWeights mirrors spec section 4.7's defaults: A1=0.6, A2=0.4,
// A3=0.5, A4=0.7.
func DefaultWeights() Weights {
	return Weights{Importance: 0.6, Usage: 0.4, Helpful: 0.5, Bad: 0.7}
}

// Bounds clamps the computed interval, in days.
type Bounds struct {
	MinDays float64
	MaxDays float64
}

// DefaultBounds gives a wide but finite clamp range.
func DefaultBounds() Bounds {
	return Bounds{MinDays: 1, MaxDays: 365}
}

// Input is one memory's review state going into the next-interval formula.
type Input struct {
	MemoryID            string
	CurrentIntervalDays float64
	Importance          float64 // clamped [0,1]
	Usage               float64 // clamped [0,1], batch-normalized by the caller
	HelpfulCount        int
	BadCount            int
	LastReviewedAt      time.Time
}

// Result is the scheduler's output for one memory: spec section 4.7 is
// explicit that this never deletes data, only projects forward.
type Result struct {
	MemoryID         string
	NextIntervalDays float64
	NextReviewAt     time.Time
	RecallProbability float64
	NeedsReview      bool
}
