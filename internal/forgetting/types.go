// Package forgetting implements spec section 4.6's ForgettingEngine: the
// forget-score blend over recency/usage/duplication/importance/pinned, and
// the soft/hard delete candidate selection built on top of it.
package forgetting

import (
	"time"

	"github.com/mnemo-systems/mnemo/internal/store"
)

// Weights are the forget-score mixing coefficients.
type Weights struct {
	Recency     float64
	Usage       float64
	Duplication float64
	Importance  float64
	Pinned      float64
}

// DefaultWeights mirrors spec section 4.6's defaults: U1=0.35, U2=0.25,
// U3=0.20, U4=0.15, U5=0.30.
func DefaultWeights() Weights {
	return Weights{Recency: 0.35, Usage: 0.25, Duplication: 0.20, Importance: 0.15, Pinned: 0.30}
}

// Action is what a candidate is eligible for.
type Action string

const (
	ActionSoftDelete Action = "soft_delete"
	ActionHardDelete Action = "hard_delete"
)

// Candidate is one memory the engine has judged eligible for forgetting,
// carrying the machine-readable reasons spec section 4.6 requires.
type Candidate struct {
	MemoryID    string
	Action      Action
	ForgetScore float64
	Reasons     []string
	AgeDays     float64
}

// Features are the per-memory inputs to the forget-score formula.
type Features struct {
	Recency     float64
	Usage       float64
	Duplication float64
	Importance  float64
	Pinned      bool
	AgeDays     float64
}

// Score computes spec section 4.6's forget_score:
// U1(1-recency) + U2(1-usage) + U3*duplication - U4*importance - U5*pinned.
func (w Weights) Score(f Features) float64 {
	pinned := 0.0
	if f.Pinned {
		pinned = 1.0
	}
	return w.Recency*(1-f.Recency) + w.Usage*(1-f.Usage) + w.Duplication*f.Duplication -
		w.Importance*f.Importance - w.Pinned*pinned
}

// Thresholds bound soft/hard delete eligibility. TTLs are per memory type;
// a zero or absent duration means unbounded (never age out on TTL alone).
type Thresholds struct {
	SoftScore float64
	HardScore float64
	SoftTTL   map[store.MemoryType]time.Duration
	HardTTL   map[store.MemoryType]time.Duration
	MaxPerRun int
}
