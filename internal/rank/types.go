// Package rank implements the five-signal ranking overlay from spec section
// 4.5: S = α·relevance + β·recency + γ·importance + δ·usage − ε·duplication,
// applied on top of the relevance blend internal/search produces.
package rank

import (
	"time"

	"github.com/mnemo-systems/mnemo/internal/store"
)

// Weights are the overlay's mixing coefficients.
type Weights struct {
	Relevance   float64
	Recency     float64
	Importance  float64
	Usage       float64
	Duplication float64
}

// DefaultWeights mirrors spec section 4.5's defaults.
func DefaultWeights() Weights {
	return Weights{Relevance: 0.50, Recency: 0.20, Importance: 0.20, Usage: 0.10, Duplication: 0.15}
}

// HalfLives are the type-dependent recency half-lives from spec section 4.5.
var HalfLives = map[store.MemoryType]time.Duration{
	store.TypeWorking:    2 * 24 * time.Hour,
	store.TypeEpisodic:   30 * 24 * time.Hour,
	store.TypeSemantic:   180 * 24 * time.Hour,
	store.TypeProcedural: 90 * 24 * time.Hour,
}

// DefaultHalfLife is used for any memory type absent from HalfLives.
const DefaultHalfLife = 30 * 24 * time.Hour

// Ranked is one memory after the overlay, carrying its component scores for
// observability and the machine-readable recall reason spec section 4.5
// expects.
type Ranked struct {
	MemoryID     string
	Score        float64
	Relevance    float64
	Recency      float64
	Importance   float64
	Usage        float64
	Duplication  float64
	RecallReason string
}
