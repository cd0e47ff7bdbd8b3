// Package search implements the lexical and dense retrieval paths from spec
// sections 4.3 and 4.4, and the weighted blend that turns their raw scores
// into the single "relevance" signal internal/rank overlays with recency,
// importance, usage, and duplication penalty.
package search

// Weights controls how the four relevance components combine. Fields left
// at zero are treated as absent components rather than zero-weighted ones;
// use DefaultWeights for the spec's defaults.
type Weights struct {
	Vector float64
	Text   float64
	Tag    float64
	Title  float64
}

// DefaultWeights mirrors spec section 4.3: embedding-similarity 0.60, BM25
// 0.30, tag Jaccard 0.05, title/n-gram hit 0.05.
func DefaultWeights() Weights {
	return Weights{Vector: 0.60, Text: 0.30, Tag: 0.05, Title: 0.05}
}

// Candidate is one memory scored against a query, ready for internal/rank's
// overlay. Relevance is already blended and clamped to [0,1].
type Candidate struct {
	MemoryID         string
	Relevance        float64
	VectorSimilarity float64 // 0 when no vector signal was available
	TextScore        float64 // 0 when no text signal was available
	HasVector        bool
	HasText          bool
}
