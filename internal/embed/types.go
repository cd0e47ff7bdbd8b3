// Package embed implements the EmbeddingProvider capability set: a tagged
// sum of External (remote HTTP service), Lexical (deterministic hashing,
// always available), and Disabled variants, each exposing the same
// embed/available/model_info contract described in spec section 4.2.
package embed

import (
	"context"
	"math"
	"time"
)

const (
	// DefaultBatchSize bounds how many texts EmbedBatch processes per call.
	DefaultBatchSize = 32

	// DefaultTimeout bounds a single External call.
	DefaultTimeout = 30 * time.Second

	// LexicalDimensions is the fixed dimension of the Lexical provider's
	// unit vectors (spec section 4.2: "fixed 512-dim unit vector").
	LexicalDimensions = 512
)

// ModelInfo describes a provider's embedding model: its tag, output
// dimension, and the maximum input length it accepts before truncation.
type ModelInfo struct {
	Tag       string
	Dimension int
	MaxTokens int
}

// Embedder is the capability set shared by every EmbeddingProvider variant.
type Embedder interface {
	// Available reports whether this provider can currently serve requests.
	Available(ctx context.Context) bool

	// Embed generates a vector embedding for a single text, returning the
	// model tag that produced it and an estimate of tokens consumed.
	Embed(ctx context.Context, text string) (vector []float32, modelTag string, usage int, err error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelInfo returns the active model's tag, dimension, and token budget.
	ModelInfo() ModelInfo

	// Close releases any resources held by the provider.
	Close() error
}

// normalizeVector scales v to unit length; a zero vector is returned as-is.
func normalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, val := range v {
		out[i] = float32(float64(val) / magnitude)
	}
	return out
}
