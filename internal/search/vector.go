package search

import (
	"context"

	"github.com/mnemo-systems/mnemo/internal/embed"
	"github.com/mnemo-systems/mnemo/internal/store"
)

// DefaultSimilarityFloor is the minimum cosine similarity spec section 4.4
// requires before a vector hit is considered a candidate at all.
const DefaultSimilarityFloor = 0.5

// VectorSearcher is the dense retrieval path from spec section 4.4. It
// embeds the query text with the active provider and searches the HNSW
// index, dropping hits below the similarity floor.
type VectorSearcher struct {
	index           store.VectorIndexer
	embedder        embed.Embedder
	similarityFloor float64
}

func NewVectorSearcher(index store.VectorIndexer, embedder embed.Embedder) *VectorSearcher {
	return &VectorSearcher{index: index, embedder: embedder, similarityFloor: DefaultSimilarityFloor}
}

func (s *VectorSearcher) WithSimilarityFloor(floor float64) *VectorSearcher {
	s.similarityFloor = floor
	return s
}

// Search embeds queryText and returns memory ids mapped to cosine
// similarity, clamped to [0,1] and floored at the configured threshold.
// When types is non-empty, only embeddings belonging to one of those
// memory types are scored (spec section 4.4). It returns an empty,
// non-error result when the embedder is unavailable — callers fall back to
// the text-only path per spec section 4.3's weight renormalization.
func (s *VectorSearcher) Search(ctx context.Context, queryText string, k int, types []store.MemoryType) (map[string]float64, error) {
	if !s.embedder.Available(ctx) {
		return map[string]float64{}, nil
	}

	vector, _, _, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, err
	}

	hits, err := s.index.Search(ctx, vector, k, types)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(hits))
	for _, h := range hits {
		sim := h.Similarity
		if sim < 0 {
			sim = 0
		}
		if sim > 1 {
			sim = 1
		}
		if sim < s.similarityFloor {
			continue
		}
		out[h.MemoryID] = sim
	}
	return out, nil
}
