package search

import (
	"context"

	"github.com/mnemo-systems/mnemo/internal/store"
)

// TextSearcher is the lexical retrieval path from spec section 4.3. It
// delegates tokenization, stopword filtering, and BM25 scoring to the
// store's FTS5-backed TextIndexer, then min-max normalizes the raw scores
// across the returned batch so they're comparable with vector similarity.
type TextSearcher struct {
	indexer store.TextIndexer
}

func NewTextSearcher(indexer store.TextIndexer) *TextSearcher {
	return &TextSearcher{indexer: indexer}
}

// Search returns memory ids mapped to their min-max normalized BM25 score.
func (s *TextSearcher) Search(ctx context.Context, query string, limit int) (map[string]float64, error) {
	hits, err := s.indexer.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]float64, len(hits))
	for _, h := range hits {
		raw[h.MemoryID] = h.Score
	}
	return minMaxNormalize(raw), nil
}
