package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mnemo-systems/mnemo/internal/store"
)

// Query is one retrieval request against the hybrid searcher.
type Query struct {
	Text  string
	Tags  []string
	Types []store.MemoryType
	Limit int
}

// HybridSearcher runs the text and vector paths in parallel (errgroup), each
// oversampled to twice the limit, and blends their scores into a single
// Candidate list, the relevance signal spec section 4.5's ranking overlay
// consumes.
type HybridSearcher struct {
	text    *TextSearcher
	vector  *VectorSearcher
	weights Weights
}

func NewHybridSearcher(text *TextSearcher, vector *VectorSearcher) *HybridSearcher {
	return &HybridSearcher{text: text, vector: vector, weights: DefaultWeights()}
}

func (h *HybridSearcher) WithWeights(w Weights) *HybridSearcher {
	h.weights = w
	return h
}

// Search returns blended candidates for the union of text and vector hits,
// looking up tags/content from candidateMemories (typically every
// non-deleted Memory, or a pre-filtered subset) to score the tag-Jaccard and
// title-hit components.
func (h *HybridSearcher) Search(ctx context.Context, q Query, candidateMemories map[string]*store.Memory) ([]Candidate, error) {
	oversample := q.Limit * 2
	if oversample < q.Limit {
		oversample = q.Limit
	}

	var textScores, vectorScores map[string]float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scores, err := h.text.Search(gctx, q.Text, oversample)
		textScores = scores
		return err
	})
	if h.vector != nil {
		g.Go(func() error {
			scores, err := h.vector.Search(gctx, q.Text, oversample, q.Types)
			vectorScores = scores
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if vectorScores == nil {
		vectorScores = map[string]float64{}
	}

	seen := make(map[string]struct{}, len(textScores)+len(vectorScores))
	for id := range textScores {
		seen[id] = struct{}{}
	}
	for id := range vectorScores {
		seen[id] = struct{}{}
	}

	candidates := make([]Candidate, 0, len(seen))
	for id := range seen {
		textScore, hasText := textScores[id]
		vectorSim, hasVector := vectorScores[id]

		var tagScore, titleScore float64
		if mem, ok := candidateMemories[id]; ok {
			tagScore = tagJaccard(q.Tags, mem.Tags)
			titleScore = titleHit(q.Text, mem.Content)
		}

		relevance := blendRelevance(h.weights, vectorSim, hasVector, textScore, hasText, tagScore, titleScore)
		candidates = append(candidates, Candidate{
			MemoryID:         id,
			Relevance:        relevance,
			VectorSimilarity: vectorSim,
			TextScore:        textScore,
			HasVector:        hasVector,
			HasText:          hasText,
		})
	}
	return candidates, nil
}
