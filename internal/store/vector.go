package store

import (
	"context"
	"math"
	"sync"

	"github.com/coder/hnsw"

	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
)

// HNSWVectorIndex is the dense VectorIndexer backing VectorSearcher,
// adapted from the teacher's internal/store/hnsw.go. It maps string memory
// ids to the uint64 keys coder/hnsw requires, and uses the same lazy
// deletion pattern the teacher documents: coder/hnsw has a known bug when
// deleting the last remaining node, so deletes just orphan the mapping
// instead of calling graph.Delete.
type HNSWVectorIndex struct {
	mu         sync.RWMutex
	graph      *hnsw.Graph[uint64]
	dimensions int
	idToKey    map[string]uint64
	keyToID    map[uint64]string
	idToType   map[string]MemoryType
	nextKey    uint64
	closed     bool
}

// NewHNSWVectorIndex builds an index over vectors of the given dimension,
// using cosine distance (the metric spec section 4.4 assumes).
func NewHNSWVectorIndex(dimensions int) *HNSWVectorIndex {
	g := hnsw.NewGraph[uint64]()
	g.Distance = hnsw.CosineDistance
	g.M = 16
	g.EfSearch = 20
	return &HNSWVectorIndex{
		graph:      g,
		dimensions: dimensions,
		idToKey:    make(map[string]uint64),
		keyToID:    make(map[uint64]string),
		idToType:   make(map[string]MemoryType),
	}
}

func (v *HNSWVectorIndex) Dimensions() int { return v.dimensions }

func (v *HNSWVectorIndex) Add(ctx context.Context, memoryID string, vector []float32, memType MemoryType) error {
	if len(vector) != v.dimensions {
		return mnerr.Invalid(mnerr.ErrCodeInvalidRequest, "embedding dimension mismatch")
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return mnerr.Unavailable(mnerr.ErrCodeVectorUnavailable, "vector index is closed")
	}

	if oldKey, ok := v.idToKey[memoryID]; ok {
		delete(v.keyToID, oldKey)
	}

	key := v.nextKey
	v.nextKey++
	v.idToKey[memoryID] = key
	v.keyToID[key] = memoryID
	v.idToType[memoryID] = memType

	normalized := normalizeInPlace(append([]float32(nil), vector...))
	return v.graph.Add(hnsw.MakeNode(key, normalized))
}

func (v *HNSWVectorIndex) Delete(ctx context.Context, memoryID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	key, ok := v.idToKey[memoryID]
	if !ok {
		return nil
	}
	delete(v.idToKey, memoryID)
	delete(v.keyToID, key)
	delete(v.idToType, memoryID)
	return nil
}

// Search returns the k nearest neighbors to query. When types is non-empty,
// only embeddings whose memory type is in the set are scored: since the
// underlying graph has no native filtered search, the requested neighbor
// count is doubled and re-queried until enough typed hits are found or the
// whole graph has been searched (spec section 4.4).
func (v *HNSWVectorIndex) Search(ctx context.Context, query []float32, k int, types []MemoryType) ([]VectorHit, error) {
	if len(query) != v.dimensions {
		return nil, mnerr.Invalid(mnerr.ErrCodeInvalidRequest, "query vector dimension mismatch")
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return nil, mnerr.Unavailable(mnerr.ErrCodeVectorUnavailable, "vector index is closed")
	}
	total := v.graph.Len()
	if total == 0 {
		return nil, nil
	}

	var typeSet map[MemoryType]struct{}
	if len(types) > 0 {
		typeSet = make(map[MemoryType]struct{}, len(types))
		for _, t := range types {
			typeSet[t] = struct{}{}
		}
	}

	normalized := normalizeInPlace(append([]float32(nil), query...))

	fetch := k
	if fetch > total {
		fetch = total
	}
	var hits []VectorHit
	for {
		nodes, err := v.graph.Search(normalized, fetch)
		if err != nil {
			return nil, mnerr.Internal(mnerr.ErrCodeSearchFailed, "vector search failed", err)
		}

		hits = hits[:0]
		for _, n := range nodes {
			id, ok := v.keyToID[n.Key]
			if !ok {
				continue // orphaned by a lazy delete
			}
			if typeSet != nil {
				if _, ok := typeSet[v.idToType[id]]; !ok {
					continue
				}
			}
			dist := v.graph.Distance(n.Value, normalized)
			hits = append(hits, VectorHit{MemoryID: id, Similarity: 1 - dist})
		}

		if typeSet == nil || len(hits) >= k || fetch >= total {
			break
		}
		fetch *= 2
		if fetch > total {
			fetch = total
		}
	}
	return hits, nil
}

func (v *HNSWVectorIndex) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	return nil
}

// normalizeInPlace L2-normalizes a vector for cosine-distance comparisons.
func normalizeInPlace(vec []float32) []float32 {
	var sumSquares float64
	for _, f := range vec {
		sumSquares += float64(f) * float64(f)
	}
	if sumSquares == 0 {
		return vec
	}
	inv := 1.0 / math.Sqrt(sumSquares)
	for i, f := range vec {
		vec[i] = float32(float64(f) * inv)
	}
	return vec
}
