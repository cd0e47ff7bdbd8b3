package tools

import (
	"log/slog"
	"time"

	"github.com/mnemo-systems/mnemo/internal/alert"
	"github.com/mnemo-systems/mnemo/internal/cache"
	"github.com/mnemo-systems/mnemo/internal/config"
	"github.com/mnemo-systems/mnemo/internal/embed"
	"github.com/mnemo-systems/mnemo/internal/queue"
	"github.com/mnemo-systems/mnemo/internal/rank"
	"github.com/mnemo-systems/mnemo/internal/search"
	"github.com/mnemo-systems/mnemo/internal/store"
)

// Surface composes every singleton service behind the tool handlers. It is
// built once at startup and passed by reference into every transport;
// there is no process-global registry (spec section 9).
type Surface struct {
	Store         store.Store
	TextIndex     store.TextIndexer
	VectorIndex   store.VectorIndexer
	Embedder      embed.Embedder
	TextSearcher  *search.TextSearcher
	VectorSearcher *search.VectorSearcher
	Ranker        *rank.HybridRanker
	Queries       *cache.QueryCache
	Embeddings    *cache.EmbeddingCache
	Tasks         *queue.TaskQueue
	Alerts        *alert.Monitor
	Logger        *slog.Logger

	searchCfg config.SearchConfig

	// now is overridable in tests; production leaves it nil and Surface
	// falls back to time.Now.
	now func() time.Time
}

// New builds a Surface from its constituent services.
func New(
	st store.Store,
	textIndex store.TextIndexer,
	vectorIndex store.VectorIndexer,
	embedder embed.Embedder,
	ranker *rank.HybridRanker,
	queries *cache.QueryCache,
	embeddings *cache.EmbeddingCache,
	tasks *queue.TaskQueue,
	alerts *alert.Monitor,
	logger *slog.Logger,
	searchCfg config.SearchConfig,
) *Surface {
	textSearcher := search.NewTextSearcher(textIndex)
	var vectorSearcher *search.VectorSearcher
	if vectorIndex != nil {
		vectorSearcher = search.NewVectorSearcher(vectorIndex, embedder).WithSimilarityFloor(searchCfg.SimilarityFloor)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Surface{
		Store:          st,
		TextIndex:      textIndex,
		VectorIndex:    vectorIndex,
		Embedder:       embedder,
		TextSearcher:   textSearcher,
		VectorSearcher: vectorSearcher,
		Ranker:         ranker,
		Queries:        queries,
		Embeddings:     embeddings,
		Tasks:          tasks,
		Alerts:         alerts,
		Logger:         logger,
		searchCfg:      searchCfg,
	}
}

func (s *Surface) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// defaultImportanceByType gives each memory type a sensible importance when
// the caller omits one, per the glossary's "type controls default
// importance".
var defaultImportanceByType = map[store.MemoryType]float64{
	store.TypeWorking:    0.3,
	store.TypeEpisodic:   0.5,
	store.TypeSemantic:   0.7,
	store.TypeProcedural: 0.6,
}
