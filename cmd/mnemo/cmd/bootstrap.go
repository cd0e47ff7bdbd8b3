package cmd

import (
	"log/slog"
	"time"

	"github.com/mnemo-systems/mnemo/internal/alert"
	"github.com/mnemo-systems/mnemo/internal/cache"
	"github.com/mnemo-systems/mnemo/internal/config"
	"github.com/mnemo-systems/mnemo/internal/embed"
	"github.com/mnemo-systems/mnemo/internal/forgetting"
	"github.com/mnemo-systems/mnemo/internal/queue"
	"github.com/mnemo-systems/mnemo/internal/rank"
	"github.com/mnemo-systems/mnemo/internal/review"
	"github.com/mnemo-systems/mnemo/internal/store"
	"github.com/mnemo-systems/mnemo/internal/sweep"
	"github.com/mnemo-systems/mnemo/internal/tools"
)

// app bundles everything a CLI command needs: the tool surface plus the
// owned resources a command must close or stop on exit.
type app struct {
	Surface   *tools.Surface
	Scheduler *sweep.Scheduler
	Tasks     *queue.TaskQueue

	store    *store.SQLiteStore
	embedder embed.Embedder
}

// newApp wires every package built for this server into one running
// instance, the way the teacher's runSmartDefault wires indexer, embedder,
// and store together inline rather than through a DI container.
func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	embedder, err := embed.New(cfg.Embeddings)
	if err != nil {
		st.Close()
		return nil, err
	}

	vectorIndex := store.NewHNSWVectorIndex(cfg.Embeddings.Dimensions)
	tasks := queue.NewTaskQueue(queue.DefaultWorkers, queue.DefaultMaxQueueSize)
	alerts := alert.NewMonitor(alert.DefaultThresholds(), alert.DefaultRingCapacity)

	surface := tools.New(
		st, st, vectorIndex, embedder,
		rank.NewHybridRanker(),
		cache.NewQueryCache(cache.DefaultQueryCacheSize, 5*time.Minute, time.Minute),
		cache.NewEmbeddingCache(cache.DefaultEmbeddingCacheSize, time.Hour),
		tasks,
		alerts,
		logger,
		cfg.Search,
	)

	forgetEngine := forgetting.NewEngine(forgetting.DefaultWeights(), thresholdsFromConfig(cfg.Forgetting))
	reviewEngine := review.NewEngine(review.NewScheduler(review.DefaultWeights(), review.DefaultBounds()))
	scheduler := sweep.New(sweep.DefaultConfig(), st, forgetEngine, reviewEngine, tasks, alerts, logger)

	return &app{
		Surface:   surface,
		Scheduler: scheduler,
		Tasks:     tasks,
		store:     st,
		embedder:  embedder,
	}, nil
}

// Close releases every resource newApp acquired.
func (a *app) Close() error {
	if c, ok := a.embedder.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	return a.store.Close()
}

// thresholdsFromConfig adapts config.ForgettingConfig's TTL-hours map (kept
// dependency-free of internal/store) into forgetting.Thresholds.
func thresholdsFromConfig(fc config.ForgettingConfig) forgetting.Thresholds {
	soft := make(map[store.MemoryType]time.Duration, len(fc.TTLHours))
	hard := make(map[store.MemoryType]time.Duration, len(fc.TTLHours))
	for t, hours := range fc.TTLHours {
		if hours < 0 {
			continue
		}
		mt := store.MemoryType(t)
		soft[mt] = time.Duration(hours) * time.Hour
		hard[mt] = time.Duration(float64(hours)*fc.HardTTLMultiplier) * time.Hour
	}
	return forgetting.Thresholds{
		SoftScore: fc.SoftThreshold,
		HardScore: fc.HardThreshold,
		SoftTTL:   soft,
		HardTTL:   hard,
		MaxPerRun: fc.MaxPerRun,
	}
}
