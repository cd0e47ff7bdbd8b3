// Package sweep runs the ForgettingEngine and review Scheduler on a
// periodic tick (spec section 5), and samples the TaskQueue into the
// AlertMonitor so threshold breaches surface without a caller asking.
// Lifecycle (running flag, stop channel, background goroutine) is
// grounded on the teacher's internal/async.BackgroundIndexer.
package sweep

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mnemo-systems/mnemo/internal/alert"
	"github.com/mnemo-systems/mnemo/internal/forgetting"
	"github.com/mnemo-systems/mnemo/internal/queue"
	"github.com/mnemo-systems/mnemo/internal/review"
	"github.com/mnemo-systems/mnemo/internal/store"
)

// Config controls how often each concern ticks.
type Config struct {
	ForgetInterval time.Duration
	ReviewInterval time.Duration
	AlertInterval  time.Duration
}

// DefaultConfig mirrors what a long-running server needs: forgetting and
// review are cheap full-table scans so they run hourly; alert sampling is
// cheap enough to run every 15 seconds.
func DefaultConfig() Config {
	return Config{
		ForgetInterval: time.Hour,
		ReviewInterval: time.Hour,
		AlertInterval:  15 * time.Second,
	}
}

// Scheduler owns the background tickers for a running mnemo server.
type Scheduler struct {
	cfg        Config
	store      store.Store
	forgetting *forgetting.Engine
	review     *review.Engine
	tasks      *queue.TaskQueue
	alerts     *alert.Monitor
	logger     *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New builds a Scheduler. tasks and alerts may be nil to disable queue
// sampling (e.g. in tests that only care about the forget/review ticks).
func New(cfg Config, st store.Store, forgettingEngine *forgetting.Engine, reviewEngine *review.Engine, tasks *queue.TaskQueue, alerts *alert.Monitor, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cfg:        cfg,
		store:      st,
		forgetting: forgettingEngine,
		review:     reviewEngine,
		tasks:      tasks,
		alerts:     alerts,
		logger:     logger,
	}
}

// Start launches the background tickers. Non-blocking.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.run(ctx)
}

// Stop signals the tickers to exit and waits for them to drain.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { defer wg.Done(); s.tickForget(ctx) }()
	wg.Add(1)
	go func() { defer wg.Done(); s.tickReview(ctx) }()
	if s.tasks != nil && s.alerts != nil {
		wg.Add(1)
		go func() { defer wg.Done(); s.tickAlerts(ctx) }()
	}
	wg.Wait()
}

func (s *Scheduler) tickForget(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.ForgetInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runForgetSweep(ctx)
		}
	}
}

func (s *Scheduler) runForgetSweep(ctx context.Context) {
	candidates, err := s.forgetting.Sweep(ctx, s.store, time.Now())
	if err != nil {
		s.logger.Error("forgetting sweep failed", slog.Any("error", err))
		return
	}
	for _, c := range candidates {
		var delErr error
		switch c.Action {
		case forgetting.ActionHardDelete:
			delErr = s.store.HardDeleteMemory(ctx, c.MemoryID)
		case forgetting.ActionSoftDelete:
			delErr = s.store.SoftDeleteMemory(ctx, c.MemoryID)
		}
		if delErr != nil {
			s.logger.Warn("forgetting sweep delete failed",
				slog.String("memory_id", c.MemoryID), slog.String("action", string(c.Action)), slog.Any("error", delErr))
		}
	}
	if len(candidates) > 0 {
		s.logger.Info("forgetting sweep complete", slog.Int("candidates", len(candidates)))
	}
}

func (s *Scheduler) tickReview(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.ReviewInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			results, err := s.review.Sweep(ctx, s.store, time.Now())
			if err != nil {
				s.logger.Error("review sweep failed", slog.Any("error", err))
				continue
			}
			s.logger.Info("review sweep complete", slog.Int("scheduled", len(results)))
		}
	}
}

func (s *Scheduler) tickAlerts(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.AlertInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sampleQueue()
		}
	}
}

func (s *Scheduler) sampleQueue() {
	stats := s.tasks.Stats()
	now := time.Now()

	if a := s.alerts.Check(alert.MetricResponseTime, stats.AvgExecutionMillis, now, nil); a != nil {
		s.logger.Warn("alert fired", slog.String("metric", string(a.Metric)), slog.String("level", string(a.Level)))
	}
	errorRate := 0.0
	if total := stats.InFlight + stats.Failed; total > 0 {
		errorRate = float64(stats.Failed) / float64(total)
	}
	if a := s.alerts.Check(alert.MetricErrorRate, errorRate, now, nil); a != nil {
		s.logger.Warn("alert fired", slog.String("metric", string(a.Metric)), slog.String("level", string(a.Level)))
	}
	if a := s.alerts.Check(alert.MetricThroughput, stats.ThroughputPerMin, now, nil); a != nil {
		s.logger.Warn("alert fired", slog.String("metric", string(a.Metric)), slog.String("level", string(a.Level)))
	}
}
