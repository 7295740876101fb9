package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	domrepo "BetaPulse/internal/domain/repository"
	"BetaPulse/internal/usecase"
	applogger "BetaPulse/pkg/logger"
)

// Config tunes the analytics scheduler.
type Config struct {
	Symbols          []string
	UpdateInterval   time.Duration
	RecoveryInterval time.Duration
	Workers          int
}

// tickStats is the per-tick outcome summary.
type tickStats struct {
	processed int
	skipped   int
	failed    int
}

// AnalyticsScheduler drives the periodic analytics cycle: a worker pool
// analyzes every tracked symbol, then the aggregator refreshes the market
// overview. A failing symbol never blocks the others, and a failing tick
// never stops the loop.
type AnalyticsScheduler struct {
	analyzer   *usecase.SymbolAnalyzer
	aggregator *usecase.MarketAggregator
	metrics    domrepo.Metrics
	l          *applogger.Logger
	cfg        Config
}

// New creates the scheduler.
func New(analyzer *usecase.SymbolAnalyzer, aggregator *usecase.MarketAggregator, metrics domrepo.Metrics, l *applogger.Logger, cfg Config) *AnalyticsScheduler {
	if cfg.UpdateInterval <= 0 {
		cfg.UpdateInterval = time.Hour
	}
	if cfg.RecoveryInterval <= 0 {
		cfg.RecoveryInterval = time.Minute
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &AnalyticsScheduler{analyzer: analyzer, aggregator: aggregator, metrics: metrics, l: l, cfg: cfg}
}

// Run executes an immediate tick, then ticks on the configured interval
// until the context is canceled. Tick failures are absorbed with a
// recovery pause; the loop itself only exits on cancellation.
func (s *AnalyticsScheduler) Run(ctx context.Context) {
	s.l.Info("analytics scheduler started",
		applogger.Int("symbols", len(s.cfg.Symbols)),
		applogger.Int("workers", s.cfg.Workers),
		applogger.Duration("interval_ms", s.cfg.UpdateInterval))

	s.safeTick(ctx)

	ticker := time.NewTicker(s.cfg.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.l.Info("analytics scheduler stopped")
			return
		case <-ticker.C:
			s.safeTick(ctx)
		}
	}
}

// RunOnce executes a single tick and returns its error, for one-shot
// invocations.
func (s *AnalyticsScheduler) RunOnce(ctx context.Context) error {
	stats, err := s.tick(ctx)
	if err != nil {
		return err
	}
	if stats.failed > 0 {
		return errors.New("tick completed with symbol failures")
	}
	return nil
}

// safeTick runs one tick, converting panics and errors into a logged
// recovery pause instead of propagating them.
func (s *AnalyticsScheduler) safeTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordError("tick_panic")
			s.l.Error("tick panicked, pausing before next cycle", applogger.Any("panic", r))
			s.recoverySleep(ctx)
		}
	}()

	if _, err := s.tick(ctx); err != nil {
		s.l.Error("tick failed, pausing before next cycle", applogger.Error(err))
		s.recoverySleep(ctx)
	}
}

func (s *AnalyticsScheduler) tick(ctx context.Context) (tickStats, error) {
	start := time.Now()

	var (
		mu    sync.Mutex
		stats tickStats
	)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				skipped, failed := s.analyzeOne(ctx, symbol)
				mu.Lock()
				switch {
				case failed:
					stats.failed++
				case skipped:
					stats.skipped++
				default:
					stats.processed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, symbol := range s.cfg.Symbols {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return stats, ctx.Err()
		case jobs <- symbol:
		}
	}
	close(jobs)
	wg.Wait()

	// The overview must only ever see this tick's snapshots, so the
	// aggregator runs strictly after every worker has finished.
	if _, err := s.aggregator.Refresh(ctx); err != nil {
		s.metrics.RecordTick("error", time.Since(start).Seconds())
		return stats, err
	}

	elapsed := time.Since(start)
	result := "ok"
	if stats.failed > 0 {
		result = "partial"
	}
	s.metrics.RecordTick(result, elapsed.Seconds())

	s.l.Info("tick complete",
		applogger.Int("processed", stats.processed),
		applogger.Int("skipped", stats.skipped),
		applogger.Int("failed", stats.failed),
		applogger.Duration("duration_ms", elapsed))
	return stats, nil
}

// analyzeOne runs the analyzer for a single symbol, containing panics so
// one bad symbol cannot take down its worker or the tick.
func (s *AnalyticsScheduler) analyzeOne(ctx context.Context, symbol string) (skipped, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			failed = true
			s.metrics.RecordError("symbol_panic")
			s.l.Error("symbol analysis panicked",
				applogger.String("symbol", symbol),
				applogger.Any("panic", r))
		}
	}()

	if err := s.analyzer.Analyze(ctx, symbol); err != nil {
		if errors.Is(err, domrepo.ErrNoData) {
			return true, false
		}
		s.l.Error("symbol analysis failed",
			applogger.String("symbol", symbol),
			applogger.Error(err))
		return false, true
	}
	return false, false
}

func (s *AnalyticsScheduler) recoverySleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(s.cfg.RecoveryInterval):
	}
}
