package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"BetaPulse/internal/domain/models"
	domrepo "BetaPulse/internal/domain/repository"
	internalrepo "BetaPulse/internal/repository"
	"BetaPulse/internal/usecase"
	"BetaPulse/pkg/cache"
	applogger "BetaPulse/pkg/logger"
)

type stubPriceStore struct {
	series map[string][]float64
	panics map[string]bool
}

func (s *stubPriceStore) GetCloses(_ context.Context, symbol string, _ domrepo.Interval) ([]float64, error) {
	if s.panics[symbol] {
		panic("corrupt series for " + symbol)
	}
	closes, ok := s.series[symbol]
	if !ok {
		return nil, domrepo.ErrNoData
	}
	return closes, nil
}

type stubDominance struct{}

func (stubDominance) BTCDominance(context.Context) (float64, error) {
	return 0, errors.New("unavailable")
}

type stubPublisher struct{}

func (stubPublisher) PublishRegimeChange(context.Context, *models.RegimeEvent) error { return nil }
func (stubPublisher) Close() error                                                   { return nil }

type stubMetrics struct {
	ticks []string
}

func (m *stubMetrics) RecordTick(result string, _ float64) { m.ticks = append(m.ticks, result) }
func (m *stubMetrics) RecordError(string)                  {}
func (m *stubMetrics) RecordLastPrice(string, float64)     {}
func (m *stubMetrics) RecordBeta(string, string, float64)  {}
func (m *stubMetrics) RecordSymbolsWithData(int)           {}

func flatSeries(base float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + float64(i%7)
	}
	return out
}

func newTestScheduler(prices domrepo.PriceStore, symbols []string, m *stubMetrics) (*AnalyticsScheduler, domrepo.AnalyticsStore) {
	store := internalrepo.NewAnalyticsRepository(cache.NewMemoryCache(), time.Hour, 168*time.Hour, 168)
	l := applogger.Nop()

	analyzer := usecase.NewSymbolAnalyzer(prices, store, m, l, usecase.AnalyzerConfig{
		Benchmark: "BTCUSDT",
	})
	aggregator := usecase.NewMarketAggregator(store, stubDominance{}, stubPublisher{}, m, l, usecase.AggregatorConfig{
		Symbols: symbols,
	})
	sched := New(analyzer, aggregator, m, l, Config{
		Symbols: symbols,
		Workers: 2,
	})
	return sched, store
}

func TestRunOnceProcessesAllSymbols(t *testing.T) {
	symbols := []string{"ETHUSDT", "SOLUSDT"}
	prices := &stubPriceStore{series: map[string][]float64{
		"BTCUSDT": flatSeries(60000, 100),
		"ETHUSDT": flatSeries(3000, 100),
		"SOLUSDT": flatSeries(150, 100),
	}}
	m := &stubMetrics{}
	sched, store := newTestScheduler(prices, symbols, m)

	if err := sched.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	for _, s := range symbols {
		if _, err := store.GetSnapshot(context.Background(), s); err != nil {
			t.Errorf("missing snapshot for %s: %v", s, err)
		}
	}
	ov, err := store.GetOverview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.SymbolsWithData != 2 {
		t.Errorf("symbols with data = %d, want 2", ov.SymbolsWithData)
	}
	if len(m.ticks) != 1 || m.ticks[0] != "ok" {
		t.Errorf("tick results = %v, want [ok]", m.ticks)
	}
}

// A symbol that panics mid-analysis must not block the rest of the batch
// or suppress the aggregator.
func TestRunOnceIsolatesFailingSymbol(t *testing.T) {
	symbols := []string{"ETHUSDT", "BADUSDT", "SOLUSDT"}
	prices := &stubPriceStore{
		series: map[string][]float64{
			"BTCUSDT": flatSeries(60000, 100),
			"ETHUSDT": flatSeries(3000, 100),
			"SOLUSDT": flatSeries(150, 100),
		},
		panics: map[string]bool{"BADUSDT": true},
	}
	m := &stubMetrics{}
	sched, store := newTestScheduler(prices, symbols, m)

	err := sched.RunOnce(context.Background())
	if err == nil {
		t.Fatal("expected an error reporting symbol failures")
	}

	for _, s := range []string{"ETHUSDT", "SOLUSDT"} {
		if _, err := store.GetSnapshot(context.Background(), s); err != nil {
			t.Errorf("missing snapshot for %s: %v", s, err)
		}
	}
	ov, err := store.GetOverview(context.Background())
	if err != nil {
		t.Fatalf("overview should still be computed: %v", err)
	}
	if ov.SymbolsWithData != 2 {
		t.Errorf("symbols with data = %d, want 2", ov.SymbolsWithData)
	}
	if len(m.ticks) != 1 || m.ticks[0] != "partial" {
		t.Errorf("tick results = %v, want [partial]", m.ticks)
	}
}

// Symbols without price data are skipped quietly, not counted as failures.
func TestRunOnceSkipsMissingData(t *testing.T) {
	symbols := []string{"ETHUSDT", "NEWUSDT"}
	prices := &stubPriceStore{series: map[string][]float64{
		"BTCUSDT": flatSeries(60000, 100),
		"ETHUSDT": flatSeries(3000, 100),
	}}
	m := &stubMetrics{}
	sched, store := newTestScheduler(prices, symbols, m)

	if err := sched.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	if _, err := store.GetSnapshot(context.Background(), "NEWUSDT"); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("expected no snapshot for skipped symbol, got err=%v", err)
	}
	ov, err := store.GetOverview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.SymbolsTracked != 2 || ov.SymbolsWithData != 1 {
		t.Errorf("tracked/with data = %d/%d, want 2/1", ov.SymbolsTracked, ov.SymbolsWithData)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	prices := &stubPriceStore{series: map[string][]float64{
		"BTCUSDT": flatSeries(60000, 100),
		"ETHUSDT": flatSeries(3000, 100),
	}}
	sched, _ := newTestScheduler(prices, []string{"ETHUSDT"}, &stubMetrics{})
	sched.cfg.UpdateInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
