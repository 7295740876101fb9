package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"BetaPulse/internal/domain/models"
	domrepo "BetaPulse/internal/domain/repository"
	internalrepo "BetaPulse/internal/repository"
	"BetaPulse/pkg/cache"
	applogger "BetaPulse/pkg/logger"
)

type fakePriceStore struct {
	series map[string][]float64
}

func (f *fakePriceStore) GetCloses(_ context.Context, symbol string, _ domrepo.Interval) ([]float64, error) {
	s, ok := f.series[symbol]
	if !ok || len(s) == 0 {
		return nil, domrepo.ErrNoData
	}
	return s, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordTick(string, float64)         {}
func (nopMetrics) RecordError(string)                 {}
func (nopMetrics) RecordLastPrice(string, float64)    {}
func (nopMetrics) RecordBeta(string, string, float64) {}
func (nopMetrics) RecordSymbolsWithData(int)          {}

func newTestStore() domrepo.AnalyticsStore {
	return internalrepo.NewAnalyticsRepository(cache.NewMemoryCache(), time.Hour, 168*time.Hour, 168)
}

// trending builds n hourly closes moving linearly from start to end with a
// small multiplicative oscillation of the given relative amplitude.
func trending(start, end float64, n int, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		base := start + (end-start)*float64(i)/float64(n-1)
		out[i] = base * (1 + amplitude*math.Sin(float64(i)))
	}
	return out
}

func newTestAnalyzer(prices domrepo.PriceStore, store domrepo.AnalyticsStore, now func() time.Time) *SymbolAnalyzer {
	return NewSymbolAnalyzer(prices, store, nopMetrics{}, applogger.Nop(), AnalyzerConfig{
		Benchmark: "BTCUSDT",
		Now:       now,
	})
}

func TestAnalyzeSkipsSymbolWithoutData(t *testing.T) {
	store := newTestStore()
	prices := &fakePriceStore{series: map[string][]float64{
		"BTCUSDT": trending(60000, 65000, 200, 0.01),
	}}
	a := newTestAnalyzer(prices, store, nil)

	err := a.Analyze(context.Background(), "ETHUSDT")
	if !errors.Is(err, domrepo.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}

	if _, err := store.GetSnapshot(context.Background(), "ETHUSDT"); !errors.Is(err, cache.ErrCacheMiss) {
		t.Fatalf("expected no snapshot cached, got err=%v", err)
	}
}

func TestAnalyzeSkipsWhenBenchmarkMissing(t *testing.T) {
	store := newTestStore()
	prices := &fakePriceStore{series: map[string][]float64{
		"ETHUSDT": trending(3000, 3500, 200, 0.01),
	}}
	a := newTestAnalyzer(prices, store, nil)

	if err := a.Analyze(context.Background(), "ETHUSDT"); !errors.Is(err, domrepo.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestAnalyzeSnapshotShape(t *testing.T) {
	store := newTestStore()
	asset := trending(3000, 3500, 200, 0.01)
	prices := &fakePriceStore{series: map[string][]float64{
		"ETHUSDT": asset,
		"BTCUSDT": trending(60000, 65000, 200, 0.01),
	}}
	a := newTestAnalyzer(prices, store, nil)

	if err := a.Analyze(context.Background(), "ETHUSDT"); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	snap, err := store.GetSnapshot(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}

	if snap.Symbol != "ETHUSDT" {
		t.Errorf("symbol = %s", snap.Symbol)
	}
	if snap.LastPrice != asset[len(asset)-1] {
		t.Errorf("last price = %v, want %v", snap.LastPrice, asset[len(asset)-1])
	}
	for _, w := range []string{"7d", "30d", "90d"} {
		if _, ok := snap.Factors[w]; !ok {
			t.Errorf("missing window %s", w)
		}
	}
	if snap.Change24hPct == nil {
		t.Error("expected change_24h_pct with 200 closes")
	}
	if snap.Risk.Category == "" || snap.Risk.Color == "" {
		t.Errorf("incomplete risk profile: %+v", snap.Risk)
	}

	hist, err := store.GetHistory(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(hist) != 1 {
		t.Fatalf("history len = %d, want 1", len(hist))
	}
	canonical := snap.Factors["30d"]
	if hist[0].Beta != canonical.Beta || hist[0].Correlation != canonical.Correlation {
		t.Errorf("history point %+v does not match canonical factors %+v", hist[0], canonical)
	}
}

func TestAnalyzeTrendingSeriesBeta(t *testing.T) {
	store := newTestStore()
	prices := &fakePriceStore{series: map[string][]float64{
		"ETHUSDT": trending(3000, 3500, 200, 0.01),
		"BTCUSDT": trending(60000, 65000, 200, 0.01),
	}}
	a := newTestAnalyzer(prices, store, nil)

	if err := a.Analyze(context.Background(), "ETHUSDT"); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	snap, err := store.GetSnapshot(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}

	fs := snap.Factors["30d"]
	if fs.Beta < 0.8 || fs.Beta > 1.3 {
		t.Errorf("beta_30d = %v, want in [0.8, 1.3]", fs.Beta)
	}
	if fs.Correlation <= 0.5 {
		t.Errorf("correlation_30d = %v, want > 0.5", fs.Correlation)
	}
	// 200 closes yield 199 returns, all inside the 720-period window.
	if fs.NPeriods != 199 {
		t.Errorf("n_periods = %d, want 199", fs.NPeriods)
	}
}

func TestAnalyzeShortSeriesFallsBackToNeutral(t *testing.T) {
	store := newTestStore()
	prices := &fakePriceStore{series: map[string][]float64{
		"ETHUSDT": {3000},
		"BTCUSDT": {60000},
	}}
	a := newTestAnalyzer(prices, store, nil)

	if err := a.Analyze(context.Background(), "ETHUSDT"); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	snap, err := store.GetSnapshot(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	want := models.NewNeutralFactorSet()
	for w, fs := range snap.Factors {
		if fs != want {
			t.Errorf("window %s = %+v, want neutral %+v", w, fs, want)
		}
	}
	if snap.Change24hPct != nil {
		t.Error("expected no change_24h_pct with a single close")
	}
	if snap.VolatilityRatio != 1.0 {
		t.Errorf("volatility ratio = %v, want 1.0", snap.VolatilityRatio)
	}
}

func TestAnalyzeDeterministicAcrossRuns(t *testing.T) {
	store := newTestStore()
	prices := &fakePriceStore{series: map[string][]float64{
		"ETHUSDT": trending(3000, 3500, 200, 0.01),
		"BTCUSDT": trending(60000, 65000, 200, 0.01),
	}}
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAnalyzer(prices, store, func() time.Time { return fixed })

	for i := 0; i < 2; i++ {
		if err := a.Analyze(context.Background(), "ETHUSDT"); err != nil {
			t.Fatalf("analyze run %d: %v", i, err)
		}
	}

	snap, err := store.GetSnapshot(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	first := snap.Factors["30d"]

	hist, err := store.GetHistory(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("history len = %d, want 2", len(hist))
	}
	if hist[0].Beta != hist[1].Beta || hist[0].Beta != first.Beta {
		t.Errorf("expected identical betas across runs, got %v and %v", hist[0].Beta, hist[1].Beta)
	}
}
