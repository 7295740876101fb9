package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"BetaPulse/internal/domain/models"
	domrepo "BetaPulse/internal/domain/repository"
	"BetaPulse/internal/services/factors"
	applogger "BetaPulse/pkg/logger"
)

// WindowLabel renders a rolling window in days as its cache/JSON label
// ("7d", "30d", "90d").
func WindowLabel(days int) string {
	return fmt.Sprintf("%dd", days)
}

// AnalyzerConfig tunes the per-symbol analytics pass.
type AnalyzerConfig struct {
	Benchmark     string
	Interval      domrepo.Interval
	WindowsDays   []int
	CanonicalDays int
	Params        factors.Params
	// Now overrides the clock; nil means time.Now. Tests inject it.
	Now func() time.Time
}

// SymbolAnalyzer runs the full analytics pass for one symbol: fetch
// prices, derive returns, compute per-window factors, classify risk, and
// persist the snapshot plus the history point.
type SymbolAnalyzer struct {
	prices  domrepo.PriceStore
	store   domrepo.AnalyticsStore
	metrics domrepo.Metrics
	l       *applogger.Logger
	cfg     AnalyzerConfig
}

// NewSymbolAnalyzer creates a symbol analyzer.
func NewSymbolAnalyzer(prices domrepo.PriceStore, store domrepo.AnalyticsStore, metrics domrepo.Metrics, l *applogger.Logger, cfg AnalyzerConfig) *SymbolAnalyzer {
	if cfg.Interval == "" {
		cfg.Interval = domrepo.DefaultInterval()
	}
	if len(cfg.WindowsDays) == 0 {
		cfg.WindowsDays = []int{7, 30, 90}
	}
	if cfg.CanonicalDays == 0 {
		cfg.CanonicalDays = 30
	}
	if cfg.Params == (factors.Params{}) {
		cfg.Params = factors.DefaultParams()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &SymbolAnalyzer{prices: prices, store: store, metrics: metrics, l: l, cfg: cfg}
}

// Analyze computes and persists the snapshot for one symbol. A missing
// asset or benchmark series returns ErrNoData: the symbol is skipped this
// tick and its previous snapshot ages out via TTL. Cache write failures
// are returned so the scheduler can count them; the tick's result for the
// symbol is simply discarded and recomputed next tick.
func (a *SymbolAnalyzer) Analyze(ctx context.Context, symbol string) error {
	assetCloses, err := a.prices.GetCloses(ctx, symbol, a.cfg.Interval)
	if err != nil {
		if errors.Is(err, domrepo.ErrNoData) {
			a.l.Info("no price data, skipping symbol", applogger.String("symbol", symbol))
			return fmt.Errorf("asset %s: %w", symbol, err)
		}
		a.metrics.RecordError("price_store")
		return fmt.Errorf("fetch asset closes %s: %w", symbol, err)
	}

	benchCloses, err := a.prices.GetCloses(ctx, a.cfg.Benchmark, a.cfg.Interval)
	if err != nil {
		if errors.Is(err, domrepo.ErrNoData) {
			a.l.Info("no benchmark data, skipping symbol",
				applogger.String("symbol", symbol),
				applogger.String("benchmark", a.cfg.Benchmark))
			return fmt.Errorf("benchmark %s: %w", a.cfg.Benchmark, err)
		}
		a.metrics.RecordError("price_store")
		return fmt.Errorf("fetch benchmark closes %s: %w", a.cfg.Benchmark, err)
	}

	assetRets := factors.LogReturns(assetCloses)
	benchRets := factors.LogReturns(benchCloses)

	factorSets := make(map[string]models.FactorSet, len(a.cfg.WindowsDays))
	for _, days := range a.cfg.WindowsDays {
		periods := days * 24
		fs := factors.Compute(
			factors.Tail(assetRets, periods),
			factors.Tail(benchRets, periods),
			a.cfg.Params,
		)
		label := WindowLabel(days)
		factorSets[label] = fs
		a.metrics.RecordBeta(symbol, label, fs.Beta)
	}

	canonical := factorSets[WindowLabel(a.cfg.CanonicalDays)]

	snap := &models.SymbolSnapshot{
		Symbol:          symbol,
		Timestamp:       a.cfg.Now().UTC(),
		LastPrice:       assetCloses[len(assetCloses)-1],
		Change24hPct:    change24h(assetCloses),
		VolatilityRatio: volatilityRatio(assetRets, benchRets),
		Risk:            factors.ClassifyRisk(canonical.Beta),
		Factors:         factorSets,
	}

	if err := a.store.SaveSnapshot(ctx, snap); err != nil {
		a.metrics.RecordError("cache_write")
		a.l.Error("snapshot write failed", applogger.String("symbol", symbol), applogger.Error(err))
		return err
	}

	point := models.HistoryPoint{
		Timestamp:   snap.Timestamp,
		Beta:        canonical.Beta,
		Correlation: canonical.Correlation,
	}
	if err := a.store.AppendHistory(ctx, symbol, point); err != nil {
		a.metrics.RecordError("cache_write")
		a.l.Error("history append failed", applogger.String("symbol", symbol), applogger.Error(err))
		return err
	}

	a.metrics.RecordLastPrice(symbol, snap.LastPrice)
	return nil
}

// change24h computes the 24-hour percentage change from hourly closes.
// Omitted (nil) when fewer than 24 closes exist or the reference close is
// not positive.
func change24h(closes []float64) *float64 {
	n := len(closes)
	if n < 24 {
		return nil
	}
	ref := closes[n-24]
	if ref <= 0 {
		return nil
	}
	pct := factors.Round2((closes[n-1] - ref) / ref * 100)
	return &pct
}

// volatilityRatio compares asset and benchmark volatility over the last
// 168 hourly returns. Defaults to 1.0 when either series is short or the
// benchmark is flat.
func volatilityRatio(assetRets, benchRets []float64) float64 {
	const window = 168
	if len(assetRets) < window || len(benchRets) < window {
		return 1.0
	}
	benchVol := factors.Volatility(factors.Tail(benchRets, window))
	if benchVol == 0 {
		return 1.0
	}
	assetVol := factors.Volatility(factors.Tail(assetRets, window))
	return factors.Round2(assetVol / benchVol)
}
