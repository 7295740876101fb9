package usecase

import (
	"context"
	"time"

	"BetaPulse/internal/domain/models"
	domrepo "BetaPulse/internal/domain/repository"
	"BetaPulse/internal/services/factors"
	applogger "BetaPulse/pkg/logger"
)

// AggregatorConfig tunes the market-wide aggregation pass.
type AggregatorConfig struct {
	Symbols           []string
	CanonicalDays     int
	FallbackDominance float64
	Now               func() time.Time
}

// MarketAggregator derives the market overview from the currently cached
// snapshots. It runs strictly after the per-symbol pass of each tick, so
// the overview reflects the snapshots that tick produced.
type MarketAggregator struct {
	store     domrepo.AnalyticsStore
	dominance domrepo.DominanceSource
	publisher domrepo.Publisher
	metrics   domrepo.Metrics
	l         *applogger.Logger
	cfg       AggregatorConfig
}

// NewMarketAggregator creates a market aggregator.
func NewMarketAggregator(store domrepo.AnalyticsStore, dominance domrepo.DominanceSource, publisher domrepo.Publisher, metrics domrepo.Metrics, l *applogger.Logger, cfg AggregatorConfig) *MarketAggregator {
	if cfg.CanonicalDays == 0 {
		cfg.CanonicalDays = 30
	}
	if cfg.FallbackDominance == 0 {
		cfg.FallbackDominance = 57.4
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &MarketAggregator{store: store, dominance: dominance, publisher: publisher, metrics: metrics, l: l, cfg: cfg}
}

// Refresh recomputes and persists the market overview. Symbols without a
// cached snapshot contribute nothing; the regime buckets are computed
// over the symbols that do have data. A regime flip relative to the
// previously stored overview emits a RegimeEvent; publish failures are
// logged and never fail the refresh.
func (m *MarketAggregator) Refresh(ctx context.Context) (*models.MarketOverview, error) {
	snaps, err := m.store.GetSnapshots(ctx, m.cfg.Symbols)
	if err != nil {
		m.metrics.RecordError("cache_read")
		return nil, err
	}

	label := WindowLabel(m.cfg.CanonicalDays)
	var betas, corrs []float64
	var high, low, neutral int
	for _, snap := range snaps {
		fs, ok := snap.Factors[label]
		if !ok {
			continue
		}
		betas = append(betas, fs.Beta)
		corrs = append(corrs, fs.Correlation)
		switch {
		case fs.Beta >= 1.5:
			high++
		case fs.Beta <= 0.9:
			low++
		default:
			neutral++
		}
	}

	marketBeta := 1.0
	if len(betas) > 0 {
		marketBeta = factors.Round2(mean(betas))
	}
	avgCorr := 0.0
	if len(corrs) > 0 {
		avgCorr = factors.Round3(mean(corrs))
	}

	regime := classifyRegime(high, len(betas), avgCorr)

	dom, err := m.dominance.BTCDominance(ctx)
	if err != nil {
		m.l.Debug("btc dominance unavailable, using fallback",
			applogger.Float64("fallback", m.cfg.FallbackDominance),
			applogger.Error(err))
		dom = m.cfg.FallbackDominance
	}

	var prevRegime string
	if prev, err := m.store.GetOverview(ctx); err == nil {
		prevRegime = prev.MarketRegime
	}

	ov := &models.MarketOverview{
		Timestamp:        m.cfg.Now().UTC(),
		MarketBeta:       marketBeta,
		AvgCorrelation:   avgCorr,
		HighBetaCount:    high,
		LowBetaCount:     low,
		NeutralBetaCount: neutral,
		MarketRegime:     regime,
		BTCDominance:     dom,
		SymbolsTracked:   len(m.cfg.Symbols),
		SymbolsWithData:  len(betas),
	}

	if err := m.store.SaveOverview(ctx, ov); err != nil {
		m.metrics.RecordError("cache_write")
		return nil, err
	}
	m.metrics.RecordSymbolsWithData(len(betas))

	if prevRegime != "" && prevRegime != regime {
		ev := &models.RegimeEvent{
			Timestamp:      ov.Timestamp,
			Previous:       prevRegime,
			Current:        regime,
			MarketBeta:     marketBeta,
			AvgCorrelation: avgCorr,
		}
		if err := m.publisher.PublishRegimeChange(ctx, ev); err != nil {
			m.metrics.RecordError("publish")
			m.l.Error("regime event publish failed",
				applogger.String("previous", prevRegime),
				applogger.String("current", regime),
				applogger.Error(err))
		} else {
			m.l.Info("market regime changed",
				applogger.String("previous", prevRegime),
				applogger.String("current", regime))
		}
	}

	return ov, nil
}

// classifyRegime maps the high-beta fraction and average correlation to a
// market regime. The rules are evaluated in priority order; the first
// match wins.
func classifyRegime(high, withData int, avgCorr float64) string {
	if withData == 0 {
		return models.RegimeNeutral
	}
	frac := float64(high) / float64(withData)
	switch {
	case frac > 0.6 && avgCorr > 0.7:
		return models.RegimeRiskOn
	case frac < 0.3 && avgCorr < 0.5:
		return models.RegimeRiskOff
	case avgCorr > 0.85:
		return models.RegimeCorrelatedCrash
	default:
		return models.RegimeNeutral
	}
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
