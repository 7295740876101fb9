package repository

import (
	"context"
	"errors"

	"BetaPulse/internal/domain/models"
)

// ErrNoData reports that a price series is absent from the store. Missing
// data is an expected case, not a failure: callers skip the symbol for the
// current tick and the previous snapshot ages out on its own TTL.
var ErrNoData = errors.New("price store: no data for symbol")

// PriceStore provides read-only access to recent close-price series.
type PriceStore interface {
	GetCloses(ctx context.Context, symbol string, interval Interval) ([]float64, error)
}

// AnalyticsStore persists and reads the per-symbol snapshots, the capped
// beta/correlation history, and the market overview. All values are
// TTL-bounded; a missing key means "not yet computed".
type AnalyticsStore interface {
	SaveSnapshot(ctx context.Context, snap *models.SymbolSnapshot) error
	GetSnapshot(ctx context.Context, symbol string) (*models.SymbolSnapshot, error)
	GetSnapshots(ctx context.Context, symbols []string) (map[string]models.SymbolSnapshot, error)
	AppendHistory(ctx context.Context, symbol string, point models.HistoryPoint) error
	GetHistory(ctx context.Context, symbol string) ([]models.HistoryPoint, error)
	SaveOverview(ctx context.Context, ov *models.MarketOverview) error
	GetOverview(ctx context.Context) (*models.MarketOverview, error)
}

// Publisher delivers regime-change events to downstream consumers.
type Publisher interface {
	PublishRegimeChange(ctx context.Context, ev *models.RegimeEvent) error
	Close() error
}

// DominanceSource reads the external BTC-dominance signal. Implementations
// return an error when the signal is unavailable; the caller substitutes
// the configured fallback.
type DominanceSource interface {
	BTCDominance(ctx context.Context) (float64, error)
}

// Metrics records operational metrics.
type Metrics interface {
	RecordTick(result string, seconds float64)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordBeta(symbol, window string, beta float64)
	RecordSymbolsWithData(n int)
}
