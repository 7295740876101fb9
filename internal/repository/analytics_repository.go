package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"BetaPulse/internal/domain/models"
	domrepo "BetaPulse/internal/domain/repository"
	"BetaPulse/pkg/cache"
)

const (
	snapshotKeyPrefix = "snapshot:"
	historyKeyPrefix  = "history:"
	overviewKey       = "overview"
)

// AnalyticsRepository persists snapshots, history rings, and the market
// overview as typed JSON blobs in the cache. Every write fully replaces
// the prior value; nothing is merged in place.
type AnalyticsRepository struct {
	cache        cache.Service
	snapshotTTL  time.Duration
	historyTTL   time.Duration
	historyLimit int
}

// NewAnalyticsRepository creates the analytics store over a cache service.
func NewAnalyticsRepository(c cache.Service, snapshotTTL, historyTTL time.Duration, historyLimit int) *AnalyticsRepository {
	if snapshotTTL <= 0 {
		snapshotTTL = time.Hour
	}
	if historyTTL <= 0 {
		historyTTL = 7 * 24 * time.Hour
	}
	if historyLimit <= 0 {
		historyLimit = 168
	}
	return &AnalyticsRepository{
		cache:        c,
		snapshotTTL:  snapshotTTL,
		historyTTL:   historyTTL,
		historyLimit: historyLimit,
	}
}

func (r *AnalyticsRepository) SaveSnapshot(ctx context.Context, snap *models.SymbolSnapshot) error {
	if err := r.cache.Set(ctx, snapshotKeyPrefix+snap.Symbol, snap, r.snapshotTTL); err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.Symbol, err)
	}
	return nil
}

func (r *AnalyticsRepository) GetSnapshot(ctx context.Context, symbol string) (*models.SymbolSnapshot, error) {
	var snap models.SymbolSnapshot
	if err := r.cache.Get(ctx, snapshotKeyPrefix+symbol, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetSnapshots fetches the currently cached snapshots for the given
// symbols in one round trip. Symbols without a snapshot are simply absent
// from the result.
func (r *AnalyticsRepository) GetSnapshots(ctx context.Context, symbols []string) (map[string]models.SymbolSnapshot, error) {
	keys := make([]string, len(symbols))
	for i, s := range symbols {
		keys[i] = snapshotKeyPrefix + s
	}

	byKey, err := cache.MGetTyped[models.SymbolSnapshot](ctx, r.cache, keys...)
	if err != nil {
		return nil, fmt.Errorf("get snapshots: %w", err)
	}

	out := make(map[string]models.SymbolSnapshot, len(byKey))
	for key, snap := range byKey {
		out[key[len(snapshotKeyPrefix):]] = snap
	}
	return out, nil
}

// AppendHistory appends a point to the symbol's beta/correlation ring,
// evicting the oldest entries beyond the cap. The ring carries its own
// TTL, independent of the snapshot TTL.
func (r *AnalyticsRepository) AppendHistory(ctx context.Context, symbol string, point models.HistoryPoint) error {
	key := historyKeyPrefix + symbol

	var points []models.HistoryPoint
	if err := r.cache.Get(ctx, key, &points); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		return fmt.Errorf("read history %s: %w", symbol, err)
	}

	points = append(points, point)
	if len(points) > r.historyLimit {
		points = points[len(points)-r.historyLimit:]
	}

	if err := r.cache.Set(ctx, key, points, r.historyTTL); err != nil {
		return fmt.Errorf("save history %s: %w", symbol, err)
	}
	return nil
}

func (r *AnalyticsRepository) GetHistory(ctx context.Context, symbol string) ([]models.HistoryPoint, error) {
	var points []models.HistoryPoint
	if err := r.cache.Get(ctx, historyKeyPrefix+symbol, &points); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history %s: %w", symbol, err)
	}
	return points, nil
}

func (r *AnalyticsRepository) SaveOverview(ctx context.Context, ov *models.MarketOverview) error {
	if err := r.cache.Set(ctx, overviewKey, ov, r.snapshotTTL); err != nil {
		return fmt.Errorf("save overview: %w", err)
	}
	return nil
}

func (r *AnalyticsRepository) GetOverview(ctx context.Context) (*models.MarketOverview, error) {
	var ov models.MarketOverview
	if err := r.cache.Get(ctx, overviewKey, &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

var _ domrepo.AnalyticsStore = (*AnalyticsRepository)(nil)
