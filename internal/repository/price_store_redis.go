package repository

import (
	"context"
	"errors"
	"fmt"

	"BetaPulse/internal/domain/models"
	domrepo "BetaPulse/internal/domain/repository"
	"BetaPulse/pkg/cache"
)

// RedisPriceStore reads close-price series from the shared cache. The
// series are maintained by an external collector; their TTL is owned
// there. A missing or empty series is reported as ErrNoData.
type RedisPriceStore struct {
	cache cache.Service
}

// NewRedisPriceStore creates a cache-backed price store.
func NewRedisPriceStore(c cache.Service) *RedisPriceStore {
	return &RedisPriceStore{cache: c}
}

func (s *RedisPriceStore) GetCloses(ctx context.Context, symbol string, interval domrepo.Interval) ([]float64, error) {
	key := fmt.Sprintf("prices:%s:%s", symbol, interval)

	var series models.PriceSeries
	if err := s.cache.Get(ctx, key, &series); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, domrepo.ErrNoData
		}
		return nil, fmt.Errorf("get price series %s: %w", symbol, err)
	}

	if len(series.Closes) == 0 {
		return nil, domrepo.ErrNoData
	}
	return series.Closes, nil
}

var _ domrepo.PriceStore = (*RedisPriceStore)(nil)
