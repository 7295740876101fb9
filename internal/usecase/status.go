package usecase

import (
	"context"
	"errors"

	"BetaPulse/internal/domain/models"
	domrepo "BetaPulse/internal/domain/repository"
	"BetaPulse/pkg/cache"
)

// StatusUseCase reports the scheduler's externally observable state,
// derived entirely from the cached overview.
type StatusUseCase struct {
	store          domrepo.AnalyticsStore
	symbolsTracked int
}

// NewStatusUseCase creates the status reader.
func NewStatusUseCase(store domrepo.AnalyticsStore, symbolsTracked int) *StatusUseCase {
	return &StatusUseCase{store: store, symbolsTracked: symbolsTracked}
}

// Status returns the current scheduler status. Before the first completed
// tick (no cached overview) it reports zero symbols with data, no last
// update, and the NEUTRAL regime.
func (s *StatusUseCase) Status(ctx context.Context) (*models.SchedulerStatus, error) {
	ov, err := s.store.GetOverview(ctx)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return &models.SchedulerStatus{
				SymbolsTracked: s.symbolsTracked,
				MarketRegime:   models.RegimeNeutral,
			}, nil
		}
		return nil, err
	}

	ts := ov.Timestamp
	return &models.SchedulerStatus{
		SymbolsTracked:  s.symbolsTracked,
		SymbolsWithData: ov.SymbolsWithData,
		LastUpdate:      &ts,
		MarketRegime:    ov.MarketRegime,
	}, nil
}
