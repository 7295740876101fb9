//go:build wireinject
// +build wireinject

package di

import (
	"BetaPulse/pkg/config"
	"BetaPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisCache,
		ProvideCacheService,
		ProvideClickHouseClient,

		// Repositories
		ProvidePriceStore,
		ProvideAnalyticsStore,
		ProvidePublisher,
		ProvideDominanceSource,

		// Use cases
		ProvideSymbolAnalyzer,
		ProvideMarketAggregator,
		ProvideStatusUseCase,

		// Scheduler and HTTP surface
		ProvideScheduler,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
