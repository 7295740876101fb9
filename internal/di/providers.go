package di

import (
	"fmt"

	"BetaPulse/internal/domain/repository"
	"BetaPulse/internal/handler/api"
	internalrepo "BetaPulse/internal/repository"
	"BetaPulse/internal/scheduler"
	"BetaPulse/internal/services/dominance"
	"BetaPulse/internal/services/factors"
	"BetaPulse/internal/usecase"
	pkgcache "BetaPulse/pkg/cache"
	pkgch "BetaPulse/pkg/clickhouse"
	"BetaPulse/pkg/config"
	xhttp "BetaPulse/pkg/http"
	pkgkafka "BetaPulse/pkg/kafka"
	applogger "BetaPulse/pkg/logger"
	"BetaPulse/pkg/metrics"
	"BetaPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRedisCache creates the shared Redis cache client.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	c, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Redis.Host),
		pkgcache.WithRedisPort(cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPool(cfg.Redis.PoolSize, cfg.Redis.MinIdleConns, cfg.Redis.PoolTimeout),
		pkgcache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideCacheService exposes the Redis cache behind the Service interface.
func ProvideCacheService(c *pkgcache.RedisCache) pkgcache.Service {
	return c
}

// ProvideClickHouseClient creates a ClickHouse client when the clickhouse
// price-store backend is configured, nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.PriceStore.Backend != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvidePriceStore selects the configured price-store backend.
func ProvidePriceStore(cfg *config.Config, cache pkgcache.Service, ch *pkgch.Client, l *applogger.Logger) (repository.PriceStore, error) {
	switch cfg.PriceStore.Backend {
	case "clickhouse":
		store := internalrepo.NewClickHousePriceStore(ch, cfg.ClickHouse.Database, cfg.PriceStore.MaxBars)
		store.SetLogger(l)
		return store, nil
	case "redis":
		return internalrepo.NewRedisPriceStore(cache), nil
	default:
		return nil, fmt.Errorf("unknown price store backend: %s", cfg.PriceStore.Backend)
	}
}

// ProvideAnalyticsStore creates the cache-backed analytics repository.
func ProvideAnalyticsStore(cfg *config.Config, cache pkgcache.Service) repository.AnalyticsStore {
	return internalrepo.NewAnalyticsRepository(
		cache,
		cfg.Analytics.SnapshotTTL,
		cfg.Analytics.HistoryTTL,
		cfg.Analytics.HistoryLimit,
	)
}

// ProvidePublisher creates the Kafka regime-event publisher, or a no-op
// publisher when Kafka is disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NoopPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaRegimePublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideDominanceSource creates the BTC-dominance client.
func ProvideDominanceSource(cfg *config.Config) repository.DominanceSource {
	return dominance.New(cfg.Dominance.URL, cfg.Dominance.Timeout)
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSymbolAnalyzer creates the per-symbol analytics use case.
func ProvideSymbolAnalyzer(
	prices repository.PriceStore,
	store repository.AnalyticsStore,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.SymbolAnalyzer {
	return usecase.NewSymbolAnalyzer(prices, store, m, l, usecase.AnalyzerConfig{
		Benchmark:     cfg.Analytics.Benchmark,
		Interval:      repository.NormalizeInterval(cfg.PriceStore.Interval),
		WindowsDays:   cfg.Analytics.WindowsDays,
		CanonicalDays: cfg.Analytics.CanonicalWindow,
		Params: factors.Params{
			RiskFreeRate:   cfg.Analytics.RiskFreeRate,
			PeriodsPerYear: cfg.Analytics.PeriodsPerYear,
		},
	})
}

// ProvideMarketAggregator creates the market-wide aggregation use case.
func ProvideMarketAggregator(
	store repository.AnalyticsStore,
	dom repository.DominanceSource,
	pub repository.Publisher,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.MarketAggregator {
	return usecase.NewMarketAggregator(store, dom, pub, m, l, usecase.AggregatorConfig{
		Symbols:           cfg.Analytics.Symbols,
		CanonicalDays:     cfg.Analytics.CanonicalWindow,
		FallbackDominance: cfg.Analytics.FallbackDominance,
	})
}

// ProvideScheduler creates the analytics scheduler.
func ProvideScheduler(
	analyzer *usecase.SymbolAnalyzer,
	aggregator *usecase.MarketAggregator,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *scheduler.AnalyticsScheduler {
	return scheduler.New(analyzer, aggregator, m, l, scheduler.Config{
		Symbols:          cfg.Analytics.Symbols,
		UpdateInterval:   cfg.Scheduler.UpdateInterval,
		RecoveryInterval: cfg.Scheduler.RecoveryInterval,
		Workers:          cfg.Scheduler.Workers,
	})
}

// ProvideStatusUseCase creates the status reader.
func ProvideStatusUseCase(store repository.AnalyticsStore, cfg *config.Config) *usecase.StatusUseCase {
	return usecase.NewStatusUseCase(store, len(cfg.Analytics.Symbols))
}

// ProvideHTTPHandler creates the analytics API handler.
func ProvideHTTPHandler(l *applogger.Logger, status *usecase.StatusUseCase, store repository.AnalyticsStore) xhttp.Handler {
	return api.NewAnalyticsEchoHandler(l, status, store)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	sched *scheduler.AnalyticsScheduler,
	status *usecase.StatusUseCase,
	handler xhttp.Handler,
	cache *pkgcache.RedisCache,
	chClient *pkgch.Client,
	pub repository.Publisher,
) *server.App {
	return server.New(cfg, l, sched, status, handler, cache, chClient, pub)
}
