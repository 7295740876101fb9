package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	domrepo "BetaPulse/internal/domain/repository"
	"BetaPulse/internal/scheduler"
	"BetaPulse/internal/usecase"
	pkgcache "BetaPulse/pkg/cache"
	pkgch "BetaPulse/pkg/clickhouse"
	"BetaPulse/pkg/config"
	xhttp "BetaPulse/pkg/http"
	applogger "BetaPulse/pkg/logger"
)

// App encapsulates the application lifecycle: the analytics scheduler,
// the HTTP API server, and the infrastructure clients they share.
type App struct {
	cfg       *config.Config
	l         *applogger.Logger
	sched     *scheduler.AnalyticsScheduler
	status    *usecase.StatusUseCase
	handler   xhttp.Handler
	cache     *pkgcache.RedisCache
	chClient  *pkgch.Client
	publisher domrepo.Publisher

	httpServer *xhttp.Server
}

// New creates the application. chClient may be nil when the price store
// runs on Redis.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	sched *scheduler.AnalyticsScheduler,
	status *usecase.StatusUseCase,
	handler xhttp.Handler,
	cache *pkgcache.RedisCache,
	chClient *pkgch.Client,
	publisher domrepo.Publisher,
) *App {
	return &App{
		cfg:       cfg,
		l:         l,
		sched:     sched,
		status:    status,
		handler:   handler,
		cache:     cache,
		chClient:  chClient,
		publisher: publisher,
	}
}

// Run starts the scheduler and the HTTP server and blocks until
// interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	go a.sched.Run(ctx)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("betapulse started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Strings("symbols", a.cfg.Analytics.Symbols),
		applogger.String("benchmark", a.cfg.Analytics.Benchmark))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// RunOnce executes a single analytics tick and exits.
func (a *App) RunOnce(ctx context.Context) error {
	defer a.closeClients()
	return a.sched.RunOnce(ctx)
}

// PrintStatus writes the current scheduler status to stdout as JSON.
func (a *App) PrintStatus(ctx context.Context) error {
	defer a.closeClients()

	st, err := a.status.Status(ctx)
	if err != nil {
		return fmt.Errorf("read status: %w", err)
	}

	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	fmt.Println(string(b))
	return nil
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.l.Error("http shutdown error", applogger.Error(err))
		}
	}

	a.closeClients()
	a.l.Info("shutdown complete")
	return nil
}

func (a *App) closeClients() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.l.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.l.Warn("redis close error", applogger.Error(err))
		}
	}
}
