// Package server runs the feed server: the record store, the gRPC feed
// service and the Prometheus metrics listener, until a shutdown signal.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/config"
	"github.com/dmitrijs2005/baconnect/internal/live"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/metrics"
	"github.com/dmitrijs2005/baconnect/internal/query"
	"github.com/dmitrijs2005/baconnect/internal/search"
	"github.com/dmitrijs2005/baconnect/internal/seed"
	"github.com/dmitrijs2005/baconnect/internal/services"
	"github.com/dmitrijs2005/baconnect/internal/store"

	gs "github.com/dmitrijs2005/baconnect/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *store.Store
	metrics *metrics.Metrics
	grpc    *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	st, err := store.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := metrics.New()
	q := query.New(st, live.NewNotifier(), logger, query.WithMatchMode(c.Mode()), query.WithMetrics(m))

	var seeds *seed.Set
	if c.SeedsEnabled {
		seeds = seed.Default(time.Now())
	}

	svc := gs.Services{
		Auth:     services.NewAuthService(q, logger),
		Comments: services.NewCommentService(q, logger),
		Engine:   search.NewEngine(q, seeds, logger, m),
		Queries:  q,
	}
	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc, c.SecretKey, c.AccessTokenValidityDuration, m)

	return &App{config: c, logger: logger, store: st, metrics: m, grpc: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	srv := &http.Server{Addr: app.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "metrics server failed", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx ends, a shutdown signal arrives or a listener
// fails, then closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()
	app.logger.Info(ctx, "App stopped")
	return app.store.Close()
}
