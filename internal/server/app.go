// Package server wires the library sync components together and runs the
// gRPC endpoint and the metrics endpoint until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/libsync/internal/logging"
	"github.com/dmitrijs2005/libsync/internal/server/config"
	"github.com/dmitrijs2005/libsync/internal/server/metrics"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/memory"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libsync/internal/server/services"
	"github.com/dmitrijs2005/libsync/internal/server/versions"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/libsync/internal/server/grpc"
)

var openPostgres = func(ctx context.Context, dsn string) (repomanager.Store, error) {
	return repomanager.OpenPostgres(ctx, dsn)
}

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   repomanager.Store
	metrics *metrics.Metrics
	grpc    *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	var store repomanager.Store
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, using in-memory store")
		store = memory.NewStore()
	} else {
		pg, err := openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		store = pg
	}

	m := metrics.New()
	clock := versions.NewClock(c.LockTimeout)
	coordinator := services.NewCoordinator(store, clock, m, logger)
	libs := services.NewLibraryService(store, coordinator, logger)
	view := services.NewView(store)

	return &App{
		config:  c,
		logger:  logger,
		store:   store,
		metrics: m,
		grpc:    gs.NewGRPCServer(c.EndpointAddrGRPC, logger, libs, view),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) runMetricsServer(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	srv := &http.Server{Addr: app.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Warn(ctx, "metrics server shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is done, a signal arrives or a server fails. The
// store is closed on the way out.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.grpc.Run(gctx)
	})

	if app.config.MetricsAddr != "" {
		g.Go(func() error {
			return app.runMetricsServer(gctx)
		})
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}

	if cerr := app.store.Close(); cerr != nil {
		app.logger.Warn(ctx, "store close", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
