package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/adapters/cartola"
	"github.com/cartolab/cartolab/internal/adapters/http/api"
	"github.com/cartolab/cartolab/internal/adapters/http/swagger"
	app "github.com/cartolab/cartolab/internal/app"
	"github.com/cartolab/cartolab/internal/config"
	"github.com/cartolab/cartolab/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection; the custom registry carries the
	// metrics the dashboard actually uses.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store := artifact.New(artifact.Paths{
		Consolidated: cfg.ConsolidatedFile(),
		Aggregated:   cfg.AggregatedFile(),
		Stats:        cfg.StatsFile(),
		Outliers:     cfg.OutliersFile(),
		FigureDir:    cfg.VisualizationPath,
	})
	market := cartola.NewClient(
		cartola.WithBaseURL(cfg.CartolaBaseURL),
		cartola.WithTimeout(time.Duration(cfg.CartolaTimeoutSec)*time.Second),
	)

	svc := app.New(
		app.WithLogger(log),
		app.WithStore(store),
		app.WithMarketClient(market),
		app.WithMarketCacheTTL(time.Duration(cfg.MarketCacheTTLSec)*time.Second),
		app.WithMaxListLimit(cfg.MaxListLimit),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// API reference under /api-docs.
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc, cfg.MaxListLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
