package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/config"
	"github.com/cartolab/cartolab/internal/pipeline"
	"github.com/cartolab/cartolab/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
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

	runner := pipeline.NewRunner(pipeline.WithLogger(log.Named("pipeline")))
	err = runner.Run(ctx,
		pipeline.NewConsolidateStage(cfg, store),
		pipeline.NewVerifyStage(store),
		pipeline.NewDescribeStage(store),
		pipeline.NewChartsStage(store, cfg.ScatterSampleSize),
		pipeline.NewAggregateStage(store),
	)
	if err != nil {
		log.Error(ctx, "pipeline run failed", logger.Error(err))
		os.Exit(1)
	}
}
