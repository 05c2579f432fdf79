package pipeline

import (
	"context"
	"fmt"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/adapters/rawcsv"
	"github.com/cartolab/cartolab/internal/config"
	"github.com/cartolab/cartolab/internal/domain/clean"
	"github.com/cartolab/cartolab/internal/domain/roster"
	"github.com/cartolab/cartolab/pkg/logger"
	"github.com/cartolab/cartolab/pkg/metrics"
)

// ConsolidateStage ingests the retained seasons' raw round files, cleans them
// and writes the consolidated parquet artifact. A single unreadable file is
// skipped with a warning; finding no usable data at all is a stage failure.
type ConsolidateStage struct {
	cfg   *config.Config
	store *artifact.Store
	log   logger.Logger
}

// NewConsolidateStage creates the consolidation stage.
func NewConsolidateStage(cfg *config.Config, store *artifact.Store) *ConsolidateStage {
	return &ConsolidateStage{cfg: cfg, store: store, log: logger.Named("consolidate")}
}

// Name implements Stage.
func (s *ConsolidateStage) Name() string { return "consolidate" }

// Run implements Stage.
func (s *ConsolidateStage) Run(ctx context.Context) (Result, error) {
	seasons, err := rawcsv.DiscoverSeasons(s.cfg.RawDataPath, s.cfg.MaxSeasons, s.cfg.RoundFilePattern)
	if err != nil {
		return Result{}, err
	}

	years := make([]int, len(seasons))
	for i, season := range seasons {
		years[i] = season.Year
	}
	s.log.Info(ctx, "processing seasons", logger.Any("years", years))

	var (
		records []roster.RawRecord
		res     Result
	)
	for _, result := range rawcsv.ReadSeasons(ctx, seasons, 0) {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("ingestion cancelled: %w", err)
		}
		if result.Err != nil {
			// A single bad file must not abort the whole ingestion.
			s.log.Warn(ctx, "skipping unreadable raw file",
				logger.String("file", result.File), logger.Error(result.Err))
			metrics.RecordFileSkipped()
			res.FilesSkipped++
			continue
		}
		s.log.Debug(ctx, "ingested raw file",
			logger.String("file", result.File), logger.Int("records", len(result.Records)))
		metrics.RecordFileRead()
		res.FilesRead++
		records = append(records, result.Records...)
	}

	if len(records) == 0 {
		return Result{}, fmt.Errorf("%w under %s", ErrNoRawData, s.cfg.RawDataPath)
	}

	rows := clean.Transform(records)
	if err := s.store.WriteConsolidated(ctx, rows); err != nil {
		return Result{}, fmt.Errorf("write consolidated table: %w", err)
	}

	res.Rows = len(rows)
	metrics.SetRowsConsolidated(len(rows))
	return res, nil
}
