package pipeline

import (
	"context"
	"fmt"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/domain/aggregate"
	"github.com/cartolab/cartolab/pkg/logger"
	"github.com/cartolab/cartolab/pkg/metrics"
)

// AggregateStage condenses the consolidated table into one row per player
// with career totals, averages and the cost-benefit ratio.
type AggregateStage struct {
	store *artifact.Store
	log   logger.Logger
}

// NewAggregateStage creates the aggregation stage.
func NewAggregateStage(store *artifact.Store) *AggregateStage {
	return &AggregateStage{store: store, log: logger.Named("aggregate")}
}

// Name implements Stage.
func (s *AggregateStage) Name() string { return "aggregate" }

// Run implements Stage.
func (s *AggregateStage) Run(ctx context.Context) (Result, error) {
	rows, err := s.store.ReadConsolidated(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, ErrEmptyTable
	}

	aggs := aggregate.Aggregate(rows)
	if err := s.store.WriteAggregates(ctx, aggs); err != nil {
		return Result{}, fmt.Errorf("write aggregates: %w", err)
	}
	metrics.SetPlayersAggregated(len(aggs))
	s.log.Info(ctx, "player aggregates written",
		logger.Int("players", len(aggs)),
		logger.Int("source_rows", len(rows)))

	return Result{Rows: len(aggs)}, nil
}
