package pipeline

import (
	"context"
	"fmt"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/domain/roster"
	"github.com/cartolab/cartolab/internal/domain/stats"
	"github.com/cartolab/cartolab/pkg/logger"
	"github.com/cartolab/cartolab/pkg/metrics"
)

// statIndex is the fixed row order of the descriptive statistics table.
var statIndex = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// DescribeStage computes descriptive statistics for every numeric column and
// flags score outliers per line position, persisting both artifacts.
type DescribeStage struct {
	store *artifact.Store
	log   logger.Logger
}

// NewDescribeStage creates the descriptive analysis stage.
func NewDescribeStage(store *artifact.Store) *DescribeStage {
	return &DescribeStage{store: store, log: logger.Named("describe")}
}

// Name implements Stage.
func (s *DescribeStage) Name() string { return "describe" }

// Run implements Stage.
func (s *DescribeStage) Run(ctx context.Context) (Result, error) {
	rows, err := s.store.ReadConsolidated(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, ErrEmptyTable
	}

	doc := describeTable(rows)
	if err := s.store.WriteStats(ctx, doc); err != nil {
		return Result{}, fmt.Errorf("write descriptive stats: %w", err)
	}
	s.log.Info(ctx, "descriptive statistics written",
		logger.Int("columns", len(roster.NumericColumns())))

	outliers := stats.DetectOutliers(rows)
	if err := s.store.WriteOutliers(ctx, outliers); err != nil {
		return Result{}, fmt.Errorf("write outliers: %w", err)
	}
	metrics.SetOutliersDetected(len(outliers))
	s.log.Info(ctx, "score outliers identified", logger.Int("outliers", len(outliers)))

	return Result{Rows: len(rows)}, nil
}

// describeTable builds the table-oriented stats document: one row per summary
// statistic, one column per numeric column of the consolidated table.
func describeTable(rows []roster.Row) artifact.TableDocument {
	cols := roster.NumericColumns()

	summaries := make(map[string]stats.Summary, len(cols))
	values := make([]float64, len(rows))
	for _, col := range cols {
		for i := range rows {
			values[i] = rows[i].NumericValue(col)
		}
		summaries[col] = stats.Describe(values)
	}

	fields := make([]artifact.TableField, 0, len(cols)+1)
	fields = append(fields, artifact.TableField{Name: "index", Type: "string"})
	for _, col := range cols {
		fields = append(fields, artifact.TableField{Name: col, Type: "number"})
	}

	data := make([]map[string]any, 0, len(statIndex))
	for _, stat := range statIndex {
		row := make(map[string]any, len(cols)+1)
		row["index"] = stat
		for _, col := range cols {
			row[col] = statValue(summaries[col], stat)
		}
		data = append(data, row)
	}

	return artifact.TableDocument{
		Schema: artifact.TableSchema{Fields: fields, PrimaryKey: []string{"index"}},
		Data:   data,
	}
}

func statValue(s stats.Summary, stat string) float64 {
	switch stat {
	case "count":
		return float64(s.Count)
	case "mean":
		return s.Mean
	case "std":
		return s.Std
	case "min":
		return s.Min
	case "25%":
		return s.Q1
	case "50%":
		return s.Median
	case "75%":
		return s.Q3
	case "max":
		return s.Max
	}
	return 0
}
