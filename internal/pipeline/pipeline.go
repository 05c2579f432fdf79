// Package pipeline implements the batch stages that turn raw round snapshots
// into the consolidated, verified and aggregated artifacts, plus the runner
// that sequences them.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cartolab/cartolab/pkg/logger"
	"github.com/cartolab/cartolab/pkg/metrics"
)

// Result summarizes a successful stage run for logging and metrics.
type Result struct {
	FilesRead    int
	FilesSkipped int
	Rows         int
}

// Stage is one pipeline step. Run either fully writes the stage's artifact
// and returns a Result, or writes nothing and returns the failure reason.
type Stage interface {
	Name() string
	Run(ctx context.Context) (Result, error)
}

// Runner executes stages strictly in order, stopping at the first failure.
type Runner struct {
	log logger.Logger
}

// RunnerOption applies a configuration option to the Runner.
type RunnerOption func(*Runner)

// WithLogger sets a custom logger for the runner.
func WithLogger(log logger.Logger) RunnerOption {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get().Named("pipeline")
	}
	return r
}

// Run executes the stages in order. On the first failure it records which
// stage failed and returns; no later stage runs. On success it reports the
// total wall-clock duration.
func (r *Runner) Run(ctx context.Context, stages ...Stage) error {
	runID := uuid.NewString()
	start := time.Now()
	r.log.Info(ctx, "starting pipeline run",
		logger.String("run_id", runID),
		logger.Int("stages", len(stages)))

	for i, stage := range stages {
		stageStart := time.Now()
		r.log.Info(ctx, "starting stage",
			logger.String("run_id", runID),
			logger.String("stage", stage.Name()),
			logger.String("progress", fmt.Sprintf("%d/%d", i+1, len(stages))))

		res, err := stage.Run(ctx)
		elapsed := time.Since(stageStart)
		metrics.RecordStageDuration(stage.Name(), elapsed.Seconds())

		if err != nil {
			metrics.RecordStageFailure(stage.Name())
			r.log.Error(ctx, "stage failed; aborting pipeline",
				logger.String("run_id", runID),
				logger.String("stage", stage.Name()),
				logger.Error(err))
			return fmt.Errorf("stage %s: %w", stage.Name(), err)
		}

		r.log.Info(ctx, "stage completed",
			logger.String("run_id", runID),
			logger.String("stage", stage.Name()),
			logger.Int("rows", res.Rows),
			logger.Int("files_read", res.FilesRead),
			logger.Int("files_skipped", res.FilesSkipped),
			logger.Duration("elapsed", elapsed))
	}

	r.log.Info(ctx, "pipeline completed",
		logger.String("run_id", runID),
		logger.Duration("total_elapsed", time.Since(start)))
	return nil
}
