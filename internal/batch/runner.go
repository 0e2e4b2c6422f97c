package batch

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/evaluator"
	"github.com/okhramov/impact-matcher/internal/report"
	"github.com/okhramov/impact-matcher/internal/results"
)

// Evaluator scores a single resume. Satisfied by *evaluator.Evaluator.
type Evaluator interface {
	Run(ctx context.Context, in evaluator.Input) (*report.EvaluationResult, error)
}

// Options apply to every resume in a sweep.
type Options struct {
	JobDescriptionPath string
	RoleType           string
	// Delay is the pause between consecutive evaluations, easing provider
	// rate limits during large sweeps.
	Delay time.Duration
}

// Summary counts the outcome of a sweep.
type Summary struct {
	Evaluated int
	Succeeded int
	Failed    int
}

// Runner evaluates a list of resumes sequentially, saving each result to the
// store. One failed resume does not stop the sweep.
type Runner struct {
	evaluator Evaluator
	store     *results.Store
	logger    *zap.Logger
}

func NewRunner(eval Evaluator, store *results.Store, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{evaluator: eval, store: store, logger: logger}
}

// Sweep evaluates the files in order. It stops early only when the context
// is canceled, returning the partial summary alongside the context error.
func (r *Runner) Sweep(ctx context.Context, files []string, opts Options) (*Summary, error) {
	summary := &Summary{}

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if i > 0 {
			if err := waitBetween(ctx, opts.Delay); err != nil {
				return summary, err
			}
		}

		summary.Evaluated++
		result, err := r.evaluator.Run(ctx, evaluator.Input{
			ResumePath:         file,
			JobDescriptionPath: opts.JobDescriptionPath,
			RoleType:           opts.RoleType,
		})
		if err != nil {
			summary.Failed++
			r.logger.Error("evaluation failed",
				zap.String("resume", filepath.Base(file)),
				zap.Error(err),
			)
			continue
		}

		path, err := r.store.Save(file, result)
		if err != nil {
			summary.Failed++
			r.logger.Error("saving result failed",
				zap.String("resume", filepath.Base(file)),
				zap.Error(err),
			)
			continue
		}

		summary.Succeeded++
		r.logger.Info("result saved", zap.String("path", path))
	}

	r.logger.Info("sweep complete",
		zap.Int("evaluated", summary.Evaluated),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// waitBetween pauses between evaluations, returning early when the context
// is canceled.
func waitBetween(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
