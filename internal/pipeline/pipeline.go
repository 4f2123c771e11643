// Package pipeline runs an ordered list of operations one after another,
// stopping at the first failure.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"nenkin/internal/logging"
)

// Step is one keyed operation.
type Step struct {
	ID  string
	Run func(ctx context.Context) error
}

// Result reports where a run stopped.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Succeeded lists step ids that completed, in order.
	Succeeded []string

	// FailedID is the id of the step that failed, empty if none did or the
	// run was cancelled between steps.
	FailedID string

	// Err is the failing step's error, or the context error on cancellation.
	Err error

	// Remaining lists step ids that were never started.
	Remaining []string
}

// OK reports whether every step succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Run executes steps in order. Each step completes before the next starts.
// The first error aborts the run; completed steps are not undone.
// A context cancelled before a step starts stops the run with ctx.Err();
// that step and the rest are reported as never started.
func Run(ctx context.Context, steps []Step, logger *slog.Logger) Result {
	logger = logging.OrDiscard(logger)
	res := Result{RunID: uuid.NewString()}
	log := logger.With("run", res.RunID)

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			res.Err = err
			res.Remaining = ids(steps[i:])
			log.Debug("run cancelled", "before", step.ID, "index", i, "error", err)
			return res
		}
		if err := step.Run(ctx); err != nil {
			res.FailedID = step.ID
			res.Err = err
			res.Remaining = ids(steps[i+1:])
			log.Debug("step failed", "step", step.ID, "index", i, "error", err)
			return res
		}
		res.Succeeded = append(res.Succeeded, step.ID)
		log.Debug("step done", "step", step.ID, "index", i)
	}
	return res
}

func ids(steps []Step) []string {
	var out []string
	for _, s := range steps {
		out = append(out, s.ID)
	}
	return out
}
