package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/reactorwatch/psrscan/internal/model"
)

// Step processes one aspect of a day's report.
// Implementations fill in the DayResult fields they are responsible for.
type Step interface {
	// Name returns a short identifier for logging.
	Name() string

	// Do runs the step for the given day, mutating the result in place.
	Do(ctx context.Context, day *model.DayResult) error
}

// Pipeline runs an ordered list of steps for a single day.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used for step-level debug output.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a Pipeline from the given steps, executed in order.
func NewPipeline(steps []Step, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		steps:  steps,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Execute runs every step for the day, stopping at the first error.
// The returned error is annotated with the failing step's name.
func (p *Pipeline) Execute(ctx context.Context, day *model.DayResult) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.logger.Debug("running step",
			slog.String("step", step.Name()),
			slog.Time("date", day.Date))

		if err := step.Do(ctx, day); err != nil {
			return fmt.Errorf("step %s: %w", step.Name(), err)
		}
	}
	return nil
}
