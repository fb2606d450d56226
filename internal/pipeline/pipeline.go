package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/pagescan/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Do executes the step. Errors stop the pipeline, so steps return them
	// only for failures that leave nothing useful to deliver.
	Do(ctx context.Context, scan *model.ScanReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence, checking for cancellation before
// each one. The first failure is recorded in scan and returned.
func (p *Pipeline) Execute(ctx context.Context, scan *model.ScanReport) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			scan.Error = err
			scan.ErrorMessage = err.Error()
			return err
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"url", scan.URL,
		)

		if err := step.Do(ctx, scan); err != nil {
			p.logger.Warn("step failed",
				"step", step.Name(),
				"url", scan.URL,
				"error", err,
			)
			scan.Error = err
			scan.ErrorMessage = err.Error()
			return err
		}

		scan.PerformedSteps = append(scan.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
