package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/hoyoauth/internal/model"
)

// Step is one stage of a pipeline.
type Step interface {
	// Do runs the step. Failures that belong in the report are recorded
	// there and nil is returned; an error stops the pipeline unless it
	// continues on error.
	Do(ctx context.Context, report *model.LoginReport) error

	// Name returns the step name for logs and the report.
	Name() string
}

// Pipeline runs steps in order.
type Pipeline struct {
	steps           []Step
	logger          *slog.Logger
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps running later steps after one fails.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty pipeline.
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

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step on report. Cancellation is checked between steps
// and marks the report cancelled.
func (p *Pipeline) Execute(ctx context.Context, report *model.LoginReport) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			if report.Outcome == "" {
				report.Outcome = model.OutcomeCancelled
				report.Error = err.Error()
			}
			return err
		}

		p.logger.Debug("executing step", "step", step.Name(), "name", report.Name)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "name", report.Name, "error", err)
			if report.Error == "" {
				report.Error = err.Error()
			}
			if !p.continueOnError {
				return err
			}
		}
		report.AddStep(step.Name())
	}
	return nil
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
