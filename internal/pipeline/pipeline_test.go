package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nao1215/hoyoauth/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stepFunc is a Step backed by a function.
type stepFunc struct {
	name string
	do   func(ctx context.Context, report *model.LoginReport) error
}

func (s stepFunc) Name() string { return s.name }

func (s stepFunc) Do(ctx context.Context, report *model.LoginReport) error {
	return s.do(ctx, report)
}

func okStep(name string) Step {
	return stepFunc{name: name, do: func(context.Context, *model.LoginReport) error { return nil }}
}

func failingStep(name string, err error) Step {
	return stepFunc{name: name, do: func(context.Context, *model.LoginReport) error { return err }}
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	errStep := errors.New("step failed")

	tests := []struct {
		name            string
		steps           []Step
		continueOnError bool
		wantErr         error
		wantSteps       []string
	}{
		{
			name:      "runs steps in order",
			steps:     []Step{okStep("a"), okStep("b")},
			wantSteps: []string{"a", "b"},
		},
		{
			name:      "stops on error",
			steps:     []Step{failingStep("a", errStep), okStep("b")},
			wantErr:   errStep,
			wantSteps: []string{},
		},
		{
			name:            "continues on error",
			steps:           []Step{failingStep("a", errStep), okStep("b")},
			continueOnError: true,
			wantSteps:       []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New(WithLogger(quietLogger()), WithContinueOnError(tt.continueOnError))
			p.AddSteps(tt.steps...)

			report := model.NewLoginReport(model.Account{Name: "main"})
			err := p.Execute(context.Background(), report)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(report.PerformedSteps) != len(tt.wantSteps) {
				t.Fatalf("expected steps %v, got %v", tt.wantSteps, report.PerformedSteps)
			}
			for i := range tt.wantSteps {
				if report.PerformedSteps[i] != tt.wantSteps[i] {
					t.Errorf("step %d = %s, expected %s", i, report.PerformedSteps[i], tt.wantSteps[i])
				}
			}
			if tt.wantErr != nil || tt.continueOnError {
				if report.Error != errStep.Error() {
					t.Errorf("expected error recorded, got %q", report.Error)
				}
			}
		})
	}
}

func TestPipelineCancelled(t *testing.T) {
	t.Parallel()

	p := New(WithLogger(quietLogger()))
	p.AddStep(okStep("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := model.NewLoginReport(model.Account{Name: "main"})
	if err := p.Execute(ctx, report); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if report.Outcome != model.OutcomeCancelled {
		t.Errorf("expected cancelled outcome, got %q", report.Outcome)
	}
	if len(report.PerformedSteps) != 0 {
		t.Errorf("expected no steps, got %v", report.PerformedSteps)
	}
}

func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(okStep("login"))
	p.AddStep(okStep("record"))

	if n := len(p.StepNames()); n != 2 {
		t.Errorf("expected 2 steps, got %d", n)
	}
	names := p.StepNames()
	if names[0] != "login" || names[1] != "record" {
		t.Errorf("unexpected names: %v", names)
	}
}
