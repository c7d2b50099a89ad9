package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nao1215/hoyoauth/internal/apierr"
	"github.com/nao1215/hoyoauth/internal/auth"
	"github.com/nao1215/hoyoauth/internal/model"
)

// Authenticator logs an account in. *auth.Client implements it.
type Authenticator interface {
	Login(ctx context.Context, a model.Account, opts ...auth.CallOption) (model.SessionResult, error)
}

// Recorder stores attempt outcomes. *database.AuditDB implements it.
type Recorder interface {
	InsertAttempt(ctx context.Context, report *model.LoginReport) error
}

// LoginStep runs the login flow of one account and records its outcome.
type LoginStep struct {
	client  Authenticator
	account model.Account
	logger  *slog.Logger
}

// NewLoginStep creates a login step for account.
func NewLoginStep(client Authenticator, account model.Account, logger *slog.Logger) *LoginStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginStep{client: client, account: account, logger: logger}
}

// Name implements Step.
func (s *LoginStep) Name() string {
	return "login"
}

// Do implements Step. Only cancellation is returned as an error.
func (s *LoginStep) Do(ctx context.Context, report *model.LoginReport) error {
	start := time.Now()
	sends := 0
	session, err := s.client.Login(ctx, s.account, auth.WithTrace(func(ev auth.TraceEvent) {
		if ev.State == auth.TraceSent {
			sends++
		}
	}))
	report.Duration = time.Since(start)
	report.Sends = sends

	ApplyResult(report, session, err)
	switch report.Outcome {
	case model.OutcomeSuccess:
		s.logger.Info("login succeeded", "name", report.Name, "kind", report.Kind.String())
		return nil
	case model.OutcomeCancelled:
		return err
	default:
		s.logger.Warn("login failed",
			"name", report.Name,
			"outcome", string(report.Outcome),
			"retcode", report.Retcode,
			"error", err,
		)
		return nil
	}
}

// ApplyResult fills the outcome fields of report from a login result.
func ApplyResult(report *model.LoginReport, session model.SessionResult, err error) {
	if err == nil {
		report.Outcome = model.OutcomeSuccess
		report.Session = session
		return
	}

	report.Error = err.Error()
	report.ErrorKind = apierr.KindOf(err).String()
	if code, ok := apierr.Retcode(err); ok {
		report.Retcode = code
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		report.Outcome = model.OutcomeCancelled
	default:
		if ch, ok := apierr.ChallengeOf(err); ok {
			report.Outcome = model.OutcomeChallenge
			report.ChallengeKind = ch.Kind.String()
			return
		}
		report.Outcome = model.OutcomeFailure
	}
}

// RecordStep writes the attempt to the audit log.
type RecordStep struct {
	recorder Recorder
}

// NewRecordStep creates a record step.
func NewRecordStep(recorder Recorder) *RecordStep {
	return &RecordStep{recorder: recorder}
}

// Name implements Step.
func (s *RecordStep) Name() string {
	return "record"
}

// Do implements Step. The write is not cancelled with ctx so that an
// interrupted batch still records what happened.
func (s *RecordStep) Do(ctx context.Context, report *model.LoginReport) error {
	return s.recorder.InsertAttempt(context.WithoutCancel(ctx), report)
}

// DefaultPipeline logs account in and, with a recorder, records the attempt.
func DefaultPipeline(client Authenticator, account model.Account, recorder Recorder, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddStep(NewLoginStep(client, account, p.logger))
	if recorder != nil {
		p.AddStep(NewRecordStep(recorder))
	}
	return p
}
