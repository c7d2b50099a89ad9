package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/nao1215/hoyoauth/internal/apierr"
	"github.com/nao1215/hoyoauth/internal/auth"
	"github.com/nao1215/hoyoauth/internal/model"
	"github.com/nao1215/hoyoauth/internal/transport"
)

var webAccount = model.Account{
	Name:     "main",
	Region:   model.RegionOverseas,
	Kind:     model.LoginKindWeb,
	Account:  "someone@example.com",
	Password: "secret",
}

var sessionCookies = []*http.Cookie{
	{Name: model.CookieTokenV2, Value: "ct"},
	{Name: model.AccountMidV2, Value: "mid"},
	{Name: model.AccountIDV2, Value: "100"},
	{Name: model.LTokenV2, Value: "lt"},
	{Name: model.LTMidV2, Value: "mid"},
	{Name: model.LTUIDV2, Value: "100"},
}

func successResponse() *model.RawResponse {
	return &model.RawResponse{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Cookies:    sessionCookies,
		Body:       []byte(`{"retcode":0,"message":"OK","data":{}}`),
	}
}

func failureResponse() *model.RawResponse {
	return &model.RawResponse{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       []byte(`{"retcode":-3208,"message":"wrong","data":null}`),
	}
}

// newClient returns a client whose transport answers every request with respond.
func newClient(t *testing.T, respond func(req *model.SignedRequest) *model.RawResponse) *auth.Client {
	t.Helper()
	tr := transport.Func(func(_ context.Context, req *model.SignedRequest) (*model.RawResponse, error) {
		return respond(req), nil
	})
	c, err := auth.New(tr, nil, auth.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

// fakeRecorder keeps inserted reports.
type fakeRecorder struct {
	mu      sync.Mutex
	reports []*model.LoginReport
	err     error
}

func (r *fakeRecorder) InsertAttempt(_ context.Context, report *model.LoginReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return r.err
}

func TestApplyResult(t *testing.T) {
	t.Parallel()

	session := model.WebLoginResult{LTokenV2: "lt"}
	challenge := &apierr.ChallengeError{Challenge: model.NewCaptchaChallenge(model.SessionMMT{SessionID: "s"})}

	tests := []struct {
		name          string
		session       model.SessionResult
		err           error
		wantOutcome   model.Outcome
		wantRetcode   int
		wantKind      string
		wantChallenge string
	}{
		{name: "success", session: session, wantOutcome: model.OutcomeSuccess},
		{
			name:        "wrong password",
			err:         fmt.Errorf("login: %w", apierr.FromCode(-3208, "wrong")),
			wantOutcome: model.OutcomeFailure,
			wantRetcode: -3208,
			wantKind:    apierr.KindAccount.String(),
		},
		{
			name:          "unresolved challenge",
			err:           challenge,
			wantOutcome:   model.OutcomeChallenge,
			wantKind:      apierr.KindChallenge.String(),
			wantChallenge: model.ChallengeCaptcha.String(),
		},
		{
			name:        "transport",
			err:         apierr.NewTransportError(errors.New("reset")),
			wantOutcome: model.OutcomeFailure,
			wantKind:    apierr.KindTransport.String(),
		},
		{name: "cancelled", err: context.Canceled, wantOutcome: model.OutcomeCancelled, wantKind: apierr.KindUnknown.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := model.NewLoginReport(model.Account{Name: "main"})
			ApplyResult(report, tt.session, tt.err)

			if report.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %s, expected %s", report.Outcome, tt.wantOutcome)
			}
			if report.Retcode != tt.wantRetcode {
				t.Errorf("retcode = %d, expected %d", report.Retcode, tt.wantRetcode)
			}
			if report.ErrorKind != tt.wantKind {
				t.Errorf("error kind = %q, expected %q", report.ErrorKind, tt.wantKind)
			}
			if report.ChallengeKind != tt.wantChallenge {
				t.Errorf("challenge kind = %q, expected %q", report.ChallengeKind, tt.wantChallenge)
			}
			if (tt.err == nil) != report.Succeeded() {
				t.Errorf("Succeeded() = %v", report.Succeeded())
			}
		})
	}
}

func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	t.Run("records a success", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(*model.SignedRequest) *model.RawResponse { return successResponse() })
		recorder := &fakeRecorder{}
		p := DefaultPipeline(client, webAccount, recorder, WithLogger(quietLogger()))

		report := model.NewLoginReport(model.Account{Name: "main"})
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !report.Succeeded() || report.Sends != 1 {
			t.Errorf("unexpected report: %+v", report)
		}
		if len(recorder.reports) != 1 {
			t.Fatalf("expected 1 recorded attempt, got %d", len(recorder.reports))
		}
	})

	t.Run("records a failure", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(*model.SignedRequest) *model.RawResponse { return failureResponse() })
		recorder := &fakeRecorder{}
		p := DefaultPipeline(client, webAccount, recorder, WithLogger(quietLogger()))

		report := model.NewLoginReport(model.Account{Name: "main"})
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Outcome != model.OutcomeFailure {
			t.Errorf("expected failure, got %s", report.Outcome)
		}
		if len(recorder.reports) != 1 || recorder.reports[0].Retcode != -3208 {
			t.Errorf("expected the failure to be recorded, got %+v", recorder.reports)
		}
	})

	t.Run("without recorder", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(*model.SignedRequest) *model.RawResponse { return successResponse() })
		p := DefaultPipeline(client, webAccount, nil)
		if names := p.StepNames(); len(names) != 1 || names[0] != "login" {
			t.Errorf("unexpected steps: %v", names)
		}
	})
}
