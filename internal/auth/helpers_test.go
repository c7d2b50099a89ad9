package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/hoyoauth/internal/ds"
	"github.com/nao1215/hoyoauth/internal/model"
)

var errUnexpectedRequest = errors.New("unexpected request")

type reply func(req *model.SignedRequest) (*model.RawResponse, error)

// scripted answers requests in order and records them.
type scripted struct {
	mu       sync.Mutex
	replies  []reply
	requests []*model.SignedRequest
}

func newScripted(replies ...reply) *scripted {
	return &scripted{replies: replies}
}

func (s *scripted) Send(_ context.Context, req *model.SignedRequest) (*model.RawResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	i := len(s.requests) - 1
	if i >= len(s.replies) {
		return nil, errUnexpectedRequest
	}
	return s.replies[i](req)
}

func (s *scripted) sent() []*model.SignedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.SignedRequest(nil), s.requests...)
}

func respond(body string, header map[string]string, cookies map[string]string) reply {
	return func(*model.SignedRequest) (*model.RawResponse, error) {
		h := http.Header{}
		for k, v := range header {
			h.Set(k, v)
		}
		var cs []*http.Cookie
		for name, value := range cookies {
			cs = append(cs, &http.Cookie{Name: name, Value: value})
		}
		return &model.RawResponse{StatusCode: http.StatusOK, Header: h, Cookies: cs, Body: []byte(body)}, nil
	}
}

func fail(err error) reply {
	return func(*model.SignedRequest) (*model.RawResponse, error) {
		return nil, err
	}
}

var webCookies = map[string]string{
	model.CookieTokenV2: "ct",
	model.AccountMidV2:  "mid",
	model.AccountIDV2:   "100",
	model.LTokenV2:      "lt",
	model.LTMidV2:       "mid",
	model.LTUIDV2:       "100",
}

const (
	okBody      = `{"retcode":0,"message":"OK","data":{"ok":true}}`
	captchaBody = `{"retcode":-3101,"message":"captcha","data":null}`
	mmtHeader   = `{"gt":"x","challenge":"y","session_id":"s","new_captcha":1,"success":1}`
)

func captchaReply() reply {
	return respond(captchaBody, map[string]string{model.HeaderAigis: mmtHeader}, nil)
}

var testTime = time.Unix(1700000000, 0)

func testSigner() *ds.Signer {
	return ds.New(ds.WithClock(func() time.Time { return testTime }), ds.WithRand(func(int) int { return 0 }))
}

func newTestClient(t *testing.T, tr *scripted, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithSigner(testSigner()),
		WithQRPollInterval(time.Millisecond),
	}
	c, err := New(tr, nil, append(base, opts...)...)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

// solveWith returns a solver producing a v3 proof for the challenge it gets.
func solveWith(calls *int) Solver {
	return SolverFunc(func(_ context.Context, ch *model.Challenge) (*model.ChallengeProof, error) {
		*calls++
		return model.NewCaptchaProof(model.SessionMMTResult{
			GeetestChallenge: ch.MMT.Challenge,
			GeetestValidate:  "v",
			GeetestSeccode:   "c",
			SessionID:        ch.MMT.SessionID,
		})
	})
}

// codeSolver solves no captcha but supplies one-time codes and shows QR codes.
type codeSolver struct {
	code      string
	purposes  []OTPPurpose
	presented []model.QRCode
}

func (s *codeSolver) SolveCaptcha(context.Context, *model.Challenge) (*model.ChallengeProof, error) {
	return nil, ErrSolverNotImplemented
}

func (s *codeSolver) OTP(_ context.Context, purpose OTPPurpose) (string, error) {
	s.purposes = append(s.purposes, purpose)
	return s.code, nil
}

func (s *codeSolver) PresentQRCode(_ context.Context, qr model.QRCode) error {
	s.presented = append(s.presented, qr)
	return nil
}
