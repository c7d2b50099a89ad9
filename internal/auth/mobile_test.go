package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/hoyoauth/internal/model"
	"github.com/tidwall/gjson"
)

func TestLoginWithMobile(t *testing.T) {
	t.Parallel()

	cookies := map[string]string{
		model.CookieTokenV2: "ct",
		model.AccountMidV2:  "mid",
		model.AccountIDV2:   "100",
		model.LTokenV2:      "lt",
		model.LTMidV2:       "mid",
	}
	tr := newScripted(respond(emptyOKBody, nil, nil), respond(okBody, nil, cookies))
	solver := &codeSolver{code: "654321"}
	c := newTestClient(t, tr, WithSolver(solver))

	res, err := c.LoginWithMobile(context.Background(), "13800000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LTokenV2 != "lt" || res.CookieTokenV2 != "ct" {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(solver.purposes) != 1 || solver.purposes[0] != OTPSMS {
		t.Errorf("unexpected OTP requests: %v", solver.purposes)
	}

	sent := tr.sent()
	if len(sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(sent))
	}
	if sent[0].HeaderValue(model.HeaderDS) != "" {
		t.Error("OTP request must not be signed")
	}
	if got, want := sent[1].HeaderValue(model.HeaderDS), testSigner().Sign("LyD1rXqMv2GJhnwdvCBjFOKGiKuLY3aO"); got != want {
		t.Errorf("ds = %q, expected %q", got, want)
	}
	body := gjson.ParseBytes(sent[1].Body())
	if body.Get("captcha").String() != "654321" {
		t.Errorf("unexpected login body: %s", sent[1].Body())
	}
	if body.Get("mobile").String() == "13800000000" || body.Get("area_code").String() == mainlandAreaCode {
		t.Error("mobile and area code must be encrypted")
	}
}

func TestLoginWithMobileNeedsOTPProvider(t *testing.T) {
	t.Parallel()

	tr := newScripted()
	c := newTestClient(t, tr)

	if _, err := c.LoginWithMobile(context.Background(), "13800000000"); !errors.Is(err, ErrNoOTPProvider) {
		t.Fatalf("expected ErrNoOTPProvider, got %v", err)
	}
	if len(tr.sent()) != 0 {
		t.Errorf("expected no send, got %d", len(tr.sent()))
	}
}
