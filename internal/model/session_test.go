package model

import (
	"errors"
	"testing"
)

func TestSessionResultCookies(t *testing.T) {
	t.Parallel()

	web := WebLoginResult{CookieTokenV2: "ct", LTUIDV2: "1", LTokenV2: "lt"}
	cookies := web.Cookies()
	if len(cookies) != 3 {
		t.Errorf("empty values should be dropped: %v", cookies)
	}
	if web.Kind() != LoginKindWeb {
		t.Errorf("unexpected kind %v", web.Kind())
	}
	if got := CookieHeader(web); got != "cookie_token_v2=ct; ltoken_v2=lt; ltuid_v2=1" {
		t.Errorf("unexpected cookie header %q", got)
	}

	app := AppLoginResult{SToken: "st", LTUIDV2: "1", LTMidV2: "m", AccountIDV2: "1", AccountMidV2: "m"}
	if app.Cookies()[SToken] != "st" || app.Kind() != LoginKindApp {
		t.Errorf("unexpected app cookies: %v", app.Cookies())
	}

	if _, ok := (MobileLoginResult{LTokenV2: "x"}).Cookies()[LTUIDV2]; ok {
		t.Error("mobile result has no ltuid_v2")
	}
}

func TestParseQRCodeStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Created", "Scanned", "Confirmed"} {
		if _, err := ParseQRCodeStatus(s); err != nil {
			t.Errorf("%s: unexpected error %v", s, err)
		}
	}
	if _, err := ParseQRCodeStatus("Expired"); !errors.Is(err, ErrUnknownQRCodeStatus) {
		t.Errorf("expected ErrUnknownQRCodeStatus, got %v", err)
	}
}
