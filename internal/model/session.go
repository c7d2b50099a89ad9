package model

import (
	"sort"
	"strings"
)

// Cookie and token names issued by the login endpoints.
const (
	CookieTokenV2 = "cookie_token_v2"
	AccountMidV2  = "account_mid_v2"
	AccountIDV2   = "account_id_v2"
	LTokenV2      = "ltoken_v2"
	LTMidV2       = "ltmid_v2"
	LTUIDV2       = "ltuid_v2"
	SToken        = "stoken"
)

// SessionResult is the set of tokens a successful login yields.
type SessionResult interface {
	// Kind reports which login flow produced the session.
	Kind() LoginKind
	// Cookies returns the non-empty tokens keyed by cookie name.
	Cookies() map[string]string
}

// WebLoginResult is returned by the overseas web login.
type WebLoginResult struct {
	CookieTokenV2 string `json:"cookie_token_v2"`
	AccountMidV2  string `json:"account_mid_v2"`
	AccountIDV2   string `json:"account_id_v2"`
	LTokenV2      string `json:"ltoken_v2"`
	LTMidV2       string `json:"ltmid_v2"`
	LTUIDV2       string `json:"ltuid_v2"`
	// SToken is only present when the server returns one in data.
	SToken string `json:"stoken,omitempty"`
}

// Kind implements SessionResult.
func (WebLoginResult) Kind() LoginKind { return LoginKindWeb }

// Cookies implements SessionResult.
func (r WebLoginResult) Cookies() map[string]string {
	return nonEmpty(map[string]string{
		CookieTokenV2: r.CookieTokenV2, AccountMidV2: r.AccountMidV2, AccountIDV2: r.AccountIDV2,
		LTokenV2: r.LTokenV2, LTMidV2: r.LTMidV2, LTUIDV2: r.LTUIDV2, SToken: r.SToken,
	})
}

// CNWebLoginResult is returned by the Chinese passport web login.
type CNWebLoginResult struct {
	CookieTokenV2 string `json:"cookie_token_v2"`
	AccountMidV2  string `json:"account_mid_v2"`
	AccountIDV2   string `json:"account_id_v2"`
	LTokenV2      string `json:"ltoken_v2"`
	LTMidV2       string `json:"ltmid_v2"`
	LTUIDV2       string `json:"ltuid_v2"`
}

// Kind implements SessionResult.
func (CNWebLoginResult) Kind() LoginKind { return LoginKindCNWeb }

// Cookies implements SessionResult.
func (r CNWebLoginResult) Cookies() map[string]string {
	return nonEmpty(map[string]string{
		CookieTokenV2: r.CookieTokenV2, AccountMidV2: r.AccountMidV2, AccountIDV2: r.AccountIDV2,
		LTokenV2: r.LTokenV2, LTMidV2: r.LTMidV2, LTUIDV2: r.LTUIDV2,
	})
}

// QRLoginResult is returned once a QR login is confirmed.
type QRLoginResult struct {
	CookieTokenV2 string `json:"cookie_token_v2"`
	AccountMidV2  string `json:"account_mid_v2"`
	AccountIDV2   string `json:"account_id_v2"`
	LTokenV2      string `json:"ltoken_v2"`
	LTMidV2       string `json:"ltmid_v2"`
	LTUIDV2       string `json:"ltuid_v2"`
}

// Kind implements SessionResult.
func (QRLoginResult) Kind() LoginKind { return LoginKindQRCode }

// Cookies implements SessionResult.
func (r QRLoginResult) Cookies() map[string]string {
	return nonEmpty(map[string]string{
		CookieTokenV2: r.CookieTokenV2, AccountMidV2: r.AccountMidV2, AccountIDV2: r.AccountIDV2,
		LTokenV2: r.LTokenV2, LTMidV2: r.LTMidV2, LTUIDV2: r.LTUIDV2,
	})
}

// MobileLoginResult is returned by the SMS OTP login. It carries no ltuid_v2.
type MobileLoginResult struct {
	CookieTokenV2 string `json:"cookie_token_v2"`
	AccountMidV2  string `json:"account_mid_v2"`
	AccountIDV2   string `json:"account_id_v2"`
	LTokenV2      string `json:"ltoken_v2"`
	LTMidV2       string `json:"ltmid_v2"`
}

// Kind implements SessionResult.
func (MobileLoginResult) Kind() LoginKind { return LoginKindMobile }

// Cookies implements SessionResult.
func (r MobileLoginResult) Cookies() map[string]string {
	return nonEmpty(map[string]string{
		CookieTokenV2: r.CookieTokenV2, AccountMidV2: r.AccountMidV2, AccountIDV2: r.AccountIDV2,
		LTokenV2: r.LTokenV2, LTMidV2: r.LTMidV2,
	})
}

// AppLoginResult is returned by the app login. Its values come from the
// response payload rather than from cookies.
type AppLoginResult struct {
	SToken       string `json:"stoken"`
	LTUIDV2      string `json:"ltuid_v2"`
	LTMidV2      string `json:"ltmid_v2"`
	AccountIDV2  string `json:"account_id_v2"`
	AccountMidV2 string `json:"account_mid_v2"`
}

// Kind implements SessionResult.
func (AppLoginResult) Kind() LoginKind { return LoginKindApp }

// Cookies implements SessionResult.
func (r AppLoginResult) Cookies() map[string]string {
	return nonEmpty(map[string]string{
		SToken: r.SToken, LTUIDV2: r.LTUIDV2, LTMidV2: r.LTMidV2,
		AccountIDV2: r.AccountIDV2, AccountMidV2: r.AccountMidV2,
	})
}

// CookieHeader renders a session as a Cookie header value with names sorted.
func CookieHeader(r SessionResult) string {
	cookies := r.Cookies()
	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+cookies[name])
	}
	return strings.Join(parts, "; ")
}

func nonEmpty(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}
