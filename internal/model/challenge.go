package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Header names used by the challenge protocol.
const (
	// HeaderAigis carries a captcha challenge in responses and its proof in retries.
	HeaderAigis = "x-rpc-aigis"
	// HeaderVerify carries an email verification ticket in both directions.
	HeaderVerify = "x-rpc-verify"
	// HeaderDS carries the dynamic secret signature.
	HeaderDS = "ds"
)

// ChallengeKind identifies what the server wants before it issues a session.
type ChallengeKind int

const (
	// ChallengeCaptcha is a Geetest captcha announced through x-rpc-aigis.
	ChallengeCaptcha ChallengeKind = iota
	// ChallengeEmailVerify is an email verification announced through x-rpc-verify.
	ChallengeEmailVerify
)

// String returns the challenge kind name.
func (k ChallengeKind) String() string {
	switch k {
	case ChallengeCaptcha:
		return "captcha"
	case ChallengeEmailVerify:
		return "email_verify"
	default:
		return unknownName
	}
}

// SessionMMT is a Geetest challenge bound to a login session.
// Geetest v4 challenges carry CaptchaID instead of Challenge; GT mirrors
// CaptchaID in that case.
type SessionMMT struct {
	NewCaptcha int    `json:"new_captcha"`
	Success    int    `json:"success"`
	Challenge  string `json:"challenge"`
	GT         string `json:"gt"`
	CaptchaID  string `json:"captcha_id,omitempty"`
	RiskType   string `json:"risk_type,omitempty"`
	SessionID  string `json:"session_id"`
}

// IsV4 reports whether the challenge is a Geetest v4 challenge.
func (m SessionMMT) IsV4() bool {
	return m.CaptchaID != ""
}

// ParseSessionMMT decodes an x-rpc-aigis response header.
//
// The server sends either a flat object or an object whose "data" member is
// a JSON-encoded string holding the Geetest fields. Both are accepted.
func ParseSessionMMT(header string) (SessionMMT, error) {
	if !gjson.Valid(header) {
		return SessionMMT{}, fmt.Errorf("%w: %s is not JSON", ErrMalformedHeader, HeaderAigis)
	}
	root := gjson.Parse(header)
	if !root.IsObject() {
		return SessionMMT{}, fmt.Errorf("%w: %s is not an object", ErrMalformedHeader, HeaderAigis)
	}

	fields := root
	if data := root.Get("data"); data.Type == gjson.String && gjson.Valid(data.Str) {
		fields = gjson.Parse(data.Str)
	}
	pick := func(key string) gjson.Result {
		if v := fields.Get(key); v.Exists() {
			return v
		}
		return root.Get(key)
	}

	mmt := SessionMMT{
		NewCaptcha: int(pick("new_captcha").Int()),
		Success:    int(pick("success").Int()),
		Challenge:  pick("challenge").String(),
		GT:         pick("gt").String(),
		CaptchaID:  pick("captcha_id").String(),
		RiskType:   pick("risk_type").String(),
		SessionID:  root.Get("session_id").String(),
	}
	if mmt.GT == "" {
		mmt.GT = mmt.CaptchaID
	}
	if mmt.SessionID == "" {
		return SessionMMT{}, fmt.Errorf("%w: %s has no session_id", ErrMalformedHeader, HeaderAigis)
	}
	return mmt, nil
}

// ActionTicket is the email verification ticket from x-rpc-verify.
type ActionTicket struct {
	RiskTicket string `json:"risk_ticket"`
	VerifyStr  string `json:"verify_str"`
	Ticket     string `json:"ticket"`
}

// ParseActionTicket decodes an x-rpc-verify response header.
// verify_str may arrive either as a string or as a nested object.
func ParseActionTicket(header string) (ActionTicket, error) {
	if !gjson.Valid(header) {
		return ActionTicket{}, fmt.Errorf("%w: %s is not JSON", ErrMalformedHeader, HeaderVerify)
	}
	root := gjson.Parse(header)
	if !root.IsObject() {
		return ActionTicket{}, fmt.Errorf("%w: %s is not an object", ErrMalformedHeader, HeaderVerify)
	}
	ticket := ActionTicket{
		RiskTicket: stringOrRaw(root.Get("risk_ticket")),
		VerifyStr:  stringOrRaw(root.Get("verify_str")),
		Ticket:     root.Get("ticket").String(),
	}
	if ticket.Ticket == "" {
		return ActionTicket{}, fmt.Errorf("%w: %s has no ticket", ErrMalformedHeader, HeaderVerify)
	}
	return ticket, nil
}

func stringOrRaw(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Null:
		return ""
	default:
		return r.Raw
	}
}

// VerifyHeader renders the x-rpc-verify request header.
//
// verify_str is parsed as JSON (an empty object if it is not JSON) and
// re-serialised into a string, which is then embedded in the outer object.
func (t ActionTicket) VerifyHeader() (string, error) {
	out := "{}"
	for _, kv := range [][2]string{
		{"risk_ticket", t.RiskTicket},
		{"ticket", t.Ticket},
		{"verify_str", canonicalJSON(t.VerifyStr)},
	} {
		raw, err := encodeString(kv[1])
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidProof, err)
		}
		out, err = sjson.SetRaw(out, kv[0], raw)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidProof, err)
		}
	}
	return out, nil
}

// encodeString quotes s as a JSON string without HTML escaping.
func encodeString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// canonicalJSON re-encodes s compactly with sorted object keys.
func canonicalJSON(s string) string {
	if !gjson.Valid(s) {
		return "{}"
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "{}"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "{}"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Challenge is a server demand that must be resolved before a session is issued.
// Exactly one of MMT and Ticket is meaningful, selected by Kind.
type Challenge struct {
	Kind   ChallengeKind
	MMT    SessionMMT
	Ticket ActionTicket
}

// NewCaptchaChallenge wraps a Geetest challenge.
func NewCaptchaChallenge(mmt SessionMMT) *Challenge {
	return &Challenge{Kind: ChallengeCaptcha, MMT: mmt}
}

// NewEmailVerifyChallenge wraps an email verification ticket.
func NewEmailVerifyChallenge(ticket ActionTicket) *Challenge {
	return &Challenge{Kind: ChallengeEmailVerify, Ticket: ticket}
}

// String describes the challenge without exposing ticket contents.
func (c *Challenge) String() string {
	if c == nil {
		return "<nil>"
	}
	if c.Kind == ChallengeCaptcha {
		return fmt.Sprintf("captcha(session_id=%s)", c.MMT.SessionID)
	}
	return c.Kind.String()
}
