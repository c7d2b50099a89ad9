package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync/atomic"
)

// SessionMMTResult is a solved Geetest v3 challenge.
// SessionID is carried outside of the serialised payload.
type SessionMMTResult struct {
	GeetestChallenge string `json:"geetest_challenge"`
	GeetestValidate  string `json:"geetest_validate"`
	GeetestSeccode   string `json:"geetest_seccode"`
	SessionID        string `json:"-"`
}

// AigisHeader renders the x-rpc-aigis request header:
// session_id + ";" + base64(json(result)).
func (r SessionMMTResult) AigisHeader() (string, error) {
	return aigisHeader(r.SessionID, r)
}

// SessionMMTv4Result is a solved Geetest v4 challenge.
type SessionMMTv4Result struct {
	CaptchaID     string `json:"captcha_id"`
	LotNumber     string `json:"lot_number"`
	PassToken     string `json:"pass_token"`
	GenTime       string `json:"gen_time"`
	CaptchaOutput string `json:"captcha_output"`
	SessionID     string `json:"-"`
}

// AigisHeader renders the x-rpc-aigis request header for a v4 result.
func (r SessionMMTv4Result) AigisHeader() (string, error) {
	return aigisHeader(r.SessionID, r)
}

func aigisHeader(sessionID string, payload any) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("%w: empty session_id", ErrInvalidProof)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	return sessionID + ";" + base64.StdEncoding.EncodeToString(b), nil
}

// ChallengeProof is the solved answer to a Challenge, rendered as the single
// request header it is attached with. A proof can be taken exactly once.
type ChallengeProof struct {
	header string
	value  string
	used   atomic.Bool
}

// NewCaptchaProof builds a proof from a solved v3 captcha.
func NewCaptchaProof(r SessionMMTResult) (*ChallengeProof, error) {
	v, err := r.AigisHeader()
	if err != nil {
		return nil, err
	}
	return &ChallengeProof{header: HeaderAigis, value: v}, nil
}

// NewCaptchaV4Proof builds a proof from a solved v4 captcha.
func NewCaptchaV4Proof(r SessionMMTv4Result) (*ChallengeProof, error) {
	v, err := r.AigisHeader()
	if err != nil {
		return nil, err
	}
	return &ChallengeProof{header: HeaderAigis, value: v}, nil
}

// NewEmailVerifyProof builds a proof from an action ticket whose email code
// has been verified.
func NewEmailVerifyProof(t ActionTicket) (*ChallengeProof, error) {
	v, err := t.VerifyHeader()
	if err != nil {
		return nil, err
	}
	return &ChallengeProof{header: HeaderVerify, value: v}, nil
}

// HeaderName returns the request header the proof is sent in.
func (p *ChallengeProof) HeaderName() string {
	return p.header
}

// Consumed reports whether the proof has already been taken.
func (p *ChallengeProof) Consumed() bool {
	return p.used.Load()
}

// Take returns the header name and value and marks the proof consumed.
func (p *ChallengeProof) Take() (string, string, error) {
	if !p.used.CompareAndSwap(false, true) {
		return "", "", ErrProofConsumed
	}
	return p.header, p.value, nil
}
