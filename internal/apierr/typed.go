package apierr

import (
	"errors"
	"fmt"

	"github.com/nao1215/hoyoauth/internal/model"
)

// ChallengeError reports a challenge the flow could not resolve. It carries
// the challenge so the caller can solve it out-of-band.
type ChallengeError struct {
	Challenge *model.Challenge
	// Cause is set when a solver failed.
	Cause error
}

// Error implements error.
func (e *ChallengeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %s: %v", e.sentinel(), e.Challenge, e.Cause)
	}
	return fmt.Sprintf("%v: %s", e.sentinel(), e.Challenge)
}

// Unwrap returns the challenge sentinel and the solver failure, if any.
func (e *ChallengeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.sentinel(), e.Cause}
	}
	return []error{e.sentinel()}
}

func (e *ChallengeError) sentinel() error {
	if e.Challenge != nil && e.Challenge.Kind == model.ChallengeEmailVerify {
		return ErrEmailVerifyRequired
	}
	return ErrCaptchaRequired
}

// TransportError wraps an I/O failure. Transport errors are never retried
// by the login flow.
type TransportError struct {
	Err error
}

// NewTransportError wraps err.
func NewTransportError(err error) *TransportError {
	return &TransportError{Err: err}
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %v", ErrTransport, e.Err)
}

// Unwrap returns ErrTransport and the underlying error.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// ChallengeOf extracts the unresolved challenge from an error chain.
func ChallengeOf(err error) (*model.Challenge, bool) {
	var ce *ChallengeError
	if errors.As(err, &ce) && ce.Challenge != nil {
		return ce.Challenge, true
	}
	return nil, false
}

// KindOf reports the family of an error. Errors that did not come from this
// module are reported as KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var (
		apiErr       *Error
		challengeErr *ChallengeError
		transportErr *TransportError
	)
	switch {
	case errors.As(err, &challengeErr):
		return KindChallenge
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &apiErr):
		return apiErr.Kind
	case errors.Is(err, ErrMalformedChallenge),
		errors.Is(err, ErrUnexpectedResponse),
		errors.Is(err, ErrSerialization):
		return KindProtocol
	case errors.Is(err, ErrCrypto):
		return KindCrypto
	default:
		return KindUnknown
	}
}
