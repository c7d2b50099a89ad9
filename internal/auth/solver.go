package auth

import (
	"context"

	"github.com/nao1215/hoyoauth/internal/model"
)

// Solver turns a captcha challenge into a proof. It is called at most once
// per request. A flow that sends a follow-up request, such as the
// verification email, may call it again for that request.
type Solver interface {
	SolveCaptcha(ctx context.Context, challenge *model.Challenge) (*model.ChallengeProof, error)
}

// OTPPurpose says which one-time code is being asked for.
type OTPPurpose int

const (
	// OTPEmail is the code mailed for email verification.
	OTPEmail OTPPurpose = iota
	// OTPSMS is the code texted for a mobile login.
	OTPSMS
)

// String returns the purpose name.
func (p OTPPurpose) String() string {
	if p == OTPSMS {
		return "sms"
	}
	return "email"
}

// OTPProvider is implemented by solvers that can supply one-time codes.
type OTPProvider interface {
	OTP(ctx context.Context, purpose OTPPurpose) (string, error)
}

// QRPresenter is implemented by solvers that can show a QR code to the user.
type QRPresenter interface {
	PresentQRCode(ctx context.Context, qr model.QRCode) error
}

// DefaultSolver solves nothing. With it, every challenge surfaces to the
// caller as an *apierr.ChallengeError.
type DefaultSolver struct{}

// SolveCaptcha implements Solver.
func (DefaultSolver) SolveCaptcha(context.Context, *model.Challenge) (*model.ChallengeProof, error) {
	return nil, ErrSolverNotImplemented
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(ctx context.Context, challenge *model.Challenge) (*model.ChallengeProof, error)

// SolveCaptcha implements Solver.
func (f SolverFunc) SolveCaptcha(ctx context.Context, challenge *model.Challenge) (*model.ChallengeProof, error) {
	return f(ctx, challenge)
}
