package auth

import "errors"

// Flow errors.
var (
	// ErrSolverNotImplemented is returned by DefaultSolver. The challenge is
	// still available from the surrounding *apierr.ChallengeError.
	ErrSolverNotImplemented = errors.New("challenge solver not implemented")

	// ErrNoProof is returned when a solver returns neither a proof nor an error.
	ErrNoProof = errors.New("solver returned no proof")

	// ErrNoOTPProvider is returned when a flow needs a one-time code and the
	// solver cannot supply one.
	ErrNoOTPProvider = errors.New("solver cannot provide one-time codes")

	// ErrNoQRPresenter is returned when a QR login is started and the solver
	// cannot show the code to the user.
	ErrNoQRPresenter = errors.New("solver cannot present QR codes")

	// ErrUnsupportedLogin is returned for a login kind that does not exist in a region.
	ErrUnsupportedLogin = errors.New("login kind not supported in region")

	// ErrMissingCredentials is returned when an account lacks what its login kind needs.
	ErrMissingCredentials = errors.New("missing credentials")
)
