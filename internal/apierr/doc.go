// Package apierr is the error taxonomy of the login client.
//
// Server retcodes are mapped by FromCode onto an *Error whose Kind names the
// family (HoYoLAB, account, redemption, reward) and which unwraps to a
// sentinel, so callers can write errors.Is(err, apierr.ErrAccountLocked).
// Codes the table does not know become KindUnknown errors that keep the raw
// code. Challenges that were not resolved surface as *ChallengeError, I/O
// failures as *TransportError, and responses that cannot be understood wrap
// one of the protocol sentinels.
//
// KindOf reports the family of any error produced by this module.
package apierr
