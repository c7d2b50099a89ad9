package apierr

// Kind is the family an error belongs to.
type Kind int

const (
	// KindUnknown is a retcode the taxonomy does not name.
	KindUnknown Kind = iota
	// KindHoyolab covers generic API conditions: cookies, language, rate limits.
	KindHoyolab
	// KindAccount covers login failures: wrong credentials, lock-outs, OTP errors.
	KindAccount
	// KindRedemption covers gift code errors.
	KindRedemption
	// KindReward covers daily reward errors.
	KindReward
	// KindChallenge is an unresolved captcha or email verification.
	KindChallenge
	// KindTransport is a network or HTTP client failure.
	KindTransport
	// KindProtocol is a response the client cannot interpret.
	KindProtocol
	// KindCrypto is a credential encryption or key configuration failure.
	KindCrypto
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindHoyolab:
		return "hoyolab"
	case KindAccount:
		return "account"
	case KindRedemption:
		return "redemption"
	case KindReward:
		return "reward"
	case KindChallenge:
		return "challenge"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindCrypto:
		return "crypto"
	default:
		return "unknown"
	}
}

// Retryable reports whether the same request may succeed if sent again
// later. Only transport failures qualify. Rate limits share KindHoyolab
// with permanent errors such as invalid cookies, so that kind is not
// retryable. The login flow itself never retries.
func (k Kind) Retryable() bool {
	return k == KindTransport
}
