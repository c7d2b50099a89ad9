package apierr

import "errors"

// HoYoLAB API conditions.
var (
	ErrInvalidCookies          = errors.New("cookies are not valid")
	ErrInvalidLanguage         = errors.New("language is not valid")
	ErrVisitsTooFrequently     = errors.New("visits too frequently")
	ErrMalformedRequest        = errors.New("malformed request")
	ErrNoGameAccount           = errors.New("no game account associated with cookies")
	ErrTooManyRequests         = errors.New("too many requests")
	ErrDataNotPublic           = errors.New("user's data is not public")
	ErrCookiesNotBound         = errors.New("cookies are valid but have no hoyolab account bound")
	ErrCannotViewRealTimeNotes = errors.New("cannot view real-time notes of other users")
	ErrInternalDatabase        = errors.New("internal database error")
	ErrAccountNotFound         = errors.New("account not found")
	ErrActionMustBeInApp       = errors.New("action must be performed in the app")
	ErrRequestTooFrequent      = errors.New("request too frequent")
)

// Account and login conditions.
var (
	ErrAccountLoginFail        = errors.New("account or password is incorrect")
	ErrAccountLocked           = errors.New("account is locked")
	ErrAccountDoesNotExist     = errors.New("account does not exist")
	ErrWrongOTP                = errors.New("verification code is wrong")
	ErrVerificationRateLimited = errors.New("verification code requested too often")
	ErrOTPRateLimited          = errors.New("OTP requested too often")
	ErrIncorrectGameAccount    = errors.New("game account is incorrect")
	ErrIncorrectGamePassword   = errors.New("game password is incorrect")
)

// Redemption conditions.
var (
	ErrRedemptionInvalid             = errors.New("redemption code is invalid")
	ErrRedemptionExpired             = errors.New("redemption code has expired")
	ErrRedemptionMalformed           = errors.New("redemption code is malformed")
	ErrRedemptionNotActivated        = errors.New("redemption code is not activated")
	ErrRedemptionCooldown            = errors.New("redemption is on cooldown")
	ErrRedemptionClaimed             = errors.New("redemption code was already claimed")
	ErrRedemptionAdventureRankTooLow = errors.New("adventure rank too low to redeem")
)

// Reward conditions.
var (
	ErrRewardAlreadyClaimed = errors.New("daily reward already claimed")
)

// Condition not in the table.
var ErrUnknownRetcode = errors.New("unknown retcode")

// Challenge, transport and protocol conditions.
var (
	// ErrCaptchaRequired is unwrapped from a *ChallengeError for captcha challenges.
	ErrCaptchaRequired = errors.New("captcha required")

	// ErrEmailVerifyRequired is unwrapped from a *ChallengeError for email verification.
	ErrEmailVerifyRequired = errors.New("email verification required")

	// ErrTransport is unwrapped from every *TransportError.
	ErrTransport = errors.New("transport error")

	// ErrMalformedChallenge is returned when a challenge retcode arrives
	// without a usable challenge header.
	ErrMalformedChallenge = errors.New("malformed challenge")

	// ErrUnexpectedResponse is returned for envelopes that are not JSON, lack
	// required fields, or carry no data where data is required.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrSerialization is returned when a request body cannot be encoded.
	ErrSerialization = errors.New("serialization failed")

	// ErrCrypto is returned when credentials cannot be encrypted.
	ErrCrypto = errors.New("credential encryption failed")
)
