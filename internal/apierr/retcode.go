package apierr

import (
	"errors"
	"fmt"
)

type entry struct {
	kind Kind
	err  error
}

// retcodes is the retcode table. Codes that are challenge signals for a
// particular endpoint are not listed here; they are endpoint configuration.
var retcodes = map[int]entry{
	// HoYoLAB
	-100:    {KindHoyolab, ErrInvalidCookies},
	-108:    {KindHoyolab, ErrInvalidLanguage},
	-110:    {KindHoyolab, ErrVisitsTooFrequently},
	10001:   {KindHoyolab, ErrInvalidCookies},
	-10001:  {KindHoyolab, ErrMalformedRequest},
	-10002:  {KindHoyolab, ErrNoGameAccount},
	10101:   {KindHoyolab, ErrTooManyRequests},
	10102:   {KindHoyolab, ErrDataNotPublic},
	10103:   {KindHoyolab, ErrCookiesNotBound},
	10104:   {KindHoyolab, ErrCannotViewRealTimeNotes},
	-1:      {KindHoyolab, ErrInternalDatabase},
	-500001: {KindHoyolab, ErrInvalidLanguage},
	-500004: {KindHoyolab, ErrVisitsTooFrequently},
	-502001: {KindHoyolab, ErrInvalidLanguage},
	-502002: {KindHoyolab, ErrInvalidLanguage},
	-1071:   {KindHoyolab, ErrInvalidCookies},
	-1073:   {KindHoyolab, ErrAccountNotFound},
	1008:    {KindHoyolab, ErrAccountNotFound},
	-1104:   {KindHoyolab, ErrActionMustBeInApp},
	-3006:   {KindHoyolab, ErrRequestTooFrequent},

	// Redemption
	-1065: {KindRedemption, ErrRedemptionInvalid},
	-2001: {KindRedemption, ErrRedemptionExpired},
	-2003: {KindRedemption, ErrRedemptionMalformed},
	-2004: {KindRedemption, ErrRedemptionInvalid},
	-2014: {KindRedemption, ErrRedemptionNotActivated},
	-2016: {KindRedemption, ErrRedemptionCooldown},
	-2017: {KindRedemption, ErrRedemptionClaimed},
	-2018: {KindRedemption, ErrRedemptionClaimed},
	-2021: {KindRedemption, ErrRedemptionAdventureRankTooLow},

	// Reward
	-5003: {KindReward, ErrRewardAlreadyClaimed},

	// Account
	-3208: {KindAccount, ErrAccountLoginFail},
	-3202: {KindAccount, ErrAccountLocked},
	-3203: {KindAccount, ErrAccountDoesNotExist},
	-3205: {KindAccount, ErrWrongOTP},
	-3206: {KindAccount, ErrVerificationRateLimited},
	-119:  {KindAccount, ErrOTPRateLimited},
	-216:  {KindAccount, ErrIncorrectGameAccount},
	-202:  {KindAccount, ErrIncorrectGamePassword},
}

// GeetestRetcodes are the retcodes the game APIs answer with when a Geetest
// check is required outside of the login endpoints.
var GeetestRetcodes = []int{10035, 5003, 10041, 1034}

// Error is a server-reported failure.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	err     error
}

// FromCode maps a retcode and server message onto an *Error. It is total:
// codes that are not in the table become KindUnknown errors that keep the code.
func FromCode(code int, message string) *Error {
	e, ok := retcodes[code]
	if !ok {
		return &Error{Kind: KindUnknown, Code: code, Message: message, err: ErrUnknownRetcode}
	}
	return &Error{Kind: e.kind, Code: code, Message: message, err: e.err}
}

// IsGeetestRetcode reports whether a retcode demands a Geetest check.
func IsGeetestRetcode(code int) bool {
	for _, c := range GeetestRetcodes {
		if c == code {
			return true
		}
	}
	return false
}

// Error implements error.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("retcode %d: %v", e.Code, e.err)
	}
	return fmt.Sprintf("retcode %d: %v (%s)", e.Code, e.err, e.Message)
}

// Unwrap returns the sentinel for the retcode.
func (e *Error) Unwrap() error {
	return e.err
}

// Retcode extracts the server retcode from an error chain.
func Retcode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
