// Package model defines the data exchanged with the HoYoLAB and miyoushe
// login endpoints.
//
// The main types are:
//   - Account: who logs in, in which region and with which login kind
//   - SignedRequest and RawResponse: one call before and after transport
//   - Envelope: the {retcode, message, data} body every endpoint returns
//   - Challenge and ChallengeProof: captcha and email verification round trips
//   - SessionResult: the cookies or tokens a successful login yields
//   - LoginReport: the outcome of one login attempt, as reported and audited
//
// String methods never print passwords and mask account identifiers.
package model
