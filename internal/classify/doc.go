// Package classify decides what a login response means.
//
// Which retcodes signal a challenge differs per endpoint (-3101 on the
// overseas login, -3102 on the Chinese passport login, -3239 for email
// verification on the app login), so each call site passes its own Rules.
package classify
