// Package log builds the slog loggers used across hoyoauth.
//
// Every logger is wrapped in a SecureHandler, which masks credentials and
// session tokens before a record reaches its destination. Keys such as
// password, mobile, otp, stoken, ltoken_v2, ds and x-rpc-aigis are always
// masked, as are values that look like a signature, an encrypted
// credential, or a Cookie header carrying a token.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("login step", "endpoint", "web_login", "ltoken_v2", token) // token is masked
//
// Log files are rotated with lumberjack; see NewRotatingFile.
package log
