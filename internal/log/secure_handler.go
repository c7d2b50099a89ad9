package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys are attribute keys whose values are always masked.
var sensitiveKeys = map[string]bool{
	// HTTP headers
	"authorization": true,
	"cookie":        true,
	"cookies":       true,
	"set-cookie":    true,
	"ds":            true,
	"x-rpc-aigis":   true,
	"x-rpc-verify":  true,

	// Credentials
	"password": true,
	"account":  true,
	"mobile":   true,
	"otp":      true,
	"code":     true,
	"captcha":  true,

	// Session tokens
	"stoken":          true,
	"ltoken_v2":       true,
	"cookie_token_v2": true,
	"ltmid_v2":        true,
	"account_mid_v2":  true,
	"session":         true,
	"session_id":      true,

	// Challenge material
	"ticket":          true,
	"action_ticket":   true,
	"risk_ticket":     true,
	"verify_str":      true,
	"geetest_seccode": true,
	"pass_token":      true,
}

// sensitiveKeywords mask any key containing them. The bare "key" is left
// out; it matches too many harmless keys.
var sensitiveKeywords = []string{
	"password", "secret", "token", "credential", "private",
}

// sensitivePatterns mask values regardless of their key.
var sensitivePatterns = []*regexp.Regexp{
	// ds signature: t,r,md5
	regexp.MustCompile(`^\d{9,11},[A-Za-z0-9]{6},[0-9a-f]{32}$`),

	// x-rpc-aigis proof: session_id;base64
	regexp.MustCompile(`^[A-Za-z0-9_-]+;[A-Za-z0-9+/]{16,}={0,2}$`),

	// RSA ciphertext of an account, password or mobile number
	regexp.MustCompile(`^[A-Za-z0-9+/]{120,}={0,2}$`),

	// Cookie header carrying a session token
	regexp.MustCompile(`(?i)(ltoken_v2|cookie_token_v2|stoken)=`),

	// Bearer tokens
	regexp.MustCompile(`(?i)^bearer\s+.+`),

	// Private key markers
	regexp.MustCompile(`(?i)-----BEGIN.*PRIVATE KEY-----`),
}

// MaskValue replaces masked values.
const MaskValue = "***REDACTED***"

// SecureHandler wraps an slog.Handler and masks sensitive attributes before
// passing records on.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler wraps handler. A nil handler wraps slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled implements slog.Handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs implements slog.Handler.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitized[i] = sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitized)}
}

// WithGroup implements slog.Handler.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

func sanitizeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitized := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			sanitized[i] = sanitizeAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitized...)}
	}

	key := strings.ToLower(a.Key)
	if sensitiveKeys[key] || containsSensitiveKeyword(key) {
		return slog.String(a.Key, MaskValue)
	}
	if a.Value.Kind() == slog.KindString && isSensitiveValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

func containsSensitiveKeyword(key string) bool {
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewSecureLogger returns a text logger writing to w. verbose selects the
// Debug level, which includes every login step; otherwise Warn.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(verbose)})))
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level(verbose)})))
}
