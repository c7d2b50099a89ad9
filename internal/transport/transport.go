package transport

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/nao1215/hoyoauth/internal/model"
)

// Transport performs one HTTP round-trip. Implementations must be safe for
// concurrent use and must not retry.
type Transport interface {
	Send(ctx context.Context, req *model.SignedRequest) (*model.RawResponse, error)
}

// Func adapts a function to Transport.
type Func func(ctx context.Context, req *model.SignedRequest) (*model.RawResponse, error)

// Send implements Transport.
func (f Func) Send(ctx context.Context, req *model.SignedRequest) (*model.RawResponse, error) {
	return f(ctx, req)
}

const (
	// DefaultTimeout bounds a single round-trip.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize bounds a response body. Login responses are tiny.
	DefaultMaxBodySize int64 = 1 << 20

	// DefaultUserAgent is sent when a request carries no User-Agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"
)

// options is shared by both backends.
type options struct {
	timeout      time.Duration
	proxyAddress string
	maxBodySize  int64
	userAgent    string
}

// Option configures a backend.
type Option func(*options)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithProxy routes requests through a SOCKS5 proxy at host:port.
func WithProxy(address string) Option {
	return func(o *options) {
		o.proxyAddress = address
	}
}

// WithMaxBodySize limits how much of a response body is read.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		o.maxBodySize = n
	}
}

// WithUserAgent sets the default User-Agent.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		timeout:     DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.proxyAddress != "" && !IsValidProxyAddress(o.proxyAddress) {
		return nil, ErrInvalidProxyAddress
	}
	if o.timeout <= 0 {
		o.timeout = DefaultTimeout
	}
	if o.maxBodySize <= 0 {
		o.maxBodySize = DefaultMaxBodySize
	}
	return o, nil
}

// IsValidProxyAddress reports whether address is host:port with a port in 1..65535.
func IsValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}
