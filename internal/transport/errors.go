package transport

import "errors"

// Transport and proxy errors.
var (
	// ErrInvalidProxyAddress is returned when a proxy address is not host:port.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrProxyNotSOCKS5 is returned when the proxy answers but does not speak SOCKS5
	// without authentication.
	ErrProxyNotSOCKS5 = errors.New("proxy is not a SOCKS5 proxy")

	// ErrProxyCannotConnect is returned when the proxy cannot be reached.
	ErrProxyCannotConnect = errors.New("cannot connect to proxy")

	// ErrProxyTimeout is returned when the proxy handshake times out.
	ErrProxyTimeout = errors.New("timeout connecting to proxy")

	// ErrTorNotRunning is returned when a client is requested from a stopped EmbeddedTor.
	ErrTorNotRunning = errors.New("embedded Tor daemon is not running")

	// ErrResponseTooLarge is returned when a response body exceeds the configured limit.
	ErrResponseTooLarge = errors.New("response body too large")
)

// ProxyStatus is the result of CheckProxy.
type ProxyStatus int

const (
	// ProxyStatusOK means the proxy completed a SOCKS5 handshake.
	ProxyStatusOK ProxyStatus = iota
	// ProxyStatusWrongType means the proxy answered with something other than SOCKS5.
	ProxyStatusWrongType
	// ProxyStatusCannotConnect means no TCP connection could be made.
	ProxyStatusCannotConnect
	// ProxyStatusTimeout means the handshake did not finish in time.
	ProxyStatusTimeout
)

// String returns a human-readable description of the status.
func (s ProxyStatus) String() string {
	switch s {
	case ProxyStatusOK:
		return "OK"
	case ProxyStatusWrongType:
		return "wrong type (not SOCKS5)"
	case ProxyStatusCannotConnect:
		return "cannot connect"
	case ProxyStatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Err returns the error for the status, or nil if OK.
func (s ProxyStatus) Err() error {
	switch s {
	case ProxyStatusOK:
		return nil
	case ProxyStatusWrongType:
		return ErrProxyNotSOCKS5
	case ProxyStatusCannotConnect:
		return ErrProxyCannotConnect
	case ProxyStatusTimeout:
		return ErrProxyTimeout
	default:
		return errors.New("unknown proxy status")
	}
}
