package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"time"
)

// checkProxyTimeout bounds the whole SOCKS5 handshake of CheckProxy.
const checkProxyTimeout = 2 * time.Second

const (
	socks5Version      = 0x05
	socks5AuthNone     = 0x00
	socks5CmdConnect   = 0x01
	socks5AddrTypeName = 0x03

	// probeHost is only named in the CONNECT request; the reply code is ignored.
	probeHost = "sg-public-api.hoyolab.com"
	probePort = 443
)

// CheckProxy verifies that address is a SOCKS5 proxy that accepts
// unauthenticated CONNECT requests. Any CONNECT reply counts as success;
// only the framing is checked.
func CheckProxy(ctx context.Context, address string) ProxyStatus {
	if !IsValidProxyAddress(address) {
		return ProxyStatusCannotConnect
	}

	ctx, cancel := context.WithTimeout(ctx, checkProxyTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ProxyStatusTimeout
		}
		return ProxyStatusCannotConnect
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(checkProxyTimeout)); err != nil {
		return ProxyStatusCannotConnect
	}

	if _, err := conn.Write([]byte{socks5Version, 0x01, socks5AuthNone}); err != nil {
		return ProxyStatusCannotConnect
	}
	authResp := make([]byte, 2)
	if _, err := io.ReadFull(conn, authResp); err != nil {
		return readFailure(err)
	}
	if authResp[0] != socks5Version || authResp[1] != socks5AuthNone {
		return ProxyStatusWrongType
	}

	req := []byte{socks5Version, socks5CmdConnect, 0x00, socks5AddrTypeName, byte(len(probeHost))}
	req = append(req, probeHost...)
	req = append(req, byte(probePort>>8), byte(probePort&0xFF))
	if _, err := conn.Write(req); err != nil {
		return ProxyStatusCannotConnect
	}

	connectResp := make([]byte, 4)
	if _, err := io.ReadFull(conn, connectResp); err != nil {
		return readFailure(err)
	}
	if connectResp[0] != socks5Version {
		return ProxyStatusWrongType
	}
	return ProxyStatusOK
}

func readFailure(err error) ProxyStatus {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return ProxyStatusTimeout
	}
	return ProxyStatusWrongType
}
