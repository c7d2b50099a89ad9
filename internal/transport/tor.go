package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/nao1215/tornago"
)

// defaultTorStartupTimeout covers a cold bootstrap of the Tor network.
const defaultTorStartupTimeout = 3 * time.Minute

// EmbeddedTor runs a private Tor daemon whose SOCKS5 port the backends can
// use through WithProxy. Bootstrapping takes one to three minutes.
type EmbeddedTor struct {
	process        *tornago.TorProcess
	socksAddr      string
	startupTimeout time.Duration
}

// TorOption configures an EmbeddedTor.
type TorOption func(*EmbeddedTor)

// WithTorStartupTimeout sets how long Start waits for the bootstrap.
func WithTorStartupTimeout(timeout time.Duration) TorOption {
	return func(e *EmbeddedTor) {
		e.startupTimeout = timeout
	}
}

// NewEmbeddedTor creates a stopped daemon manager.
func NewEmbeddedTor(opts ...TorOption) *EmbeddedTor {
	e := &EmbeddedTor{startupTimeout: defaultTorStartupTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start launches the daemon on OS-assigned ports and blocks until it has
// bootstrapped.
func (e *EmbeddedTor) Start(ctx context.Context) error {
	launchCfg, err := tornago.NewTorLaunchConfig(
		tornago.WithTorSocksAddr(":0"),
		tornago.WithTorControlAddr(":0"),
		tornago.WithTorStartupTimeout(e.startupTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create Tor launch config: %w", err)
	}

	process, err := tornago.StartTorDaemon(launchCfg)
	if err != nil {
		return fmt.Errorf("failed to start embedded Tor daemon: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = process.Stop() //nolint:errcheck // best effort cleanup
		return err
	}

	e.process = process
	e.socksAddr = process.SocksAddr()
	return nil
}

// Stop shuts the daemon down. It is safe to call on a stopped instance.
func (e *EmbeddedTor) Stop() error {
	if e.process == nil {
		return nil
	}
	err := e.process.Stop()
	e.process = nil
	e.socksAddr = ""
	return err
}

// IsRunning reports whether the daemon is up.
func (e *EmbeddedTor) IsRunning() bool {
	return e.process != nil
}

// ProxyOption returns WithProxy for the daemon's SOCKS5 port.
func (e *EmbeddedTor) ProxyOption() (Option, error) {
	if !e.IsRunning() {
		return nil, ErrTorNotRunning
	}
	return WithProxy(e.socksAddr), nil
}
