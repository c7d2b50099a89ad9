package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/hoyoauth/internal/credential"
	"github.com/nao1215/hoyoauth/internal/ds"
	"github.com/nao1215/hoyoauth/internal/model"
	"github.com/nao1215/hoyoauth/internal/transport"
)

// DefaultQRPollInterval is the pause between two QR status checks.
const DefaultQRPollInterval = 2 * time.Second

// Client runs login flows. A Client is safe for concurrent use; concurrent
// flows share its cookie store.
type Client struct {
	transport      transport.Transport
	store          *transport.CookieStore
	signer         *ds.Signer
	encryptor      *credential.Encryptor
	solver         Solver
	logger         *slog.Logger
	endpoints      Endpoints
	lang           model.Lang
	deviceID       string
	qrPollInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithSigner sets the ds signer.
func WithSigner(s *ds.Signer) Option {
	return func(c *Client) {
		c.signer = s
	}
}

// WithEncryptor sets the credential encryptor.
func WithEncryptor(e *credential.Encryptor) Option {
	return func(c *Client) {
		c.encryptor = e
	}
}

// WithSolver sets the challenge solver. The default solves nothing.
func WithSolver(s Solver) Option {
	return func(c *Client) {
		c.solver = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithEndpoints overrides the endpoint URLs.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) {
		c.endpoints = e
	}
}

// WithLang sets the language sent in x-rpc-language and x-rpc-lang.
func WithLang(l model.Lang) Option {
	return func(c *Client) {
		c.lang = l
	}
}

// WithDeviceID sets the device id presented to the Chinese web login.
func WithDeviceID(id string) Option {
	return func(c *Client) {
		c.deviceID = id
	}
}

// WithQRPollInterval sets how long LoginWithQRCode waits between checks.
// Values <= 0 are ignored.
func WithQRPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.qrPollInterval = d
		}
	}
}

// New creates a Client sending through tr. Tokens from successful logins
// are stored in store; a nil store gets a fresh one.
func New(tr transport.Transport, store *transport.CookieStore, opts ...Option) (*Client, error) {
	if tr == nil {
		return nil, errors.New("auth: nil transport")
	}
	c := &Client{
		transport:      tr,
		store:          store,
		solver:         DefaultSolver{},
		logger:         slog.Default(),
		endpoints:      DefaultEndpoints(),
		lang:           model.LangEnUS,
		deviceID:       DefaultCNDeviceID,
		qrPollInterval: DefaultQRPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		s, err := transport.NewCookieStore()
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie store: %w", err)
		}
		c.store = s
	}
	if c.signer == nil {
		c.signer = ds.New()
	}
	if c.encryptor == nil {
		e, err := credential.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load credential keys: %w", err)
		}
		c.encryptor = e
	}
	if c.solver == nil {
		c.solver = DefaultSolver{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Store returns the cookie store the client plants tokens into.
func (c *Client) Store() *transport.CookieStore {
	return c.store
}
