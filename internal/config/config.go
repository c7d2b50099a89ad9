package config

import (
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/nao1215/hoyoauth/internal/model"
	"github.com/nao1215/hoyoauth/internal/transport"
)

// Default configuration values.
const (
	// AppName names the XDG directories.
	AppName = "hoyoauth"

	// DefaultTimeout bounds one round-trip. Solving a challenge is not
	// covered by it.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency is how many accounts a batch logs in at once.
	// The login endpoints rate limit aggressively, so it stays small.
	DefaultConcurrency = 2

	// DefaultTorStartupTimeout bounds the embedded Tor bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute

	// DefaultQRPollInterval is the pause between QR status checks.
	DefaultQRPollInterval = 2 * time.Second
)

// Transport backends.
const (
	TransportHTTP      = "http"
	TransportTLSClient = "tls-client"
)

// Transports lists the accepted backend names.
func Transports() []string {
	return []string{TransportHTTP, TransportTLSClient}
}

// Config holds every hoyoauth setting. It is filled from flags and passed
// down explicitly.
type Config struct {
	// Lang is sent in x-rpc-language.
	Lang model.Lang

	// Timeout bounds one round-trip.
	Timeout time.Duration

	// Transport selects the backend: TransportHTTP or TransportTLSClient.
	Transport string

	// ProxyAddress is a SOCKS5 proxy in host:port form.
	ProxyAddress string

	// UseTor starts an embedded Tor daemon and routes through it.
	UseTor            bool
	TorStartupTimeout time.Duration

	// UserAgent replaces the default browser User-Agent when set.
	UserAgent string

	// DeviceID is presented to the Chinese web login.
	DeviceID string

	// QRPollInterval is the pause between QR status checks.
	QRPollInterval time.Duration

	// Concurrency is how many accounts a batch logs in at once.
	Concurrency int

	Verbose bool

	// LogJSON writes logs as JSON lines instead of text.
	LogJSON bool

	// LogFile receives a rotated copy of the log when set.
	LogFile string

	// ConfigFilePath is the account file. Empty searches the default locations.
	ConfigFilePath string

	// EnvFile is loaded before passwords are resolved. Empty loads ./.env if present.
	EnvFile string

	// Accounts is the loaded account file.
	Accounts *File

	JSONReport     bool
	MarkdownReport bool

	// ReportFile receives the report instead of stdout.
	ReportFile string

	// ShowTokens prints session tokens in reports instead of masking them.
	ShowTokens bool

	// DBDir holds the audit database. Defaults to the XDG data directory.
	DBDir string

	// SaveToDB records every attempt in the audit database.
	SaveToDB bool
}

// NewConfig returns the defaults. Every call gets a fresh device id.
func NewConfig() *Config {
	return &Config{
		Lang:              model.LangEnUS,
		Timeout:           DefaultTimeout,
		Transport:         TransportHTTP,
		TorStartupTimeout: DefaultTorStartupTimeout,
		DeviceID:          uuid.NewString(),
		QRPollInterval:    DefaultQRPollInterval,
		Concurrency:       DefaultConcurrency,
		DBDir:             XDGDataDir(),
		SaveToDB:          true,
	}
}

// XDGDataDir returns the data directory, e.g. ~/.local/share/hoyoauth.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the config directory, e.g. ~/.config/hoyoauth.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate returns the first invalid setting.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.QRPollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if !slices.Contains(Transports(), c.Transport) {
		return ErrUnknownTransport
	}
	if c.ProxyAddress != "" && !transport.IsValidProxyAddress(c.ProxyAddress) {
		return ErrInvalidProxyAddress
	}
	if c.UseTor && c.ProxyAddress != "" {
		return ErrConflictingProxy
	}
	if c.UseTor && c.TorStartupTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if _, err := uuid.Parse(c.DeviceID); err != nil {
		return ErrInvalidDeviceID
	}
	if c.SaveToDB && c.DBDir == "" {
		return ErrNoDBDir
	}
	return nil
}
