package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	ErrInvalidTimeout           = errors.New("invalid timeout: must be positive")
	ErrInvalidConcurrency       = errors.New("invalid concurrency: must be positive")
	ErrInvalidPollInterval      = errors.New("invalid QR poll interval: must be positive")
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
	ErrUnknownTransport         = errors.New("unknown transport: use http or tls-client")
	ErrInvalidProxyAddress      = errors.New("invalid proxy address: expected host:port")
	ErrConflictingProxy         = errors.New("conflicting proxy settings: --tor and --proxy cannot be used together")
	ErrInvalidDeviceID          = errors.New("invalid device id: must be a UUID")
	ErrNoDBDir                  = errors.New("no database directory configured")
)

// Account file errors.
var (
	// ErrConfigNotFound is returned when the account file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrAccountNotFound is returned when no account has the requested name.
	ErrAccountNotFound = errors.New("account not found in configuration")

	// ErrDuplicateAccount is returned when two accounts share a name.
	ErrDuplicateAccount = errors.New("duplicate account name")

	// ErrPasswordNotSet is returned when an account's password variable is unset.
	ErrPasswordNotSet = errors.New("password environment variable is not set")

	// ErrIncompleteAccount is returned when an account lacks what its login kind needs.
	ErrIncompleteAccount = errors.New("incomplete account")
)
