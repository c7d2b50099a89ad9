package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/hoyoauth/internal/config"
	"github.com/nao1215/hoyoauth/internal/model"
)

// addConnectionFlags registers the flags shared by login and batch.
func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Account file path (default: .hoyoauth in current, XDG config or home directory)")
	cmd.Flags().String("env-file", "",
		"Load password variables from this file (default: .env if present)")
	cmd.Flags().StringP("lang", "l", string(model.LangEnUS), "Language sent to the server")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Timeout for each request")
	cmd.Flags().String("transport", config.TransportHTTP,
		"HTTP backend: "+strings.Join(config.Transports(), " or "))
	cmd.Flags().StringP("proxy", "x", "", "SOCKS5 proxy address (host:port)")
	cmd.Flags().Bool("tor", false, "Route requests through an embedded Tor daemon")
	cmd.Flags().DurationP("tor-timeout", "T", config.DefaultTorStartupTimeout, "Timeout for embedded Tor startup")
	cmd.Flags().String("user-agent", "", "User-Agent header (default: a desktop browser)")
	cmd.Flags().String("device-id", "", "Device id presented to the Chinese login (default: random)")
	cmd.Flags().Duration("qr-interval", config.DefaultQRPollInterval, "Pause between QR code status checks")
	cmd.Flags().Bool("no-db", false, "Do not record attempts in the audit database")
}

// addReportFlags registers the report output flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Output a JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output a Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().Bool("show-tokens", false, "Print session tokens instead of masking them")
}

// getVerboseFlag reads the persistent verbose flag.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}

// buildConfig creates a Config from flags and loads the account file and
// the env file. A missing account file is an error only when named.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()
	var err error

	cfg.Verbose = getVerboseFlag(cmd)
	if cfg.LogFile, err = flags.GetString("log-file"); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
		return nil, err
	}

	lang, err := flags.GetString("lang")
	if err != nil {
		return nil, err
	}
	if cfg.Lang, err = model.ParseLang(lang); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.Transport, err = flags.GetString("transport"); err != nil {
		return nil, err
	}
	if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
		return nil, err
	}
	if cfg.UseTor, err = flags.GetBool("tor"); err != nil {
		return nil, err
	}
	if cfg.TorStartupTimeout, err = flags.GetDuration("tor-timeout"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
		return nil, err
	}
	deviceID, err := flags.GetString("device-id")
	if err != nil {
		return nil, err
	}
	if deviceID != "" {
		cfg.DeviceID = deviceID
	}
	if cfg.QRPollInterval, err = flags.GetDuration("qr-interval"); err != nil {
		return nil, err
	}
	noDB, err := flags.GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.ShowTokens, err = flags.GetBool("show-tokens"); err != nil {
		return nil, err
	}

	if cfg.EnvFile, err = flags.GetString("env-file"); err != nil {
		return nil, err
	}
	if err := config.LoadEnvFile(cfg.EnvFile); err != nil {
		return nil, err
	}

	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if err := loadAccounts(cfg); err != nil {
		return nil, err
	}

	// The file's default language applies unless --lang was given.
	if cfg.Accounts.Defaults.Lang != "" && !flags.Changed("lang") {
		if cfg.Lang, err = model.ParseLang(cfg.Accounts.Defaults.Lang); err != nil {
			return nil, fmt.Errorf("account file defaults: %w", err)
		}
	}
	return cfg, nil
}

// loadAccounts fills cfg.Accounts, with an empty file when none is found.
func loadAccounts(cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case path != "":
		f, err := config.LoadConfigFile(path)
		if err != nil {
			return fmt.Errorf("failed to load account file %s: %w", path, err)
		}
		cfg.Accounts = f
	case cfg.ConfigFilePath != "":
		return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.Accounts = &config.File{}
	}
	return nil
}
