package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/hoyoauth/internal/config"
	"github.com/nao1215/hoyoauth/internal/model"
	"github.com/nao1215/hoyoauth/internal/pipeline"
)

// defaultPasswordEnv holds the password of accounts given by flags.
const defaultPasswordEnv = "HOYOAUTH_PASSWORD"

var errNoAccount = errors.New("no account given (name one from the account file or use --account, --mobile or --kind qrcode)")

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [name]",
		Short: "Log in to one account and print its session",
		Long: `Login logs in to one account and prints the issued session cookies.

The account is either an entry of the account file, chosen by name, or
given with flags. Passwords are read from an environment variable, never
from the command line.

Examples:
  # Log in with the "main" entry of .hoyoauth
  hoyoauth login main

  # Overseas web login without an account file
  HOYOAUTH_PASSWORD=... hoyoauth login --account someone@example.com

  # Chinese SMS login
  hoyoauth login --region chinese --kind mobile --mobile 13800138000

  # Chinese QR code login, JSON report with clear tokens
  hoyoauth login --region chinese --kind qrcode --json --show-tokens`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLoginCmd,
	}

	addConnectionFlags(cmd)
	addReportFlags(cmd)

	cmd.Flags().StringP("region", "r", "", "overseas or chinese (default: account file default, then overseas)")
	cmd.Flags().StringP("kind", "k", "", "web, app, cn_web, mobile or qrcode (default: password login of the region)")
	cmd.Flags().StringP("account", "a", "", "Account name or email for password logins")
	cmd.Flags().String("password-env", defaultPasswordEnv, "Environment variable holding the password")
	cmd.Flags().String("mobile", "", "Mobile number for SMS logins")

	return cmd
}

func runLoginCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	account, err := selectAccount(cmd, cfg, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := setupRuntime(ctx, cfg, newStdioSolver(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	p := pipeline.DefaultPipeline(env.client, account, env.recorder, pipeline.WithLogger(env.logger))
	r := model.NewLoginReport(account)
	if err := p.Execute(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		env.logger.Error("login pipeline failed", "error", err)
	}

	reports := []*model.LoginReport{r}
	if err := writeReports(cfg, cmd.OutOrStdout(), reports); err != nil {
		return err
	}
	return checkReports(reports)
}

// selectAccount picks the account to log in with: the named file entry,
// then an account built from flags, then the only entry of the file.
func selectAccount(cmd *cobra.Command, cfg *config.Config, args []string) (model.Account, error) {
	if len(args) == 1 {
		return cfg.Accounts.Account(args[0], os.LookupEnv)
	}

	flags := cmd.Flags()
	accountName, err := flags.GetString("account")
	if err != nil {
		return model.Account{}, err
	}
	mobile, err := flags.GetString("mobile")
	if err != nil {
		return model.Account{}, err
	}
	kind, err := flags.GetString("kind")
	if err != nil {
		return model.Account{}, err
	}

	if accountName == "" && mobile == "" && kind == "" {
		if len(cfg.Accounts.Accounts) == 1 {
			return cfg.Accounts.Account(cfg.Accounts.Accounts[0].Name, os.LookupEnv)
		}
		return model.Account{}, errNoAccount
	}

	region, err := flags.GetString("region")
	if err != nil {
		return model.Account{}, err
	}
	passwordEnv, err := flags.GetString("password-env")
	if err != nil {
		return model.Account{}, err
	}

	// Flags are resolved like a one-entry file so that defaults and
	// validation stay the same.
	f := &config.File{
		Defaults: cfg.Accounts.Defaults,
		Accounts: []config.AccountConfig{{
			Name:        "cli",
			Region:      region,
			Kind:        kind,
			Account:     accountName,
			PasswordEnv: passwordEnv,
			Mobile:      mobile,
		}},
	}
	a, err := f.Account("cli", os.LookupEnv)
	if err != nil {
		return model.Account{}, err
	}
	a.Name = ""
	return a, nil
}
