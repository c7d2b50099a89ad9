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

var errNoAccounts = errors.New("the account file has no accounts (see hoyoauth init)")

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [name...]",
		Short: "Log in to several accounts of the account file",
		Long: `Batch logs in to every account of the account file, or to the named
ones, a few at a time. A failed login does not stop the others.

Examples:
  # Every account, two at a time
  hoyoauth batch

  # Two accounts, one at a time, Markdown report to a file
  hoyoauth batch main alt -b 1 --markdown -o report.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runBatchCmd,
	}

	addConnectionFlags(cmd)
	addReportFlags(cmd)
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency, "Number of concurrent logins")

	return cmd
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	accounts, err := selectAccounts(cfg, args)
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

	bp := pipeline.NewBatchProcessor(
		func(a model.Account) *pipeline.Pipeline {
			return pipeline.DefaultPipeline(env.client, a, env.recorder, pipeline.WithLogger(env.logger))
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(env.logger),
	)

	reports, err := bp.ProcessBatch(ctx, accounts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err := writeReports(cfg, cmd.OutOrStdout(), reports); err != nil {
		return err
	}
	return checkReports(reports)
}

// selectAccounts resolves the named entries, or all of them.
func selectAccounts(cfg *config.Config, names []string) ([]model.Account, error) {
	if len(names) == 0 {
		if len(cfg.Accounts.Accounts) == 0 {
			return nil, errNoAccounts
		}
		return cfg.Accounts.Resolve(os.LookupEnv)
	}

	seen := make(map[string]bool, len(names))
	accounts := make([]model.Account, 0, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", config.ErrDuplicateAccount, name)
		}
		seen[name] = true

		a, err := cfg.Accounts.Account(name, os.LookupEnv)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}
