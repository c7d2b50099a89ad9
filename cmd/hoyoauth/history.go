package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/hoyoauth/internal/config"
	"github.com/nao1215/hoyoauth/internal/database"
	"github.com/nao1215/hoyoauth/internal/model"
	"github.com/nao1215/hoyoauth/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [name]",
		Short: "Show recorded login attempts",
		Long: `History shows the audit log of login attempts.

Without a name it prints one line per account. With a name it lists that
account's attempts, newest first.

Examples:
  # Per-account summary
  hoyoauth history

  # Last 10 failed attempts of "main"
  hoyoauth history main -n 10 --outcome failure

  # Delete attempts older than 90 days
  hoyoauth history --prune 2160h`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of attempts to list (0 lists all)")
	cmd.Flags().String("outcome", "", "Only list attempts with this outcome (success, challenge, failure, cancelled)")
	cmd.Flags().Duration("since", 0, "Only list attempts newer than this")
	cmd.Flags().Duration("prune", 0, "Delete attempts older than this and exit")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the audit database")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	outcome, err := flags.GetString("outcome")
	if err != nil {
		return err
	}
	since, err := flags.GetDuration("since")
	if err != nil {
		return err
	}
	prune, err := flags.GetDuration("prune")
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if errors.Is(err, database.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded attempts.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if prune > 0 {
		n, err := db.Prune(ctx, time.Now().Add(-prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d attempt(s) older than %s.\n", n, prune)
		return nil
	}

	if len(args) == 0 && outcome == "" && since == 0 {
		summaries, err := db.Summaries(ctx)
		if err != nil {
			return err
		}
		return report.WriteSummaries(out, summaries)
	}

	f := database.Filter{Outcome: model.Outcome(outcome), Limit: limit}
	if len(args) == 1 {
		f.Name = args[0]
	}
	if since > 0 {
		f.Since = time.Now().Add(-since)
	}
	if err := validOutcome(f.Outcome); err != nil {
		return err
	}

	attempts, err := db.ListAttempts(ctx, f)
	if err != nil {
		return err
	}
	return report.WriteHistory(out, attempts)
}

func validOutcome(o model.Outcome) error {
	switch o {
	case "", model.OutcomeSuccess, model.OutcomeChallenge, model.OutcomeFailure, model.OutcomeCancelled:
		return nil
	default:
		return fmt.Errorf("unknown outcome %q", o)
	}
}
