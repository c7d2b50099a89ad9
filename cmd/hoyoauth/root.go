package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for hoyoauth.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hoyoauth",
		Short: "Log in to HoYoLAB and miyoushe accounts",
		Long: `hoyoauth logs in to HoYoLAB (overseas) and miyoushe (Chinese) accounts
and prints the session cookies the servers issue.

Accounts are read from a .hoyoauth file (see "hoyoauth init"). When the
server asks for a captcha, an email code or an SMS code, hoyoauth asks for
it on the terminal and retries once.

Every attempt is recorded, without passwords or tokens, in an audit
database under the XDG data directory. See "hoyoauth history".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-file", "", "Also write logs to this file (rotated)")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")

	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
