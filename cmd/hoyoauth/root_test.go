package main

import "testing"

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	if cmd.Use != "hoyoauth" {
		t.Errorf("Use = %q, expected hoyoauth", cmd.Use)
	}
	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("usage and errors should be silenced")
	}

	for _, name := range []string{"verbose", "log-file", "log-json"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %s", name)
		}
	}

	want := map[string]bool{"login": false, "batch": false, "history": false, "init": false, "version": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %s", name)
		}
	}
}

func TestConnectionFlags(t *testing.T) {
	t.Parallel()

	for _, cmdName := range []string{"login", "batch"} {
		t.Run(cmdName, func(t *testing.T) {
			t.Parallel()

			cmd, _, err := NewRootCmd().Find([]string{cmdName})
			if err != nil {
				t.Fatalf("failed to find %s: %v", cmdName, err)
			}
			for _, flag := range []string{
				"config", "env-file", "lang", "timeout", "transport", "proxy", "tor",
				"tor-timeout", "user-agent", "device-id", "qr-interval", "no-db",
				"json", "markdown", "output", "show-tokens",
			} {
				if cmd.Flags().Lookup(flag) == nil {
					t.Errorf("%s: expected flag %s", cmdName, flag)
				}
			}
		})
	}
}
