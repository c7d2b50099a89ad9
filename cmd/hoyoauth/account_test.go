package main

import (
	"errors"
	"testing"

	"github.com/nao1215/hoyoauth/internal/config"
	"github.com/nao1215/hoyoauth/internal/model"
)

func configWith(f *config.File) *config.Config {
	cfg := config.NewConfig()
	cfg.Accounts = f
	return cfg
}

var twoAccounts = &config.File{
	Defaults: config.Defaults{Region: "overseas"},
	Accounts: []config.AccountConfig{
		{Name: "main", Account: "someone@example.com", PasswordEnv: "HOYOAUTH_TEST_MAIN_PASSWORD"},
		{Name: "alt", Region: "chinese", Kind: "mobile", Mobile: "13800138000"},
	},
}

func TestSelectAccount(t *testing.T) {
	t.Setenv("HOYOAUTH_TEST_MAIN_PASSWORD", "hunter2")
	t.Setenv(defaultPasswordEnv, "from-flags")

	t.Run("named entry", func(t *testing.T) {
		a, err := selectAccount(NewLoginCmd(), configWith(twoAccounts), []string{"main"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Name != "main" || a.Password != "hunter2" || a.Kind != model.LoginKindWeb {
			t.Errorf("unexpected account: %+v", a)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := selectAccount(NewLoginCmd(), configWith(twoAccounts), []string{"nobody"})
		if !errors.Is(err, config.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("account from flags", func(t *testing.T) {
		cmd := NewLoginCmd()
		if err := cmd.Flags().Set("account", "flag@example.com"); err != nil {
			t.Fatal(err)
		}
		a, err := selectAccount(cmd, configWith(&config.File{}), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Account != "flag@example.com" || a.Password != "from-flags" {
			t.Errorf("unexpected account: %+v", a)
		}
		if a.Region != model.RegionOverseas || a.Name != "" {
			t.Errorf("unexpected region or name: %+v", a)
		}
	})

	t.Run("qr code login from flags", func(t *testing.T) {
		cmd := NewLoginCmd()
		for flag, value := range map[string]string{"region": "chinese", "kind": "qrcode"} {
			if err := cmd.Flags().Set(flag, value); err != nil {
				t.Fatal(err)
			}
		}
		a, err := selectAccount(cmd, configWith(&config.File{}), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Kind != model.LoginKindQRCode || a.Region != model.RegionChinese {
			t.Errorf("unexpected account: %+v", a)
		}
	})

	t.Run("only entry of the file", func(t *testing.T) {
		f := &config.File{Accounts: twoAccounts.Accounts[1:]}
		a, err := selectAccount(NewLoginCmd(), configWith(f), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Name != "alt" {
			t.Errorf("expected alt, got %q", a.Name)
		}
	})

	t.Run("ambiguous file", func(t *testing.T) {
		_, err := selectAccount(NewLoginCmd(), configWith(twoAccounts), nil)
		if !errors.Is(err, errNoAccount) {
			t.Errorf("expected errNoAccount, got %v", err)
		}
	})
}

func TestSelectAccounts(t *testing.T) {
	t.Setenv("HOYOAUTH_TEST_MAIN_PASSWORD", "hunter2")

	t.Run("all entries", func(t *testing.T) {
		accounts, err := selectAccounts(configWith(twoAccounts), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 2 {
			t.Errorf("expected 2 accounts, got %d", len(accounts))
		}
	})

	t.Run("named entries keep order", func(t *testing.T) {
		accounts, err := selectAccounts(configWith(twoAccounts), []string{"alt", "main"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 2 || accounts[0].Name != "alt" || accounts[1].Name != "main" {
			t.Errorf("unexpected accounts: %+v", accounts)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := selectAccounts(configWith(twoAccounts), []string{"main", "main"})
		if !errors.Is(err, config.ErrDuplicateAccount) {
			t.Errorf("expected ErrDuplicateAccount, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := selectAccounts(configWith(&config.File{}), nil)
		if !errors.Is(err, errNoAccounts) {
			t.Errorf("expected errNoAccounts, got %v", err)
		}
	})
}
