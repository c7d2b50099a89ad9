package config

import (
	"errors"
	"testing"

	"github.com/nao1215/hoyoauth/internal/model"
)

func env(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFileResolve(t *testing.T) {
	t.Parallel()

	f := &File{
		Defaults: Defaults{Region: "overseas"},
		Accounts: []AccountConfig{
			{Name: "main", Account: "someone@example.com", PasswordEnv: "MAIN_PASSWORD"},
			{Name: "alt", Kind: "app", Account: "alt@example.com", PasswordEnv: "ALT_PASSWORD"},
			{Name: "cn", Region: "cn", Account: "cn-user", PasswordEnv: "CN_PASSWORD"},
			{Name: "phone", Region: "china", Kind: "mobile", Mobile: "13800000000"},
			{Region: "cn", Kind: "qr"},
		},
	}
	accounts, err := f.Resolve(env(map[string]string{
		"MAIN_PASSWORD": "p1",
		"ALT_PASSWORD":  "p2",
		"CN_PASSWORD":   "p3",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.Account{
		{Name: "main", Region: model.RegionOverseas, Kind: model.LoginKindWeb, Account: "someone@example.com", Password: "p1"},
		{Name: "alt", Region: model.RegionOverseas, Kind: model.LoginKindApp, Account: "alt@example.com", Password: "p2"},
		{Name: "cn", Region: model.RegionChinese, Kind: model.LoginKindCNWeb, Account: "cn-user", Password: "p3"},
		{Name: "phone", Region: model.RegionChinese, Kind: model.LoginKindMobile, Mobile: "13800000000"},
		{Name: "account-5", Region: model.RegionChinese, Kind: model.LoginKindQRCode},
	}
	if len(accounts) != len(want) {
		t.Fatalf("expected %d accounts, got %d", len(want), len(accounts))
	}
	for i := range want {
		if accounts[i] != want[i] {
			t.Errorf("account %d = %+v, expected %+v", i, accounts[i], want[i])
		}
	}
}

func TestFileResolveErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []AccountConfig
		wantErr error
	}{
		{
			name:    "password variable unset",
			entries: []AccountConfig{{Name: "a", Account: "x", PasswordEnv: "UNSET"}},
			wantErr: ErrPasswordNotSet,
		},
		{
			name:    "no password variable",
			entries: []AccountConfig{{Name: "a", Account: "x"}},
			wantErr: ErrIncompleteAccount,
		},
		{
			name:    "mobile without number",
			entries: []AccountConfig{{Name: "a", Region: "cn", Kind: "mobile"}},
			wantErr: ErrIncompleteAccount,
		},
		{
			name:    "duplicate names",
			entries: []AccountConfig{{Name: "a", Kind: "qr"}, {Name: "a", Kind: "qr"}},
			wantErr: ErrDuplicateAccount,
		},
		{
			name:    "unknown region",
			entries: []AccountConfig{{Name: "a", Region: "mars", Kind: "qr"}},
			wantErr: model.ErrUnknownRegion,
		},
		{
			name:    "unknown kind",
			entries: []AccountConfig{{Name: "a", Kind: "fax"}},
			wantErr: model.ErrUnknownLoginKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &File{Accounts: tt.entries}
			if _, err := f.Resolve(env(nil)); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFileAccount(t *testing.T) {
	t.Parallel()

	f := &File{Accounts: []AccountConfig{{Name: "main", Account: "x", PasswordEnv: "P"}}}

	a, err := f.Account("main", env(map[string]string{"P": "secret"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Password != "secret" || a.Kind != model.LoginKindWeb {
		t.Errorf("unexpected account: %+v", a)
	}

	if _, err := f.Account("other", env(nil)); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
