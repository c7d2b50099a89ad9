package model

import "testing"

func TestMaskIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "someone@example.com", want: "so***@example.com"},
		{in: "ab@example.com", want: "a***@example.com"},
		{in: "traveler", want: "tr***er"},
		{in: "abc", want: "ab***"},
		{in: "13800138000", want: "13***00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := MaskIdentifier(tt.in); got != tt.want {
				t.Errorf("MaskIdentifier(%q) = %q, expected %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAccountIdentifier(t *testing.T) {
	t.Parallel()

	web := Account{Kind: LoginKindWeb, Account: "someone@example.com", Mobile: "13800138000"}
	if got := web.Identifier(); got != "someone@example.com" {
		t.Errorf("web identifier = %q", got)
	}
	mobile := Account{Kind: LoginKindMobile, Account: "someone@example.com", Mobile: "13800138000"}
	if got := mobile.Identifier(); got != "13800138000" {
		t.Errorf("mobile identifier = %q", got)
	}
}

func TestAccountString(t *testing.T) {
	t.Parallel()

	named := Account{Name: "main", Account: "someone@example.com", Password: "secret"}
	if got := named.String(); got != "main" {
		t.Errorf("String() = %q, expected name", got)
	}
	unnamed := Account{Account: "someone@example.com", Password: "secret"}
	if got := unnamed.String(); got != "so***@example.com" {
		t.Errorf("String() = %q, expected masked identifier", got)
	}
}

func TestAccountFingerprint(t *testing.T) {
	t.Parallel()

	a := Account{Region: RegionOverseas, Kind: LoginKindWeb, Account: "someone@example.com", Password: "one"}
	b := Account{Region: RegionOverseas, Kind: LoginKindApp, Account: "someone@example.com", Password: "two"}
	cn := Account{Region: RegionChinese, Kind: LoginKindCNWeb, Account: "someone@example.com"}

	if len(a.Fingerprint()) != 32 {
		t.Errorf("fingerprint length = %d, expected 32", len(a.Fingerprint()))
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprint should not depend on kind or password")
	}
	if a.Fingerprint() == cn.Fingerprint() {
		t.Error("fingerprint should depend on region")
	}
}
