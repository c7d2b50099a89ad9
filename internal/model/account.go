package model

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Account is one set of credentials to log in with.
// Password and Mobile are secrets and never appear in String or reports.
type Account struct {
	Name     string
	Region   Region
	Kind     LoginKind
	Account  string
	Password string
	Mobile   string
}

// Identifier returns the login identifier: the mobile number for OTP logins,
// the account name otherwise.
func (a Account) Identifier() string {
	if a.Kind == LoginKindMobile {
		return a.Mobile
	}
	return a.Account
}

// String returns the display name or a masked identifier.
func (a Account) String() string {
	if a.Name != "" {
		return a.Name
	}
	return MaskIdentifier(a.Identifier())
}

// MaskIdentifier hides most of an email address, user name or phone number.
// "someone@example.com" becomes "so***@example.com".
func MaskIdentifier(s string) string {
	if s == "" {
		return ""
	}
	local, domain, isEmail := strings.Cut(s, "@")
	runes := []rune(local)
	keep := 2
	if len(runes) <= keep {
		keep = 1
	}
	masked := string(runes[:keep]) + "***"
	if isEmail {
		return masked + "@" + domain
	}
	if len(runes) > 6 {
		masked += string(runes[len(runes)-2:])
	}
	return masked
}

// Fingerprint identifies the account without revealing it: a hex SHA3-256
// digest of the region and identifier, truncated to 16 bytes. The same
// credentials always give the same fingerprint.
func (a Account) Fingerprint() string {
	sum := sha3.Sum256([]byte(a.Region.String() + ":" + a.Identifier()))
	return hex.EncodeToString(sum[:16])
}
