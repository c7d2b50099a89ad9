package model

import (
	"fmt"
	"strings"
)

const unknownName = "unknown"

// Region selects the endpoint family: HoYoLAB for Overseas, miHoYo for Chinese.
// The region decides the RSA key, the signing salt and the base URLs.
type Region int

const (
	// RegionOverseas is the global HoYoLAB service.
	RegionOverseas Region = iota
	// RegionChinese is the mainland miHoYo/miyoushe service.
	RegionChinese
)

// String returns the canonical lower-case region name.
func (r Region) String() string {
	switch r {
	case RegionOverseas:
		return "overseas"
	case RegionChinese:
		return "chinese"
	default:
		return unknownName
	}
}

// ParseRegion parses a region name. Common aliases ("os", "global", "cn",
// "china") are accepted.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overseas", "os", "global":
		return RegionOverseas, nil
	case "chinese", "cn", "china":
		return RegionChinese, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRegion, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Region) UnmarshalText(text []byte) error {
	parsed, err := ParseRegion(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// LoginKind identifies which login flow produced a session.
type LoginKind int

const (
	// LoginKindWeb is the overseas account/password web login.
	LoginKindWeb LoginKind = iota
	// LoginKindCNWeb is the Chinese passport web login.
	LoginKindCNWeb
	// LoginKindApp is the overseas app login that yields an stoken.
	LoginKindApp
	// LoginKindMobile is the Chinese SMS one-time-password login.
	LoginKindMobile
	// LoginKindQRCode is the Chinese QR code login.
	LoginKindQRCode
)

// loginKindNames maps kinds to their canonical names.
var loginKindNames = map[LoginKind]string{
	LoginKindWeb:    "web",
	LoginKindCNWeb:  "cn_web",
	LoginKindApp:    "app",
	LoginKindMobile: "mobile",
	LoginKindQRCode: "qrcode",
}

// String returns the canonical login kind name.
func (k LoginKind) String() string {
	if name, ok := loginKindNames[k]; ok {
		return name
	}
	return unknownName
}

// ParseLoginKind parses a login kind name.
func ParseLoginKind(s string) (LoginKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "qr" {
		return LoginKindQRCode, nil
	}
	for kind, n := range loginKindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLoginKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k LoginKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *LoginKind) UnmarshalText(text []byte) error {
	parsed, err := ParseLoginKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// PasswordKind returns the password login kind used in a region.
func PasswordKind(r Region) LoginKind {
	if r == RegionChinese {
		return LoginKindCNWeb
	}
	return LoginKindWeb
}
