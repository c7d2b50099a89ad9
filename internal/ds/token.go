package ds

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedToken is returned by ParseToken for strings that are not "t,r,h".
var ErrMalformedToken = errors.New("malformed ds token")

// Token is a parsed signature.
type Token struct {
	Timestamp int64
	Nonce     string
	Digest    string
}

// ParseToken splits a ds header value into its parts.
func ParseToken(s string) (Token, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Token{}, ErrMalformedToken
	}
	t, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Token{}, ErrMalformedToken
	}
	if len(parts[2]) != 32 {
		return Token{}, ErrMalformedToken
	}
	return Token{Timestamp: t, Nonce: parts[1], Digest: parts[2]}, nil
}
