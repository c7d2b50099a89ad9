package ds

import (
	"crypto/md5" //nolint:gosec // the server checks an MD5 digest
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/hoyoauth/internal/model"
)

const (
	nonceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	nonceLength   = 6

	// MinNumericNonce and MaxNumericNonce bound the integer nonce, inclusive.
	MinNumericNonce = 100000
	MaxNumericNonce = 200000

	geetestQuery = "is_high=false"
)

// Signer produces ds signatures. The zero value is not usable; use New.
// A Signer is safe for concurrent use as long as its clock and random
// source are.
type Signer struct {
	now  func() time.Time
	intn func(n int) int
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

// WithRand overrides the random source. intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(s *Signer) {
		s.intn = intn
	}
}

// New creates a Signer using the wall clock and math/rand/v2.
func New(opts ...Option) *Signer {
	s := &Signer{
		now:  time.Now,
		intn: rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign computes the bare variant: md5("salt=<s>&t=<t>&r=<r>").
func (s *Signer) Sign(salt Salt) string {
	t := s.now().Unix()
	r := s.alphanumericNonce()
	return token(t, r, fmt.Sprintf("salt=%s&t=%d&r=%s", salt, t, r))
}

// SignExtended computes the body- and query-bound variant with a numeric nonce.
// Query pairs are joined as k=v with '&' in ascending key order.
func (s *Signer) SignExtended(salt Salt, body string, query map[string]string) string {
	t := s.now().Unix()
	r := strconv.Itoa(s.numericNonce())
	return token(t, r, fmt.Sprintf("salt=%s&t=%d&r=%s&b=%s&q=%s", salt, t, r, body, CanonicalQuery(query)))
}

// SignPassport signs a Chinese passport request body.
func (s *Signer) SignPassport(body string) string {
	t := s.now().Unix()
	r := s.alphanumericNonce()
	return token(t, r, fmt.Sprintf("salt=%s&t=%d&r=%s&b=%s&q=", SaltCNPassport, t, r, body))
}

// SignGeetest signs a Geetest verification request for a region.
func (s *Signer) SignGeetest(region model.Region) string {
	t := s.now().Unix()
	r := strconv.Itoa(s.numericNonce())
	return token(t, r, fmt.Sprintf("salt=%s&t=%d&r=%s&b=&q=%s", SaltForRegion(region), t, r, geetestQuery))
}

// CanonicalQuery joins query pairs as k=v with '&', keys ascending.
func CanonicalQuery(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+query[k])
	}
	return strings.Join(pairs, "&")
}

func (s *Signer) alphanumericNonce() string {
	b := make([]byte, nonceLength)
	for i := range b {
		b[i] = nonceAlphabet[s.intn(len(nonceAlphabet))]
	}
	return string(b)
}

func (s *Signer) numericNonce() int {
	return MinNumericNonce + s.intn(MaxNumericNonce-MinNumericNonce+1)
}

func token(t int64, r, canonical string) string {
	sum := md5.Sum([]byte(canonical)) //nolint:gosec // protocol digest
	return fmt.Sprintf("%d,%s,%s", t, r, hex.EncodeToString(sum[:]))
}
