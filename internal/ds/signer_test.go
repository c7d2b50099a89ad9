package ds

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/hoyoauth/internal/model"
)

var fixedTime = time.Unix(1700000000, 0)

// sequence returns a rand func that yields vals in order and then repeats the last one.
func sequence(vals ...int) func(int) int {
	var mu sync.Mutex
	i := 0
	return func(int) int {
		mu.Lock()
		defer mu.Unlock()
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func fixedSigner(vals ...int) *Signer {
	return New(WithClock(func() time.Time { return fixedTime }), WithRand(sequence(vals...)))
}

func TestSignGolden(t *testing.T) {
	t.Parallel()

	// indices 26..31 of the alphabet spell "abcdef".
	testCases := []struct {
		name   string
		signer *Signer
		sign   func(*Signer) string
		want   string
	}{
		{
			name:   "bare",
			signer: fixedSigner(26, 27, 28, 29, 30, 31),
			sign:   func(s *Signer) string { return s.Sign(SaltOverseas) },
			want:   "1700000000,abcdef,52ac4768378434146675f980be7d092a",
		},
		{
			name:   "extended",
			signer: fixedSigner(0),
			sign: func(s *Signer) string {
				return s.SignExtended(SaltChinese, `{"a":1}`, map[string]string{"y": "2", "x": "1"})
			},
			want: "1700000000,100000,17985e608d306626c7d69ff93af67f0c",
		},
		{
			name:   "passport",
			signer: fixedSigner(26, 27, 28, 29, 30, 31),
			sign:   func(s *Signer) string { return s.SignPassport("{}") },
			want:   "1700000000,abcdef,b948ca4c0e4e21b862329bff00102463",
		},
		{
			name:   "geetest",
			signer: fixedSigner(MaxNumericNonce - MinNumericNonce),
			sign:   func(s *Signer) string { return s.SignGeetest(model.RegionOverseas) },
			want:   "1700000000,200000,77ff05adcbce82384fed7e991e148e23",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.sign(tc.signer); got != tc.want {
				t.Errorf("got %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestSignNonceShape(t *testing.T) {
	t.Parallel()

	s := New()
	for range 200 {
		tok, err := ParseToken(s.Sign(SaltAppLogin))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tok.Nonce) != 6 {
			t.Fatalf("nonce %q is not 6 characters", tok.Nonce)
		}
		for _, c := range tok.Nonce {
			if !strings.ContainsRune(nonceAlphabet, c) {
				t.Fatalf("nonce %q has non-alphanumeric %q", tok.Nonce, c)
			}
		}
		if tok.Digest != strings.ToLower(tok.Digest) {
			t.Fatalf("digest %q is not lowercase", tok.Digest)
		}

		ext, err := ParseToken(s.SignExtended(SaltChinese, "", nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n, err := strconv.Atoi(ext.Nonce)
		if err != nil || n < MinNumericNonce || n > MaxNumericNonce {
			t.Fatalf("numeric nonce %q out of range", ext.Nonce)
		}
	}
}

func TestSignTimestampIsCurrent(t *testing.T) {
	t.Parallel()

	before := time.Now().Unix()
	tok, err := ParseToken(New().Sign(SaltOverseas))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Timestamp < before || tok.Timestamp > time.Now().Unix() {
		t.Errorf("timestamp %d is not the current second", tok.Timestamp)
	}
}

func TestCanonicalQuery(t *testing.T) {
	t.Parallel()

	if got := CanonicalQuery(nil); got != "" {
		t.Errorf("got %q for empty query", got)
	}
	if got := CanonicalQuery(map[string]string{"role_id": "1", "server": "cn_gf01"}); got != "role_id=1&server=cn_gf01" {
		t.Errorf("unexpected query %q", got)
	}
}

func TestSaltForRegion(t *testing.T) {
	t.Parallel()

	if SaltForRegion(model.RegionOverseas) != SaltOverseas || SaltForRegion(model.RegionChinese) != SaltChinese {
		t.Error("unexpected region salt")
	}
}

func TestParseTokenRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "1,2", "x,abc,52ac4768378434146675f980be7d092a", "1,abc,short"} {
		if _, err := ParseToken(s); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("%q: expected ErrMalformedToken, got %v", s, err)
		}
	}
}
