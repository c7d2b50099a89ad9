package credential

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/hoyoauth/internal/model"
)

// Encryption errors. Both are configuration errors and never retryable.
var (
	// ErrInvalidKey is returned when a PEM block is not an RSA public key.
	ErrInvalidKey = errors.New("invalid RSA public key")

	// ErrEncrypt is returned when RSA encryption fails, e.g. for plaintext
	// longer than the key allows.
	ErrEncrypt = errors.New("credential encryption failed")
)

// Encryptor holds one public key per region.
type Encryptor struct {
	keys   map[model.Region]*rsa.PublicKey
	random io.Reader
}

// Option configures an Encryptor.
type Option func(*Encryptor)

// WithRandom replaces crypto/rand as the padding source.
func WithRandom(r io.Reader) Option {
	return func(e *Encryptor) {
		e.random = r
	}
}

// NewEncryptor parses one PEM-encoded PKIX public key per region.
func NewEncryptor(pems map[model.Region]string, opts ...Option) (*Encryptor, error) {
	e := &Encryptor{
		keys:   make(map[model.Region]*rsa.PublicKey, len(pems)),
		random: rand.Reader,
	}
	for region, p := range pems {
		key, err := parsePublicKey(p)
		if err != nil {
			return nil, fmt.Errorf("%s key: %w", region, err)
		}
		e.keys[region] = key
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Default returns an Encryptor with the built-in server keys.
func Default() (*Encryptor, error) {
	return NewEncryptor(map[model.Region]string{
		model.RegionOverseas: OverseasPublicKey,
		model.RegionChinese:  ChinesePublicKey,
	})
}

// Encrypt returns base64(RSA-PKCS1v15(plaintext)) under the region's key.
func (e *Encryptor) Encrypt(plaintext string, region model.Region) (string, error) {
	key, ok := e.keys[region]
	if !ok {
		return "", fmt.Errorf("%w: no key for region %s", ErrInvalidKey, region)
	}
	ciphertext, err := rsa.EncryptPKCS1v15(e.random, key, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncrypt, err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func parsePublicKey(p string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(p))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block", ErrInvalidKey)
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not RSA", ErrInvalidKey, parsed)
	}
	return key, nil
}
