// Package seal protects values round-tripped through hidden form fields. A
// sealed token is either signed (readable, tamper evident) or encrypted.
package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrInvalidToken reports a token that is not in the expected format.
	ErrInvalidToken = errors.New("seal: invalid token")
	// ErrSignatureMismatch reports a token whose signature does not verify.
	ErrSignatureMismatch = errors.New("seal: signature mismatch")
)

const signatureSize = 16

// Option configures a Sealer.
type Option func(*Sealer)

// WithEncryption makes tokens opaque using AES-256-GCM instead of signing.
func WithEncryption() Option {
	return func(s *Sealer) {
		s.encrypt = true
	}
}

// Sealer seals and opens values. It is safe for concurrent use.
type Sealer struct {
	key     []byte
	gcm     cipher.AEAD
	encrypt bool
}

// New creates a Sealer. Keys shorter than 32 bytes are stretched with
// SHA-256; an empty key is rejected.
func New(key []byte, opts ...Option) (*Sealer, error) {
	if len(key) == 0 {
		return nil, errors.New("seal: key is required")
	}
	if len(key) < 32 {
		sum := sha256.Sum256(key)
		key = sum[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, fmt.Errorf("seal: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("seal: create gcm: %w", err)
	}

	s := &Sealer{key: key, gcm: gcm}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Encrypted reports whether tokens are encrypted rather than signed.
func (s *Sealer) Encrypted() bool { return s.encrypt }

// Seal encodes v with msgpack and protects it.
func (s *Sealer) Seal(v any) (string, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("seal: encode: %w", err)
	}
	if s.encrypt {
		return s.encryptPayload(packed)
	}
	return s.sign(packed), nil
}

// Open verifies token and decodes it into v.
func (s *Sealer) Open(token string, v any) error {
	var (
		packed []byte
		err    error
	)
	if s.encrypt {
		packed, err = s.decryptPayload(token)
	} else {
		packed, err = s.verify(token)
	}
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("seal: decode: %w", err)
	}
	return nil
}

// sign produces base64(payload) "." base64(hmac[:16]).
func (s *Sealer) sign(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(s.mac(data))
}

func (s *Sealer) verify(token string) ([]byte, error) {
	payload, signature, ok := strings.Cut(token, ".")
	if !ok || payload == "" || signature == "" {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidToken)
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrInvalidToken, err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %v", ErrInvalidToken, err)
	}

	if !hmac.Equal(sig, s.mac(data)) {
		return nil, ErrSignatureMismatch
	}
	return data, nil
}

func (s *Sealer) mac(data []byte) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(data)
	return mac.Sum(nil)[:signatureSize]
}

func (s *Sealer) encryptPayload(data []byte) (string, error) {
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("seal: nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(s.gcm.Seal(nonce, nonce, data, nil)), nil
}

func (s *Sealer) decryptPayload(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if len(raw) < s.gcm.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrInvalidToken)
	}
	nonce, ciphertext := raw[:s.gcm.NonceSize()], raw[s.gcm.NonceSize():]
	data, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrSignatureMismatch
	}
	return data, nil
}
