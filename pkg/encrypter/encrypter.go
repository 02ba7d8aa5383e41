package encrypter

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var (
	ErrMissingKey      = errors.New("encryption key is required")
	ErrMalformedCipher = errors.New("malformed ciphertext")
	hkdfInfo           = []byte("kb-integration/credentials")
)

// Encrypter seals short secrets (repository credentials) for storage.
type Encrypter interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type implEncrypter struct {
	key []byte
}

// New derives a 256-bit key from secret with HKDF-SHA256.
func New(secret string) (Encrypter, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, hkdfInfo), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return &implEncrypter{key: key}, nil
}

// Encrypt returns base64(nonce || XChaCha20-Poly1305 ciphertext).
func (e *implEncrypter) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(e.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (e *implEncrypter) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrMalformedCipher
	}

	aead, err := chacha20poly1305.NewX(e.key)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrMalformedCipher
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCipher, err)
	}
	return string(plain), nil
}
