package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// AES-256 key length
	keyLength = 32
	// GCM nonce length
	nonceLength = 12
)

// ErrDecryptionFailed is returned when a ciphertext cannot be decrypted,
// either because the blob is malformed or because it was sealed with a
// different key. Callers must be able to tell this apart from an empty
// secret, so Decrypt never returns garbage on failure.
var ErrDecryptionFailed = errors.New("failed to decrypt value")

// fixedMask is the run of dots used by Mask. Display only, never persisted.
const fixedMask = "••••••••"

// Cipher encrypts and decrypts individual secret values with a single
// process-wide AES-256-GCM key. It is constructed once at startup and
// passed down explicitly; a bad key is a configuration error, not a
// per-call one.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a Cipher from a raw 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("invalid key length: must be %d bytes for AES-256, got %d", keyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// NewCipherFromBase64 decodes a base64-encoded key and creates a Cipher
// from it. This is the form the key takes in the environment.
func NewCipherFromBase64(encodedKey string) (*Cipher, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encryption key: %w", err)
	}
	return NewCipher(key)
}

// Encrypt seals plainText with a fresh random nonce and returns
// base64(nonce || ciphertext). Two encryptions of the same value produce
// different blobs.
func (c *Cipher) Encrypt(plainText string) (string, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plainText), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, sealed...)), nil
}

// Decrypt reverses Encrypt. A malformed blob, a truncated nonce, or an
// authentication failure (wrong key, corrupted data) all yield
// ErrDecryptionFailed.
func (c *Cipher) Decrypt(cipherTextBase64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(cipherTextBase64)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrDecryptionFailed, err)
	}
	if len(raw) < nonceLength {
		return "", fmt.Errorf("%w: blob too short to contain nonce", ErrDecryptionFailed)
	}

	nonce, sealed := raw[:nonceLength], raw[nonceLength:]
	plainText, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return string(plainText), nil
}

// Mask returns a display-only masked form of a value: a fixed run of dots
// for values of 8 characters or fewer, otherwise the first and last four
// characters around the mask. Pure function; the result is never persisted.
func Mask(value string) string {
	if len(value) <= 8 {
		return fixedMask
	}
	return value[:4] + fixedMask + value[len(value)-4:]
}
