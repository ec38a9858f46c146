// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureNotes Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Envelope format constants. Seal and Open must agree on all of them;
// changing any value is a breaking format change that would require a
// version marker (none exists in v1).
const (
	saltLength  = 16
	nonceLength = 12
	keyLength   = 32 // 256 bits

	// kdfIterations is the PBKDF2 work factor. 100k rounds of HMAC-SHA256
	// keeps derivation under ~100ms on commodity hardware while staying
	// above the OWASP floor for SHA-256.
	kdfIterations = 100_000
)

// secretCharset is the fixed printable alphabet used by GenerateSecret.
const secretCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+-=[]{}|;:,.<>?"

// envelopeService is the private implementation of [EnvelopeService].
type envelopeService struct{}

// NewEnvelopeService constructs a stateless [EnvelopeService].
func NewEnvelopeService() EnvelopeService {
	return &envelopeService{}
}

// DeriveKey implements [EnvelopeService]. It runs PBKDF2-HMAC-SHA256 over
// the master secret with the given salt and returns the 256-bit key. The
// secret and the derived key are never logged or persisted.
func (e *envelopeService) DeriveKey(masterSecret string, salt []byte) ([]byte, error) {
	if masterSecret == "" {
		return nil, fmt.Errorf("%w: empty master secret", ErrKeyDerivation)
	}
	if len(salt) != saltLength {
		return nil, fmt.Errorf("%w: salt length %d, want %d", ErrKeyDerivation, len(salt), saltLength)
	}

	return pbkdf2.Key([]byte(masterSecret), salt, kdfIterations, keyLength, sha256.New), nil
}

// Seal implements [EnvelopeService]. It generates a fresh salt and nonce,
// derives the key, encrypts plaintext with AES-256-GCM (no additional
// associated data), and returns base64(salt ‖ nonce ‖ ciphertext).
func (e *envelopeService) Seal(plaintext []byte, masterSecret string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, err := e.DeriveKey(masterSecret, salt)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, nonceLength)
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// blob = salt || nonce || ciphertext
	blob := make([]byte, 0, saltLength+nonceLength+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [EnvelopeService]. It base64-decodes the blob, splits
// salt, nonce, and ciphertext at fixed offsets, derives the key, and
// decrypts. All failure modes collapse into ErrDecryptionFailed so that a
// caller cannot distinguish a wrong secret from a corrupted blob.
func (e *envelopeService) Open(blob string, masterSecret string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid encoding", ErrDecryptionFailed)
	}

	if len(raw) < saltLength+nonceLength {
		return nil, fmt.Errorf("%w: blob too short", ErrDecryptionFailed)
	}
	salt := raw[:saltLength]
	nonce := raw[saltLength : saltLength+nonceLength]
	ciphertext := raw[saltLength+nonceLength:]

	key, err := e.DeriveKey(masterSecret, salt)
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	// An authentication failure here almost always means the user entered
	// the wrong master secret.
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", ErrDecryptionFailed)
	}

	return plaintext, nil
}

// GenerateSecret implements [EnvelopeService]. It maps CSPRNG bytes onto
// the fixed printable charset.
func (e *envelopeService) GenerateSecret(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidSecretLength, length)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = secretCharset[int(b)%len(secretCharset)]
	}
	return string(out), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
