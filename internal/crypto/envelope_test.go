package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	svc := NewEnvelopeService()

	secret := "correct horse battery staple"
	salt := bytes.Repeat([]byte{0xAB}, 16)

	k1, err := svc.DeriveKey(secret, salt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, err := svc.DeriveKey(secret, salt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if len(k1) != 32 {
		t.Fatalf("key length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected identical keys for same secret+salt")
	}
}

func TestDeriveKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	svc := NewEnvelopeService()

	secret := "same secret"
	salt1 := bytes.Repeat([]byte{0x01}, 16)
	salt2 := bytes.Repeat([]byte{0x02}, 16)

	k1, err := svc.DeriveKey(secret, salt1)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, err := svc.DeriveKey(secret, salt2)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if bytes.Equal(k1, k2) {
		t.Fatalf("expected different keys for different salts")
	}
}

func TestDeriveKey_MalformedInput(t *testing.T) {
	svc := NewEnvelopeService()

	if _, err := svc.DeriveKey("", bytes.Repeat([]byte{0x01}, 16)); !errors.Is(err, ErrKeyDerivation) {
		t.Fatalf("empty secret: got %v, want ErrKeyDerivation", err)
	}
	if _, err := svc.DeriveKey("secret", []byte{0x01, 0x02}); !errors.Is(err, ErrKeyDerivation) {
		t.Fatalf("short salt: got %v, want ErrKeyDerivation", err)
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	svc := NewEnvelopeService()

	plaintext := []byte(`{"username":"a@x.com","password":"s3cr3t"}`)
	secret := "correct-horse"

	blob, err := svc.Seal(plaintext, secret)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if blob == string(plaintext) {
		t.Fatalf("blob must not equal plaintext")
	}

	got, err := svc.Open(blob, secret)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round-trip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestSeal_NonDeterministic(t *testing.T) {
	svc := NewEnvelopeService()

	plaintext := []byte("same plaintext")
	secret := "same secret"

	b1, err := svc.Seal(plaintext, secret)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	b2, err := svc.Seal(plaintext, secret)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if b1 == b2 {
		t.Fatalf("expected two seals of identical input to differ")
	}
}

func TestOpen_WrongSecretRejected(t *testing.T) {
	svc := NewEnvelopeService()

	blob, err := svc.Seal([]byte("payload"), "correct-horse")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	_, err = svc.Open(blob, "wrong-horse")
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("got %v, want ErrDecryptionFailed", err)
	}
}

// Flipping any single byte of the blob must fail authentication: salt and
// nonce corruption change the derived key or GCM stream, ciphertext and tag
// corruption break the tag check.
func TestOpen_TamperedBlobRejected(t *testing.T) {
	svc := NewEnvelopeService()

	secret := "tamper-secret"
	blob, err := svc.Seal([]byte("sensitive content"), secret)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		t.Fatalf("decode blob: %v", err)
	}

	for i := range raw {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01

		_, err := svc.Open(base64.StdEncoding.EncodeToString(tampered), secret)
		if !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("byte %d: got %v, want ErrDecryptionFailed", i, err)
		}
	}
}

func TestOpen_MalformedBlobRejected(t *testing.T) {
	svc := NewEnvelopeService()

	cases := map[string]string{
		"not base64": "%%%not-base-64%%%",
		"empty":      "",
		"truncated":  base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x42}, 10)),
	}

	for name, blob := range cases {
		if _, err := svc.Open(blob, "secret"); !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("%s: got %v, want ErrDecryptionFailed", name, err)
		}
	}
}

func TestGenerateSecret_LengthAndCharset(t *testing.T) {
	svc := NewEnvelopeService()

	s, err := svc.GenerateSecret(24)
	if err != nil {
		t.Fatalf("GenerateSecret error: %v", err)
	}
	if len(s) != 24 {
		t.Fatalf("secret length = %d, want 24", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(secretCharset, r) {
			t.Fatalf("secret contains %q outside charset", r)
		}
	}
}

func TestGenerateSecret_Randomness(t *testing.T) {
	svc := NewEnvelopeService()

	s1, err := svc.GenerateSecret(32)
	if err != nil {
		t.Fatalf("GenerateSecret error: %v", err)
	}
	s2, err := svc.GenerateSecret(32)
	if err != nil {
		t.Fatalf("GenerateSecret error: %v", err)
	}
	if s1 == s2 {
		t.Fatalf("expected secrets to differ")
	}
}

func TestGenerateSecret_RejectsNonPositiveLength(t *testing.T) {
	svc := NewEnvelopeService()

	if _, err := svc.GenerateSecret(0); !errors.Is(err, ErrInvalidSecretLength) {
		t.Fatalf("got %v, want ErrInvalidSecretLength", err)
	}
}
