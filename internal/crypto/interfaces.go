package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/envelope_service_mock.go -package=mock

// EnvelopeService performs all client-side cryptography of the
// zero-knowledge scheme. It knows nothing about the network, the database,
// or users. Every call carries the master secret explicitly; the service
// holds no key material between calls.
//
// Blob layout produced by Seal and consumed by Open:
//
//	base64( salt(16) ‖ nonce(12) ‖ ciphertext+tag )
//
// Salt and nonce are freshly random on every Seal, so sealing the same
// plaintext twice never yields the same blob.
type EnvelopeService interface {
	// DeriveKey derives a 256-bit symmetric key from the master secret and a
	// 16-byte salt using PBKDF2-HMAC-SHA256 with a fixed high iteration
	// count. Identical inputs always yield the identical key. Returns
	// ErrKeyDerivation if the secret is empty or the salt has the wrong
	// length.
	DeriveKey(masterSecret string, salt []byte) ([]byte, error)

	// Seal encrypts plaintext under a key derived from masterSecret and a
	// fresh random salt, using AES-256-GCM with a fresh random nonce, and
	// returns the self-contained base64 blob.
	Seal(plaintext []byte, masterSecret string) (string, error)

	// Open decodes and decrypts a blob produced by Seal. It returns
	// ErrDecryptionFailed if the master secret is wrong or the blob is
	// corrupted or truncated; it never returns partially-decrypted data.
	Open(blob string, masterSecret string) ([]byte, error)

	// GenerateSecret returns a cryptographically-random printable string of
	// the given length, suitable for suggesting strong passwords to a
	// human. It is not used internally by Seal or Open.
	GenerateSecret(length int) (string, error)
}
