package crypto

import "errors"

// Sentinel errors returned by the envelope service. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrKeyDerivation is returned when key-derivation input is malformed:
	// an empty master secret or a salt of the wrong length. This indicates a
	// programming error at the call site, not a user-facing condition.
	ErrKeyDerivation = errors.New("malformed key derivation input")

	// ErrDecryptionFailed is returned when an envelope cannot be opened:
	// wrong master secret, corrupted blob, or truncated input. The caller
	// may recover by asking the user to re-enter the master secret.
	ErrDecryptionFailed = errors.New("envelope decryption failed")

	// ErrInvalidSecretLength is returned when a secret of non-positive
	// length is requested from the generator.
	ErrInvalidSecretLength = errors.New("secret length must be positive")
)
