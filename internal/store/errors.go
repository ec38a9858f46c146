package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when an operation targets a vault record
	// that does not exist or has been tombstoned.
	ErrRecordNotFound = errors.New("vault record not found")

	// ErrRevisionConflict is returned when an optimistic-concurrency check
	// fails: the revision supplied by the caller does not match the current
	// revision stored in the database, meaning the record was modified since
	// the caller last read it. The caller must re-read and retry.
	ErrRevisionConflict = errors.New("vault record revision conflict")

	// ErrImmutableField is returned when an update attempts to change a
	// field that is fixed at creation time (owner or kind).
	ErrImmutableField = errors.New("record owner and kind are immutable")

	// ErrInvalidRecord is returned when a record fails basic shape checks
	// before any database work is attempted (unknown kind, missing owner).
	ErrInvalidRecord = errors.New("invalid vault record")
)
