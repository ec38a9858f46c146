package models

import "time"

// SyncEventKind classifies events emitted by the replication coordinator.
type SyncEventKind string

const (
	// SyncChange reports that one or more records were transferred.
	SyncChange SyncEventKind = "change"

	// SyncError reports a transient replication failure. The coordinator
	// keeps retrying; the event exists only for status display.
	SyncError SyncEventKind = "error"

	// SyncActive reports that a replication cycle is in progress.
	SyncActive SyncEventKind = "active"

	// SyncPaused reports that replication is idle, waiting for changes or
	// backing off after an error.
	SyncPaused SyncEventKind = "paused"
)

// SyncDirection tells which way records moved in a change event.
type SyncDirection string

const (
	SyncPush SyncDirection = "push"
	SyncPull SyncDirection = "pull"
)

// SyncEvent is the observability record emitted by the replication
// coordinator. Errors carried here are never fatal: replication retries
// until stopped.
type SyncEvent struct {
	// Kind classifies the event.
	Kind SyncEventKind `json:"kind"`

	// Direction is set on SyncChange events.
	Direction SyncDirection `json:"direction,omitempty"`

	// RecordIDs lists the records affected by a SyncChange event.
	RecordIDs []string `json:"record_ids,omitempty"`

	// Err carries the underlying failure for SyncError events.
	Err error `json:"-"`

	// At is the event timestamp.
	At time.Time `json:"at"`
}
