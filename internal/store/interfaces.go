package store

//go:generate mockgen -source=interfaces.go -destination=../mock/record_repository_mock.go -package=mock

import (
	"context"

	"github.com/securenotes/go-secure-vault/models"
)

// RecordRepository is the local, offline-durable store of vault records.
// It mirrors the semantics of a revision-tracked document store: every
// successful write advances the record's revision, and mutations must
// present the current revision or they are rejected.
//
// All operations complete locally with no network dependency. Remote
// synchronization is additive and goes through the replication methods
// (States, Pending, MarkPushed, Apply) plus Watch.
type RecordRepository interface {
	// Put inserts a new record (empty Revision, unknown ID) or performs a
	// revision-checked full-record update. On success it returns the record
	// as stored, with the newly assigned revision and refreshed UpdatedAt.
	// A missing ID is assigned by the store; externally-assigned IDs and
	// sealed payloads are accepted unchanged. Fails with
	// ErrRevisionConflict on a stale revision, ErrRecordNotFound when
	// updating an unknown id, and ErrImmutableField when owner or kind
	// differ from the stored values.
	Put(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)

	// Get returns the record by id. Fails with ErrRecordNotFound when the
	// record is absent or tombstoned.
	Get(ctx context.Context, id string) (models.VaultRecord, error)

	// Delete tombstones the record when revision matches the stored value.
	// The tombstone keeps replicating so other devices observe the delete.
	Delete(ctx context.Context, id, revision string) error

	// Query returns all non-deleted records owned by ownerID, optionally
	// restricted to one kind (empty kind means all), ordered by UpdatedAt
	// descending with ties broken by ID ascending.
	Query(ctx context.Context, ownerID string, kind models.RecordKind) ([]models.VaultRecord, error)

	// States returns the lightweight replication view of every record owned
	// by ownerID, tombstones included.
	States(ctx context.Context, ownerID string) ([]models.RecordState, error)

	// Pending returns records owned by ownerID with local writes that have
	// not yet been pushed to the remote store, tombstones included.
	Pending(ctx context.Context, ownerID string) ([]models.VaultRecord, error)

	// MarkPushed records a successful push: it adopts the revision the
	// remote assigned and clears the pending-push flag, but only when the
	// stored revision still equals base. A newer local edit keeps its flag
	// and its revision, and is pushed on the next round.
	MarkPushed(ctx context.Context, id, base, remote string) error

	// Apply writes a record received from the remote peer verbatim,
	// including its remote-assigned revision. Remote revision ordering is
	// authoritative, so Apply performs no local revision check.
	Apply(ctx context.Context, record models.VaultRecord) error

	// Watch returns a coalescing notification channel that receives a
	// signal after every successful local mutation (Put or Delete). The
	// replication coordinator uses it to push without polling.
	Watch() <-chan struct{}
}
