// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureNotes Authors

// Package service holds the application layer of the vault engine: the
// [VaultService] facade that the CLI talks to, and the [Replicator] that
// keeps the local record store converged with the remote document store.
//
// Every facade instance is per-session state (spawned with its own store
// handle and replicator); there are no process-wide singletons. The master
// secret is an argument on every operation that needs it and is never
// retained between calls.
package service

import (
	"context"

	"github.com/securenotes/go-secure-vault/models"
)

// VaultService is the session facade over the record store, the envelope
// cipher, and the replication coordinator. All plaintext crosses this
// boundary and nowhere else.
type VaultService interface {
	// CreateRecord validates the payload against kind, seals it under
	// masterSecret, and stores a new record for ownerID. Returns the stored
	// record with its assigned id and first revision.
	CreateRecord(ctx context.Context, ownerID string, kind models.RecordKind, title string, payload models.RecordPayload, masterSecret string) (models.VaultRecord, error)

	// ReadRecordPlaintext loads the record and opens its sealed payload.
	// This is the only place a wrong master secret is detectable: it
	// surfaces as [crypto.ErrDecryptionFailed].
	ReadRecordPlaintext(ctx context.Context, id string, masterSecret string) (models.VaultRecord, models.RecordPayload, error)

	// UpdateRecord replaces title and payload of an existing record. The
	// caller must present the record's current revision; store errors
	// (ErrRevisionConflict, ErrRecordNotFound) propagate unchanged.
	UpdateRecord(ctx context.Context, id, revision, title string, payload models.RecordPayload, masterSecret string) (models.VaultRecord, error)

	// DeleteRecord tombstones the record. Store errors propagate unchanged.
	DeleteRecord(ctx context.Context, id, revision string) error

	// ListRecords returns the owner's records with titles and metadata
	// only; payloads stay sealed. Empty kind means all kinds.
	ListRecords(ctx context.Context, ownerID string, kind models.RecordKind) ([]models.VaultRecord, error)

	// SearchRecords returns the owner's records whose title contains query,
	// case-insensitively. Sealed content is not searchable.
	SearchRecords(ctx context.Context, ownerID string, query string) ([]models.VaultRecord, error)

	// GenerateSecret suggests a strong random secret of the given length.
	GenerateSecret(length int) (string, error)

	// StartSync starts the replication session for ownerID. A second call
	// while running returns ErrReplicationAlreadyStarted.
	StartSync(ctx context.Context, ownerID string) error

	// StopSync stops replication. Safe to call when not running.
	StopSync()

	// SyncEvents exposes the replicator's event stream.
	SyncEvents() <-chan models.SyncEvent
}

// Replicator keeps the local store and the remote store converged for one
// owner: it pushes pending local writes and pulls the remote changes feed,
// dropping anything outside the owner partition.
type Replicator interface {
	// Start spawns the push and pull loops for ownerID. The loops run until
	// ctx is cancelled or Stop is called. Returns
	// ErrReplicationAlreadyStarted when a session is already running.
	Start(ctx context.Context, ownerID string) error

	// Stop cancels the loops and blocks until they exit. Idempotent, safe
	// to call mid-retry.
	Stop()

	// Events returns the coordinator's event stream. Emission never blocks:
	// when the consumer lags, events are dropped, not queued.
	Events() <-chan models.SyncEvent
}
