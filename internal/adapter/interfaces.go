// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureNotes Authors

// Package adapter provides the transport layer for talking to the remote
// document store.
//
// The primary abstraction is [RemoteStore], which decouples the replication
// coordinator from the wire protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRemoteStore]) speaking the document-database
// dialect the remote exposes: one JSON document per vault record, revision
// tokens on every write, and a long-pollable changes feed.
//
// Error values defined in errors.go are produced by mapHTTPError so that
// callers can use [errors.Is] for transport-agnostic handling
// ([store.ErrRevisionConflict] for 409, [ErrUnauthorized] for 401/403,
// [ErrRemoteUnavailable] for everything retryable).
package adapter

import (
	"context"

	"github.com/securenotes/go-secure-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// ChangesPage is one long-poll window of the remote changes feed, already
// narrowed to a single owner.
type ChangesPage struct {
	// Records holds the full document for every change in the window,
	// tombstones included.
	Records []models.VaultRecord

	// Since is the feed position to resume from on the next call.
	Since string
}

// RemoteStore defines transport-agnostic communication with the remote
// document store. Implementations are responsible for serialisation,
// authentication, and mapping transport-level failures to the sentinel
// values defined in this package.
type RemoteStore interface {
	// Ping verifies that the remote database is reachable with the
	// configured credentials. Used to fail fast before replication starts.
	Ping(ctx context.Context) error

	// Get fetches a single record by id. Returns
	// [store.ErrRecordNotFound] (wrapped) if the remote has no such
	// document.
	Get(ctx context.Context, id string) (models.VaultRecord, error)

	// Put writes a record to the remote store. record.Revision must carry
	// the revision the write is based on (empty for a brand-new record).
	// Tombstones travel through Put as well so the owner marker survives
	// on the deleted document. Returns the revision assigned by the
	// remote, or [store.ErrRevisionConflict] (wrapped) if the remote holds
	// a different revision.
	Put(ctx context.Context, record models.VaultRecord) (string, error)

	// Changes long-polls the remote changes feed starting after the since
	// token ("" for the beginning of the feed) and returns every changed
	// document owned by ownerID together with the next resume token. A
	// window that saw no changes returns an empty page and an advanced
	// token.
	Changes(ctx context.Context, ownerID string, since string) (ChangesPage, error)
}
