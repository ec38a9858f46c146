package service

import "errors"

var (
	// ErrReplicationAlreadyStarted is returned by Replicator.Start when a
	// replication session is already running. Callers must Stop first; the
	// second Start fails loudly instead of silently reusing the old loop.
	ErrReplicationAlreadyStarted = errors.New("replication already started")

	// ErrInvalidRecordInput indicates a facade call with an empty title,
	// unknown kind, or payload that does not match the record kind.
	ErrInvalidRecordInput = errors.New("invalid record input")

	// ErrEmptyOwner indicates a facade call without an owner identity.
	ErrEmptyOwner = errors.New("empty owner id")

	// ErrNoRemoteStore is returned by Replicator.Start when the session was
	// built without a remote endpoint. The vault stays fully usable locally.
	ErrNoRemoteStore = errors.New("no remote store configured")
)
