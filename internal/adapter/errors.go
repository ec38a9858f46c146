package adapter

import "errors"

var (
	// ErrUnauthorized indicates the remote store rejected the configured
	// credentials. Not retryable; replication stops and surfaces the error.
	ErrUnauthorized = errors.New("remote store unauthorized")

	// ErrRemoteUnavailable indicates a transient transport or server
	// failure. Callers retry with backoff.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)
