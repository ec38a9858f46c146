// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureNotes Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the vault
// engine. It aggregates all sub-configurations and is populated by merging
// values from environment variables and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
//
// All lookups additionally carry the global VAULT_ prefix.
type StructuredConfig struct {
	// App holds application-level settings such as the active owner
	// identity supplied by the external authentication collaborator.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backend.
	Storage LocalStorage `envPrefix:"STORAGE_"`

	// Remote holds the remote document store endpoint settings.
	Remote Remote `envPrefix:"REMOTE_"`

	// Sync holds replication retry/backoff tuning.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables.
	// Env: VAULT_CONFIG
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// OwnerID is the stable user identifier produced by the external
	// authentication layer. The engine trusts it without re-validation.
	// Env: VAULT_APP_OWNER_ID
	OwnerID string `env:"OWNER_ID"`
}

// LocalStorage groups the configuration for the local storage backend.
type LocalStorage struct {
	// DB holds the local SQLite database settings.
	DB LocalDB `envPrefix:"DB_"`
}

// LocalDB holds connection settings for the local SQLite database.
type LocalDB struct {
	// DSN is the SQLite file path (e.g. "~/.vault/records.db").
	// Env: VAULT_STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Remote holds the remote document store endpoint settings. Username and
// Password are environment-only on purpose: the JSON source never populates
// them, so credentials cannot leak into committed config files.
type Remote struct {
	// Address is the base URL of the remote store
	// (e.g. "https://vault.example.com").
	// Env: VAULT_REMOTE_ADDRESS
	Address string `env:"ADDRESS"`

	// Database is the logical database name on the remote store shared by
	// all users; the owner filter is the only per-user partition.
	// Env: VAULT_REMOTE_DATABASE
	Database string `env:"DATABASE"`

	// Username authenticates against the remote store.
	// Env: VAULT_REMOTE_USERNAME
	Username string `env:"USERNAME"`

	// Password authenticates against the remote store.
	// Env: VAULT_REMOTE_PASSWORD
	Password string `env:"PASSWORD"`

	// RequestTimeout is the maximum duration for a single outbound request
	// (e.g. "30s"). The changes-feed long-poll uses its own window.
	// Env: VAULT_REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds replication retry tuning.
type Sync struct {
	// MinBackoff is the initial delay after a transient replication
	// failure (e.g. "1s").
	// Env: VAULT_SYNC_MIN_BACKOFF
	MinBackoff time.Duration `env:"MIN_BACKOFF"`

	// MaxBackoff caps the exponential backoff growth (e.g. "1m").
	// Env: VAULT_SYNC_MAX_BACKOFF
	MaxBackoff time.Duration `env:"MAX_BACKOFF"`
}

// GetConfig loads, merges, and validates the engine configuration from all
// available sources in the following priority order (earlier sources win,
// later sources only fill fields still unset):
//  1. Environment variables
//  2. JSON file (path resolved from source 1)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withJSON().
		build()
}
