// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureNotes Authors

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"VAULT_CONFIG": "/path/to/config.json",

		"VAULT_APP_OWNER_ID": "user-42",

		// Storage has nested prefixes: STORAGE_ + DB_
		"VAULT_STORAGE_DB_DATABASE_URI": "/home/u/.vault/records.db",

		"VAULT_REMOTE_ADDRESS":         "https://vault.example.com",
		"VAULT_REMOTE_DATABASE":        "securevault",
		"VAULT_REMOTE_USERNAME":        "replicator",
		"VAULT_REMOTE_PASSWORD":        "hunter2",
		"VAULT_REMOTE_REQUEST_TIMEOUT": "30s",

		"VAULT_SYNC_MIN_BACKOFF": "2s",
		"VAULT_SYNC_MAX_BACKOFF": "2m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "user-42", cfg.App.OwnerID)
	assert.Equal(t, "/home/u/.vault/records.db", cfg.Storage.DB.DSN)

	assert.Equal(t, "https://vault.example.com", cfg.Remote.Address)
	assert.Equal(t, "securevault", cfg.Remote.Database)
	assert.Equal(t, "replicator", cfg.Remote.Username)
	assert.Equal(t, "hunter2", cfg.Remote.Password)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)

	assert.Equal(t, 2*time.Second, cfg.Sync.MinBackoff)
	assert.Equal(t, 2*time.Minute, cfg.Sync.MaxBackoff)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"VAULT_STORAGE_DB_DATABASE_URI": "records.db",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "records.db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Remote.Address)
	assert.Zero(t, cfg.Remote.RequestTimeout)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"VAULT_REMOTE_REQUEST_TIMEOUT": "not-a-duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	assert.Error(t, err)
}
