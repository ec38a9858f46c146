package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": { "owner_id": "user-42" },
		"storage": {
			"db": { "dsn": "/home/u/.vault/records.db" }
		},
		"remote": {
			"address": "https://vault.example.com",
			"database": "securevault",
			"request_timeout": "30s"
		},
		"sync": {
			"min_backoff": "2s",
			"max_backoff": "2m"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "user-42", cfg.App.OwnerID)
	assert.Equal(t, "/home/u/.vault/records.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://vault.example.com", cfg.Remote.Address)
	assert.Equal(t, "securevault", cfg.Remote.Database)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Sync.MinBackoff)
	assert.Equal(t, 2*time.Minute, cfg.Sync.MaxBackoff)
}

func TestParseJSON_CredentialsAreIgnored(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	// Credentials in a config file must never be honoured.
	jsonBody := `{
		"remote": {
			"address": "https://vault.example.com",
			"username": "smuggled",
			"password": "smuggled"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Empty(t, cfg.Remote.Username)
	assert.Empty(t, cfg.Remote.Password)
}

func TestParseJSON_FileMissing(t *testing.T) {
	_, err := parseJSON("/does/not/exist.json")
	assert.Error(t, err)
}

func TestParseJSON_MalformedBody(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_UnmarshalVariants(t *testing.T) {
	var d Duration

	require.NoError(t, d.UnmarshalJSON([]byte(`"1h"`)))
	assert.Equal(t, time.Hour, time.Duration(d))

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, time.Duration(d))

	assert.Error(t, d.UnmarshalJSON([]byte(`"not-a-duration"`)))
}
