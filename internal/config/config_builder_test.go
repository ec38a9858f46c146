package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig_EnvOnly(t *testing.T) {
	setEnvVars(t, map[string]string{
		"VAULT_STORAGE_DB_DATABASE_URI": "records.db",
		"VAULT_REMOTE_ADDRESS":          "https://vault.example.com",
	})

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "records.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://vault.example.com", cfg.Remote.Address)

	// defaults applied after merge
	assert.Equal(t, defaultRequestTimeout, cfg.Remote.RequestTimeout)
	assert.Equal(t, defaultDatabase, cfg.Remote.Database)
	assert.Equal(t, defaultMinBackoff, cfg.Sync.MinBackoff)
	assert.Equal(t, defaultMaxBackoff, cfg.Sync.MaxBackoff)
}

func TestGetConfig_EnvWinsOverJSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")
	jsonBody := `{
		"storage": { "db": { "dsn": "from-json.db" } },
		"remote": { "request_timeout": "45s" }
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	setEnvVars(t, map[string]string{
		"VAULT_CONFIG":                  p,
		"VAULT_STORAGE_DB_DATABASE_URI": "from-env.db",
	})

	cfg, err := GetConfig()
	require.NoError(t, err)

	// env was merged first, so it wins for fields set in both sources
	assert.Equal(t, "from-env.db", cfg.Storage.DB.DSN)
	// fields absent from env fall through to the JSON file
	assert.Equal(t, 45*time.Second, cfg.Remote.RequestTimeout)
}

func TestGetConfig_MissingDSN(t *testing.T) {
	_, err := GetConfig()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestValidate_RejectsBadRemoteAddress(t *testing.T) {
	cfg := &StructuredConfig{
		Storage: LocalStorage{DB: LocalDB{DSN: "records.db"}},
		Remote:  Remote{Address: "not a url"},
	}
	cfg.applyDefaults()

	assert.ErrorIs(t, cfg.validate(), ErrInvalidRemoteConfigs)
}

func TestValidate_RejectsInvertedBackoff(t *testing.T) {
	cfg := &StructuredConfig{
		Storage: LocalStorage{DB: LocalDB{DSN: "records.db"}},
		Sync:    Sync{MinBackoff: time.Minute, MaxBackoff: time.Second},
	}

	assert.ErrorIs(t, cfg.validate(), ErrInvalidSyncConfigs)
}
