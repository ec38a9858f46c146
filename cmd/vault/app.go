package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/securenotes/go-secure-vault/internal/adapter"
	"github.com/securenotes/go-secure-vault/internal/config"
	"github.com/securenotes/go-secure-vault/internal/logger"
	"github.com/securenotes/go-secure-vault/internal/service"
	"github.com/securenotes/go-secure-vault/internal/store"
	"github.com/securenotes/go-secure-vault/models"
)

// masterSecretEnv lets scripts supply the master secret without a prompt.
const masterSecretEnv = "VAULT_MASTER_SECRET"

// app bundles everything a command needs: merged configuration, the session
// services, and the logger. Each command invocation builds a fresh app.
type app struct {
	cfg      *config.StructuredConfig
	logger   *logger.Logger
	services *service.Services
}

func newApp() (*app, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.Nop()
	if verbose {
		log = logger.NewLoggerTo("vault", os.Stderr)
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	var remote adapter.RemoteStore
	if cfg.Remote.Address != "" {
		remote, err = adapter.NewHTTPRemoteStore(cfg.Remote, log)
		if err != nil {
			return nil, fmt.Errorf("create remote store: %w", err)
		}
	}

	return &app{
		cfg:      cfg,
		logger:   log,
		services: service.NewServices(storages, remote, cfg.Sync, log),
	}, nil
}

func (a *app) owner() (string, error) {
	if a.cfg.App.OwnerID == "" {
		return "", fmt.Errorf("owner id is not configured, set VAULT_APP_OWNER_ID")
	}
	return a.cfg.App.OwnerID, nil
}

func (a *app) remoteConfigured() bool {
	return a.cfg.Remote.Address != ""
}

// findRecord resolves a record id to its sealed metadata without needing
// the master secret.
func (a *app) findRecord(ctx context.Context, ownerID, id string) (models.VaultRecord, error) {
	records, err := a.services.Vault.ListRecords(ctx, ownerID, "")
	if err != nil {
		return models.VaultRecord{}, err
	}
	for _, record := range records {
		if record.ID == id {
			return record, nil
		}
	}
	return models.VaultRecord{}, fmt.Errorf("record %s not found", id)
}

// masterSecret returns the secret from the environment or prompts for it
// on the terminal with echo disabled. The secret is never logged or stored.
func masterSecret() (string, error) {
	if secret := os.Getenv(masterSecretEnv); secret != "" {
		return secret, nil
	}

	fmt.Fprint(os.Stderr, "Master secret: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read master secret: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("master secret must not be empty")
	}
	return string(raw), nil
}

func parseKind(value string) (models.RecordKind, error) {
	if value == "" {
		return "", nil
	}
	kind := models.RecordKind(value)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown kind %q, expected note, password, or link", value)
	}
	return kind, nil
}
