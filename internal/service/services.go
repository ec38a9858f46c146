package service

import (
	"github.com/securenotes/go-secure-vault/internal/adapter"
	"github.com/securenotes/go-secure-vault/internal/config"
	"github.com/securenotes/go-secure-vault/internal/crypto"
	"github.com/securenotes/go-secure-vault/internal/logger"
	"github.com/securenotes/go-secure-vault/internal/store"
)

// Services bundles the application layer for one session.
type Services struct {
	Vault      VaultService
	Replicator Replicator
}

// NewServices wires the session services over the given local store and
// remote adapter.
func NewServices(storages *store.Storages, remote adapter.RemoteStore, cfg config.Sync, log *logger.Logger) *Services {
	envelope := crypto.NewEnvelopeService()
	replicator := NewReplicator(storages.Records, remote, cfg, log)

	return &Services{
		Vault:      NewVaultService(storages.Records, envelope, replicator, log),
		Replicator: replicator,
	}
}
