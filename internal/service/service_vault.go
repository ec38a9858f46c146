package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/securenotes/go-secure-vault/internal/crypto"
	"github.com/securenotes/go-secure-vault/internal/logger"
	"github.com/securenotes/go-secure-vault/internal/store"
	"github.com/securenotes/go-secure-vault/internal/validators"
	"github.com/securenotes/go-secure-vault/models"
)

type vaultService struct {
	records    store.RecordRepository
	envelope   crypto.EnvelopeService
	replicator Replicator
	validator  validators.Validator

	logger *logger.Logger
}

// NewVaultService constructs the [VaultService] facade for one session.
func NewVaultService(records store.RecordRepository, envelope crypto.EnvelopeService, replicator Replicator, log *logger.Logger) VaultService {
	return &vaultService{
		records:    records,
		envelope:   envelope,
		replicator: replicator,
		validator:  validators.NewRecordValidator(),
		logger:     log,
	}
}

func (s *vaultService) CreateRecord(ctx context.Context, ownerID string, kind models.RecordKind, title string, payload models.RecordPayload, masterSecret string) (models.VaultRecord, error) {
	if ownerID == "" {
		return models.VaultRecord{}, ErrEmptyOwner
	}
	draft := models.VaultRecord{OwnerID: ownerID, Kind: kind, Title: title}
	if err := s.validator.Validate(ctx, draft, validators.FieldTitle, validators.FieldKind); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %v", ErrInvalidRecordInput, err)
	}
	if payload.Kind != kind {
		return models.VaultRecord{}, fmt.Errorf("%w: payload kind %q does not match record kind %q", ErrInvalidRecordInput, payload.Kind, kind)
	}
	if err := s.validator.Validate(ctx, payload); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %v", ErrInvalidRecordInput, err)
	}

	sealed, err := s.seal(payload, masterSecret)
	if err != nil {
		return models.VaultRecord{}, err
	}

	record, err := s.records.Put(ctx, models.VaultRecord{
		OwnerID:       ownerID,
		Kind:          kind,
		Title:         title,
		SealedPayload: sealed,
	})
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("store created record: %w", err)
	}

	return record, nil
}

func (s *vaultService) ReadRecordPlaintext(ctx context.Context, id string, masterSecret string) (models.VaultRecord, models.RecordPayload, error) {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return models.VaultRecord{}, models.RecordPayload{}, fmt.Errorf("load record for read: %w", err)
	}

	plaintext, err := s.envelope.Open(record.SealedPayload, masterSecret)
	if err != nil {
		return models.VaultRecord{}, models.RecordPayload{}, fmt.Errorf("open sealed payload (id=%s): %w", id, err)
	}

	payload, err := models.DecodePayload(plaintext)
	if err != nil {
		return models.VaultRecord{}, models.RecordPayload{}, fmt.Errorf("decode payload (id=%s): %w", id, err)
	}

	return record, payload, nil
}

func (s *vaultService) UpdateRecord(ctx context.Context, id, revision, title string, payload models.RecordPayload, masterSecret string) (models.VaultRecord, error) {
	if err := s.validator.Validate(ctx, models.VaultRecord{Title: title}, validators.FieldTitle); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %v", ErrInvalidRecordInput, err)
	}

	current, err := s.records.Get(ctx, id)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("load record for update: %w", err)
	}
	if payload.Kind != current.Kind {
		return models.VaultRecord{}, fmt.Errorf("%w: payload kind %q does not match record kind %q", ErrInvalidRecordInput, payload.Kind, current.Kind)
	}
	if err := s.validator.Validate(ctx, payload); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %v", ErrInvalidRecordInput, err)
	}

	sealed, err := s.seal(payload, masterSecret)
	if err != nil {
		return models.VaultRecord{}, err
	}

	current.Revision = revision
	current.Title = title
	current.SealedPayload = sealed

	record, err := s.records.Put(ctx, current)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("store updated record: %w", err)
	}

	return record, nil
}

func (s *vaultService) DeleteRecord(ctx context.Context, id, revision string) error {
	if err := s.records.Delete(ctx, id, revision); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (s *vaultService) ListRecords(ctx context.Context, ownerID string, kind models.RecordKind) ([]models.VaultRecord, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwner
	}

	records, err := s.records.Query(ctx, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (s *vaultService) SearchRecords(ctx context.Context, ownerID string, query string) ([]models.VaultRecord, error) {
	records, err := s.ListRecords(ctx, ownerID, "")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return records, nil
	}

	matched := make([]models.VaultRecord, 0, len(records))
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Title), needle) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

func (s *vaultService) GenerateSecret(length int) (string, error) {
	return s.envelope.GenerateSecret(length)
}

func (s *vaultService) StartSync(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return ErrEmptyOwner
	}
	return s.replicator.Start(ctx, ownerID)
}

func (s *vaultService) StopSync() {
	s.replicator.Stop()
}

func (s *vaultService) SyncEvents() <-chan models.SyncEvent {
	return s.replicator.Events()
}

func (s *vaultService) seal(payload models.RecordPayload, masterSecret string) (string, error) {
	plaintext, err := payload.Encode()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRecordInput, err)
	}

	sealed, err := s.envelope.Seal(plaintext, masterSecret)
	if err != nil {
		return "", fmt.Errorf("seal payload: %w", err)
	}
	return sealed, nil
}
