package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/securenotes/go-secure-vault/internal/logger"
	"github.com/securenotes/go-secure-vault/models"
)

var recordColumns = []string{
	"id", "owner_id", "kind", "title", "sealed_payload",
	"revision", "deleted", "created_at", "updated_at",
}

type recordRepository struct {
	*DB
	logger *logger.Logger

	// watch coalesces local-write notifications for the replication
	// coordinator. Buffered with size 1: a pending signal absorbs all
	// further writes until consumed.
	watch chan struct{}
}

// NewRecordRepository constructs the SQLite-backed [RecordRepository].
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
		watch:  make(chan struct{}, 1),
	}
}

func (r *recordRepository) Put(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	if !record.Kind.Valid() {
		return models.VaultRecord{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, record.Kind)
	}
	if record.OwnerID == "" {
		return models.VaultRecord{}, fmt.Errorf("%w: empty owner id", ErrInvalidRecord)
	}

	now := time.Now().UTC()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("begin put transaction: %w", err)
	}
	defer tx.Rollback()

	var current models.VaultRecord
	exists := false
	if record.ID != "" {
		current, err = scanRecord(tx.QueryRowContext(ctx, getRecord, record.ID))
		switch {
		case err == nil:
			exists = true
		case errors.Is(err, sql.ErrNoRows):
			// new record with an externally-assigned id
		default:
			log.Err(err).
				Str("func", "recordRepository.Put").
				Str("id", record.ID).
				Msg("failed to load current record revision")
			return models.VaultRecord{}, fmt.Errorf("load current record: %w", err)
		}
	}

	if exists {
		if record.Revision == "" || record.Revision != current.Revision {
			return models.VaultRecord{}, fmt.Errorf(
				"%w: id=%s supplied=%s current=%s",
				ErrRevisionConflict, record.ID, record.Revision, current.Revision,
			)
		}
		if record.OwnerID != current.OwnerID || record.Kind != current.Kind {
			return models.VaultRecord{}, fmt.Errorf("%w: id=%s", ErrImmutableField, record.ID)
		}

		record.Revision = nextRevision(current.Revision)
		record.CreatedAt = current.CreatedAt
		record.UpdatedAt = now

		_, err = tx.ExecContext(ctx, updateRecord,
			record.Title,
			record.SealedPayload,
			record.Revision,
			record.Deleted,
			true, // pending_push
			record.UpdatedAt,
			record.ID,
		)
		if err != nil {
			log.Err(err).
				Str("func", "recordRepository.Put").
				Str("id", record.ID).
				Msg("failed to execute update for vault record")
			return models.VaultRecord{}, fmt.Errorf("update vault record (id=%s): %w", record.ID, err)
		}
	} else {
		if record.Revision != "" {
			if record.ID == "" {
				return models.VaultRecord{}, fmt.Errorf("%w: revision supplied without id", ErrInvalidRecord)
			}
			return models.VaultRecord{}, fmt.Errorf("%w: id=%s", ErrRecordNotFound, record.ID)
		}

		if record.ID == "" {
			record.ID = models.NewRecordID(record.Kind, now)
		}
		record.Revision = nextRevision("")
		record.CreatedAt = now
		record.UpdatedAt = now

		_, err = tx.ExecContext(ctx, insertRecord,
			record.ID,
			record.OwnerID,
			record.Kind,
			record.Title,
			record.SealedPayload,
			record.Revision,
			record.Deleted,
			true, // pending_push
			record.CreatedAt,
			record.UpdatedAt,
		)
		if err != nil {
			log.Err(err).
				Str("func", "recordRepository.Put").
				Str("id", record.ID).
				Msg("failed to execute insert for vault record")
			return models.VaultRecord{}, fmt.Errorf("insert vault record (id=%s): %w", record.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return models.VaultRecord{}, fmt.Errorf("commit put transaction: %w", err)
	}

	r.notify()
	return record, nil
}

func (r *recordRepository) Get(ctx context.Context, id string) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	record, err := scanRecord(r.DB.QueryRowContext(ctx, getRecord, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultRecord{}, fmt.Errorf("%w: id=%s", ErrRecordNotFound, id)
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Get").
			Str("id", id).
			Msg("failed to query vault record")
		return models.VaultRecord{}, fmt.Errorf("query vault record (id=%s): %w", id, err)
	}

	if record.Deleted {
		return models.VaultRecord{}, fmt.Errorf("%w: id=%s", ErrRecordNotFound, id)
	}

	return record, nil
}

func (r *recordRepository) Delete(ctx context.Context, id, revision string) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanRecord(tx.QueryRowContext(ctx, getRecord, id))
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id=%s", ErrRecordNotFound, id)
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Delete").
			Str("id", id).
			Msg("failed to load record for delete")
		return fmt.Errorf("load record for delete (id=%s): %w", id, err)
	}

	if current.Deleted {
		return fmt.Errorf("%w: id=%s", ErrRecordNotFound, id)
	}
	if revision == "" || revision != current.Revision {
		return fmt.Errorf(
			"%w: id=%s supplied=%s current=%s",
			ErrRevisionConflict, id, revision, current.Revision,
		)
	}

	_, err = tx.ExecContext(ctx, updateRecord,
		current.Title,
		current.SealedPayload,
		nextRevision(current.Revision),
		true, // deleted
		true, // pending_push
		time.Now().UTC(),
		id,
	)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Delete").
			Str("id", id).
			Msg("failed to execute tombstone for vault record")
		return fmt.Errorf("tombstone vault record (id=%s): %w", id, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	r.notify()
	return nil
}

func (r *recordRepository) Query(ctx context.Context, ownerID string, kind models.RecordKind) ([]models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(recordColumns...).
		From("vault_records").
		Where(sq.Eq{"owner_id": ownerID, "deleted": false})
	if kind != "" {
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, kind)
		}
		builder = builder.Where(sq.Eq{"kind": kind})
	}
	builder = builder.OrderBy("updated_at DESC", "id ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Query").
			Str("owner_id", ownerID).
			Msg("failed to execute query for vault records")
		return nil, fmt.Errorf("query vault records: %w", err)
	}
	defer rows.Close()

	var records []models.VaultRecord
	for rows.Next() {
		record, scanErr := scanRecordFromRows(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.Query").
				Str("owner_id", ownerID).
				Msg("failed to scan vault record row")
			return nil, fmt.Errorf("scan vault record row: %w", scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordRepository.Query").
			Str("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("iterate vault record rows: %w", rowsErr)
	}

	return records, nil
}

func (r *recordRepository) States(ctx context.Context, ownerID string) ([]models.RecordState, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getStates, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.States").
			Str("owner_id", ownerID).
			Msg("failed to execute query for record states")
		return nil, fmt.Errorf("query record states: %w", err)
	}
	defer rows.Close()

	var states []models.RecordState
	for rows.Next() {
		var state models.RecordState
		if scanErr := rows.Scan(&state.ID, &state.Revision, &state.Deleted, &state.UpdatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.States").
				Str("owner_id", ownerID).
				Msg("failed to scan record state row")
			return nil, fmt.Errorf("scan record state row: %w", scanErr)
		}
		states = append(states, state)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate record state rows: %w", rowsErr)
	}

	return states, nil
}

func (r *recordRepository) Pending(ctx context.Context, ownerID string) ([]models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getPending, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Pending").
			Str("owner_id", ownerID).
			Msg("failed to execute query for pending records")
		return nil, fmt.Errorf("query pending records: %w", err)
	}
	defer rows.Close()

	var records []models.VaultRecord
	for rows.Next() {
		record, scanErr := scanRecordFromRows(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan pending record row: %w", scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate pending record rows: %w", rowsErr)
	}

	return records, nil
}

func (r *recordRepository) MarkPushed(ctx context.Context, id, base, remote string) error {
	log := logger.FromContext(ctx)

	// The base-revision predicate keeps the flag (and the local revision)
	// when a newer local edit landed between push and acknowledgement.
	_, err := r.DB.ExecContext(ctx, markPushed, remote, id, base)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.MarkPushed").
			Str("id", id).
			Msg("failed to clear pending push flag")
		return fmt.Errorf("clear pending push flag (id=%s): %w", id, err)
	}

	return nil
}

func (r *recordRepository) Apply(ctx context.Context, record models.VaultRecord) error {
	log := logger.FromContext(ctx)

	if record.ID == "" || record.OwnerID == "" {
		return fmt.Errorf("%w: apply requires id and owner", ErrInvalidRecord)
	}

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = now
	}

	_, err := r.DB.ExecContext(ctx, applyRecord,
		record.ID,
		record.OwnerID,
		record.Kind,
		record.Title,
		record.SealedPayload,
		record.Revision,
		record.Deleted,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Apply").
			Str("id", record.ID).
			Msg("failed to apply replicated record")
		return fmt.Errorf("apply replicated record (id=%s): %w", record.ID, err)
	}

	// No watch signal here: replicated writes must not echo back as pushes.
	return nil
}

func (r *recordRepository) Watch() <-chan struct{} {
	return r.watch
}

func (r *recordRepository) notify() {
	select {
	case r.watch <- struct{}{}:
	default:
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.VaultRecord, error) {
	var record models.VaultRecord
	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&record.Kind,
		&record.Title,
		&record.SealedPayload,
		&record.Revision,
		&record.Deleted,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return models.VaultRecord{}, err
	}
	return record, nil
}

func scanRecordFromRows(rows *sql.Rows) (models.VaultRecord, error) {
	return scanRecord(rows)
}
