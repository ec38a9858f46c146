package store

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securenotes/go-secure-vault/internal/logger"
	"github.com/securenotes/go-secure-vault/models"
)

func newTestRepo(t *testing.T) (RecordRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	storeDB := &DB{DB: db, logger: logger.Nop()}
	return NewRecordRepository(storeDB, logger.Nop()), mock
}

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}

func recordRows(records ...models.VaultRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows(recordColumns)
	for _, r := range records {
		rows.AddRow(
			r.ID, r.OwnerID, string(r.Kind), r.Title, r.SealedPayload,
			r.Revision, r.Deleted, r.CreatedAt, r.UpdatedAt,
		)
	}
	return rows
}

func storedRecord() models.VaultRecord {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return models.VaultRecord{
		ID:            "note_1754049600000_abc123def",
		OwnerID:       "user-a",
		Kind:          models.KindNote,
		Title:         "Groceries",
		SealedPayload: "c2VhbGVk",
		Revision:      "1-aaaaaaaa",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestPut_InsertAssignsIDAndRevision(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRecord)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stored, err := repo.Put(testContext(), models.VaultRecord{
		OwnerID:       "user-a",
		Kind:          models.KindNote,
		Title:         "Groceries",
		SealedPayload: "c2VhbGVk",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.ID, "note_"), "id = %q", stored.ID)
	assert.Equal(t, 1, RevisionGeneration(stored.Revision))
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_InsertAcceptsExternalID(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getRecord)).
		WithArgs("note_1_imported").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(insertRecord)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stored, err := repo.Put(testContext(), models.VaultRecord{
		ID:            "note_1_imported",
		OwnerID:       "user-a",
		Kind:          models.KindNote,
		Title:         "Imported",
		SealedPayload: "aW1wb3J0ZWQ=",
	})
	require.NoError(t, err)
	assert.Equal(t, "note_1_imported", stored.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_UpdateAdvancesRevision(t *testing.T) {
	repo, mock := newTestRepo(t)
	current := storedRecord()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getRecord)).
		WithArgs(current.ID).
		WillReturnRows(recordRows(current))
	mock.ExpectExec(regexp.QuoteMeta(updateRecord)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated := current
	updated.Title = "Groceries v2"

	stored, err := repo.Put(testContext(), updated)
	require.NoError(t, err)

	assert.Equal(t, 2, RevisionGeneration(stored.Revision))
	assert.NotEqual(t, current.Revision, stored.Revision)
	assert.Equal(t, current.CreatedAt, stored.CreatedAt)
	assert.True(t, stored.UpdatedAt.After(current.UpdatedAt))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_StaleRevisionConflict(t *testing.T) {
	repo, mock := newTestRepo(t)
	current := storedRecord()
	current.Revision = "2-bbbbbbbb"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getRecord)).
		WithArgs(current.ID).
		WillReturnRows(recordRows(current))
	mock.ExpectRollback()

	stale := current
	stale.Revision = "1-aaaaaaaa"

	_, err := repo.Put(testContext(), stale)
	assert.ErrorIs(t, err, ErrRevisionConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_UpdateUnknownID(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getRecord)).
		WithArgs("note_1_missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Put(testContext(), models.VaultRecord{
		ID:       "note_1_missing",
		OwnerID:  "user-a",
		Kind:     models.KindNote,
		Revision: "1-aaaaaaaa",
	})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_OwnerIsImmutable(t *testing.T) {
	repo, mock := newTestRepo(t)
	current := storedRecord()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getRecord)).
		WithArgs(current.ID).
		WillReturnRows(recordRows(current))
	mock.ExpectRollback()

	hijacked := current
	hijacked.OwnerID = "user-b"

	_, err := repo.Put(testContext(), hijacked)
	assert.ErrorIs(t, err, ErrImmutableField)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_RejectsUnknownKind(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Put(testContext(), models.VaultRecord{
		OwnerID: "user-a",
		Kind:    "diary",
	})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestPut_SignalsWatch(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRecord)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := repo.Put(testContext(), models.VaultRecord{
		OwnerID: "user-a",
		Kind:    models.KindNote,
	})
	require.NoError(t, err)

	select {
	case <-repo.Watch():
	default:
		t.Fatal("expected a watch signal after Put")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getRecord)).
		WithArgs("note_1_missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(testContext(), "note_1_missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGet_TombstoneIsInvisible(t *testing.T) {
	repo, mock := newTestRepo(t)
	current := storedRecord()
	current.Deleted = true

	mock.ExpectQuery(regexp.QuoteMeta(getRecord)).
		WithArgs(current.ID).
		WillReturnRows(recordRows(current))

	_, err := repo.Get(testContext(), current.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDelete_TombstonesOnMatchingRevision(t *testing.T) {
	repo, mock := newTestRepo(t)
	current := storedRecord()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getRecord)).
		WithArgs(current.ID).
		WillReturnRows(recordRows(current))
	mock.ExpectExec(regexp.QuoteMeta(updateRecord)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(testContext(), current.ID, current.Revision)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_StaleRevisionConflict(t *testing.T) {
	repo, mock := newTestRepo(t)
	current := storedRecord()
	current.Revision = "3-cccccccc"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getRecord)).
		WithArgs(current.ID).
		WillReturnRows(recordRows(current))
	mock.ExpectRollback()

	err := repo.Delete(testContext(), current.ID, "2-bbbbbbbb")
	assert.ErrorIs(t, err, ErrRevisionConflict)
}

func TestQuery_FiltersOwnerAndKind(t *testing.T) {
	repo, mock := newTestRepo(t)
	current := storedRecord()

	mock.ExpectQuery(`SELECT .+ FROM vault_records WHERE deleted = \? AND owner_id = \? AND kind = \? ORDER BY updated_at DESC, id ASC`).
		WithArgs(false, "user-a", "note").
		WillReturnRows(recordRows(current))

	records, err := repo.Query(testContext(), "user-a", models.KindNote)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, current.ID, records[0].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_AllKinds(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM vault_records WHERE deleted = \? AND owner_id = \? ORDER BY updated_at DESC, id ASC`).
		WithArgs(false, "user-a").
		WillReturnRows(recordRows())

	records, err := repo.Query(testContext(), "user-a", "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestQuery_RejectsUnknownKind(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Query(testContext(), "user-a", "diary")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestStates_IncludesTombstones(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "revision", "deleted", "updated_at"}).
		AddRow("note_1_a", "2-aa", false, now).
		AddRow("note_1_b", "3-bb", true, now)

	mock.ExpectQuery(regexp.QuoteMeta(getStates)).
		WithArgs("user-a").
		WillReturnRows(rows)

	states, err := repo.States(testContext(), "user-a")
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.True(t, states[1].Deleted)
}

func TestPending_ReturnsFlaggedRecords(t *testing.T) {
	repo, mock := newTestRepo(t)

	first := storedRecord()
	second := storedRecord()
	second.ID = "note_1754049600001_def456ghi"
	second.Revision = "2-bbbbbbbb"
	second.Deleted = true

	mock.ExpectQuery(regexp.QuoteMeta(getPending)).
		WithArgs("user-a").
		WillReturnRows(recordRows(first, second))

	pending, err := repo.Pending(testContext(), "user-a")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.True(t, pending[1].Deleted, "tombstones must stay in the push queue")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_UpsertsWithoutWatchSignal(t *testing.T) {
	repo, mock := newTestRepo(t)
	remote := storedRecord()
	remote.Revision = "4-dddddddd"

	mock.ExpectExec(regexp.QuoteMeta(applyRecord)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Apply(testContext(), remote)
	require.NoError(t, err)

	select {
	case <-repo.Watch():
		t.Fatal("Apply must not signal the watch channel")
	default:
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPushed(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(markPushed)).
		WithArgs("2-remote", "note_1_a", "2-aa").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkPushed(testContext(), "note_1_a", "2-aa", "2-remote")
	require.NoError(t, err)
}
