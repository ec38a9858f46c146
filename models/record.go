package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecordKind defines the semantic type of a vault record.
// The value determines the payload shape hidden inside SealedPayload
// and is the only type information visible to the store.
type RecordKind string

const (
	// KindNote represents a free-form secure note.
	KindNote RecordKind = "note"

	// KindPassword represents stored login credentials.
	KindPassword RecordKind = "password"

	// KindLink represents a saved URL with an optional description.
	KindLink RecordKind = "link"
)

// Valid reports whether k is one of the known record kinds.
func (k RecordKind) Valid() bool {
	switch k {
	case KindNote, KindPassword, KindLink:
		return true
	}
	return false
}

// VaultRecord is the unit of storage and replication.
// All sensitive content lives in SealedPayload, which the store and the
// replication layer treat as an opaque string; only Title is searchable
// plaintext.
type VaultRecord struct {
	// ID is the globally unique record identifier in the form
	// "{kind}_{creationEpochMillis}_{randomSuffix}". Immutable once assigned.
	ID string `json:"_id"`

	// Revision is the optimistic-concurrency token assigned by the store on
	// every successful write. Updates and deletes must present the current
	// value or they are rejected.
	Revision string `json:"_rev,omitempty"`

	// OwnerID identifies the owning user. Set at creation, never mutated.
	// It partitions both local queries and replication.
	OwnerID string `json:"owner_id"`

	// Kind is the record kind. Immutable.
	Kind RecordKind `json:"kind"`

	// Title is the plaintext display name of the record. It is the only
	// user-visible field stored unencrypted.
	Title string `json:"title"`

	// SealedPayload is the envelope-encrypted record content, base64 encoded.
	// The store never parses, validates, or transforms this value.
	SealedPayload string `json:"sealed_payload"`

	// Deleted marks the record as tombstoned so that deletions replicate
	// to other devices. Tombstoned records are invisible to queries.
	Deleted bool `json:"deleted,omitempty"`

	// CreatedAt is set once when the record is first stored.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every successful write.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRecordID builds a fresh record identifier in the canonical
// "{kind}_{creationEpochMillis}_{randomSuffix}" form.
func NewRecordID(kind RecordKind, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", kind, now.UnixMilli(), suffix)
}

// TableName returns the name of the database table backing VaultRecord.
func (r *VaultRecord) TableName() string {
	return "vault_records"
}

// RecordState is the lightweight per-record view exchanged during
// replication planning. It carries just enough to decide the direction of a
// transfer without moving payloads.
type RecordState struct {
	ID        string    `json:"id"`
	Revision  string    `json:"revision"`
	Deleted   bool      `json:"deleted"`
	UpdatedAt time.Time `json:"updated_at"`
}
