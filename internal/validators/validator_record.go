package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/securenotes/go-secure-vault/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldOwnerID targets the owner identifier of a vault record.
	FieldOwnerID = "owner_id"

	// FieldTitle targets the plaintext display name of a vault record.
	FieldTitle = "title"

	// FieldKind targets the semantic record kind (note, password, link).
	FieldKind = "kind"

	// FieldSealedPayload targets the envelope-encrypted record content.
	FieldSealedPayload = "sealed_payload"

	// FieldVariant targets the decrypted payload union and enforces that
	// exactly the variant named by the payload kind is present.
	FieldVariant = "variant"

	// FieldSecrets targets the per-kind required secret fields of a
	// decrypted payload (the password of credentials, the url of a link).
	FieldSecrets = "secrets"
)

type RecordValidator struct {
}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultRecord:
		return v.validateRecord(ctx, value, fields...)
	case *models.VaultRecord:
		return v.validateRecord(ctx, *value, fields...)

	case models.RecordPayload:
		return v.validatePayload(ctx, value, fields...)
	case *models.RecordPayload:
		return v.validatePayload(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(ctx context.Context, record models.VaultRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldTitle, FieldKind, FieldSealedPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldOwnerID:
			if record.OwnerID == "" {
				return ErrEmptyOwnerID
			}
		case FieldTitle:
			if strings.TrimSpace(record.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldKind:
			if !record.Kind.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidKind, record.Kind)
			}
		case FieldSealedPayload:
			if record.SealedPayload == "" {
				return ErrEmptySealedPayload
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validatePayload(ctx context.Context, payload models.RecordPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldVariant, FieldSecrets}
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			if !payload.Kind.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidKind, payload.Kind)
			}
		case FieldVariant:
			if err := payload.Validate(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
			}
		case FieldSecrets:
			if payload.Password != nil && payload.Password.Password == "" {
				return ErrEmptyPassword
			}
			if payload.Link != nil && strings.TrimSpace(payload.Link.URL) == "" {
				return ErrEmptyURL
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
