// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureNotes Authors

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrPayloadKindMismatch is returned when a RecordPayload carries a variant
// that does not match its declared kind.
var ErrPayloadKindMismatch = errors.New("payload variant does not match record kind")

// NotePayload is the decrypted content of a KindNote record.
type NotePayload struct {
	// Content is the note body.
	Content string `json:"content"`
}

// PasswordPayload is the decrypted content of a KindPassword record.
type PasswordPayload struct {
	// Username is the login identifier.
	Username string `json:"username"`

	// Password is the secret credential.
	Password string `json:"password"`

	// Website is the resource the credentials apply to.
	Website string `json:"website,omitempty"`

	// Notes holds optional free-form remarks.
	Notes string `json:"notes,omitempty"`
}

// LinkPayload is the decrypted content of a KindLink record.
type LinkPayload struct {
	// URL is the saved address.
	URL string `json:"url"`

	// Description is an optional annotation.
	Description string `json:"description,omitempty"`
}

// RecordPayload is the tagged union of all payload variants. Exactly one of
// Note, Password, or Link must be non-nil and must match Kind. The union is
// serialized to JSON only at the envelope-cipher boundary; the store never
// sees these shapes.
type RecordPayload struct {
	Kind     RecordKind       `json:"kind"`
	Note     *NotePayload     `json:"note,omitempty"`
	Password *PasswordPayload `json:"password,omitempty"`
	Link     *LinkPayload     `json:"link,omitempty"`
}

// NewNotePayload wraps a note body in a RecordPayload.
func NewNotePayload(content string) RecordPayload {
	return RecordPayload{Kind: KindNote, Note: &NotePayload{Content: content}}
}

// NewPasswordPayload wraps credentials in a RecordPayload.
func NewPasswordPayload(p PasswordPayload) RecordPayload {
	return RecordPayload{Kind: KindPassword, Password: &p}
}

// NewLinkPayload wraps a link in a RecordPayload.
func NewLinkPayload(l LinkPayload) RecordPayload {
	return RecordPayload{Kind: KindLink, Link: &l}
}

// Validate checks that exactly the variant named by Kind is present.
func (p RecordPayload) Validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("unknown record kind %q", p.Kind)
	}

	ok := false
	switch p.Kind {
	case KindNote:
		ok = p.Note != nil && p.Password == nil && p.Link == nil
	case KindPassword:
		ok = p.Password != nil && p.Note == nil && p.Link == nil
	case KindLink:
		ok = p.Link != nil && p.Note == nil && p.Password == nil
	}
	if !ok {
		return fmt.Errorf("%w: kind=%s", ErrPayloadKindMismatch, p.Kind)
	}

	return nil
}

// Encode serializes the payload to the byte form handed to the envelope
// cipher. It fails if the payload is not a valid tagged union.
func (p RecordPayload) Encode() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

// DecodePayload parses bytes produced by Encode back into a RecordPayload.
func DecodePayload(data []byte) (RecordPayload, error) {
	var p RecordPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return RecordPayload{}, fmt.Errorf("decode record payload: %w", err)
	}
	if err := p.Validate(); err != nil {
		return RecordPayload{}, err
	}
	return p, nil
}
