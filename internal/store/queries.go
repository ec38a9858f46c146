// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureNotes Authors

package store

const (
	getRecord = `
		SELECT
			id,
			owner_id,
			kind,
			title,
			sealed_payload,
			revision,
			deleted,
			created_at,
			updated_at
		FROM vault_records
		WHERE id = $1;`

	insertRecord = `
		INSERT INTO vault_records (
			id,
			owner_id,
			kind,
			title,
			sealed_payload,
			revision,
			deleted,
			pending_push,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	updateRecord = `
		UPDATE vault_records SET
			title          = $1,
			sealed_payload = $2,
			revision       = $3,
			deleted        = $4,
			pending_push   = $5,
			updated_at     = $6
		WHERE id = $7;`

	getStates = `
		SELECT
			id,
			revision,
			deleted,
			updated_at
		FROM vault_records
		WHERE owner_id = $1;`

	getPending = `
		SELECT
			id,
			owner_id,
			kind,
			title,
			sealed_payload,
			revision,
			deleted,
			created_at,
			updated_at
		FROM vault_records
		WHERE owner_id = $1 AND pending_push = 1;`

	markPushed = `
		UPDATE vault_records SET
			revision     = $1,
			pending_push = 0
		WHERE id = $2 AND revision = $3;`

	applyRecord = `
		INSERT INTO vault_records (
			id,
			owner_id,
			kind,
			title,
			sealed_payload,
			revision,
			deleted,
			pending_push,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title          = excluded.title,
			sealed_payload = excluded.sealed_payload,
			revision       = excluded.revision,
			deleted        = excluded.deleted,
			pending_push   = 0,
			updated_at     = excluded.updated_at;`
)
