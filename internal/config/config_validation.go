// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureNotes Authors

package config

import (
	"net/url"
	"time"
)

// Fallbacks applied after merging, before validation.
const (
	defaultRequestTimeout = 15 * time.Second
	defaultMinBackoff     = time.Second
	defaultMaxBackoff     = time.Minute
	defaultDatabase       = "securevault"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Remote.RequestTimeout == 0 {
		cfg.Remote.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Remote.Database == "" {
		cfg.Remote.Database = defaultDatabase
	}
	if cfg.Sync.MinBackoff == 0 {
		cfg.Sync.MinBackoff = defaultMinBackoff
	}
	if cfg.Sync.MaxBackoff == 0 {
		cfg.Sync.MaxBackoff = defaultMaxBackoff
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// engine invariants before it is used at startup.
//
// The local DSN is required: the store is the offline source of truth.
// The remote address is optional (the engine degrades to offline-only),
// but when present it must parse as an absolute URL.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Remote.Address != "" {
		u, err := url.Parse(cfg.Remote.Address)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrInvalidRemoteConfigs
		}
	}

	if cfg.Sync.MaxBackoff < cfg.Sync.MinBackoff {
		return ErrInvalidSyncConfigs
	}

	return nil
}
