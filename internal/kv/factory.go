// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"database/sql"
	"log/slog"
)

// Config selects the snapshot medium.
type Config struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string

	// Prefix is the Redis key prefix.
	Prefix string

	// FallbackToSQLite falls back to the SQLite backend when Redis is
	// configured but unreachable, instead of failing startup.
	FallbackToSQLite bool
}

// New creates the snapshot medium from the configuration. The SQLite backend
// over the application database is the default.
func New(db *sql.DB, cfg Config) (Store, error) {
	if cfg.RedisURL == "" {
		return NewSQLiteStore(db), nil
	}

	store, err := NewRedisStore(RedisOptions{URL: cfg.RedisURL, Prefix: cfg.Prefix})
	if err != nil {
		if cfg.FallbackToSQLite {
			slog.Warn("redis snapshot store unavailable, falling back to sqlite", "error", err)
			return NewSQLiteStore(db), nil
		}
		return nil, err
	}
	return store, nil
}
