// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the dashboarDelta project.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/preston16161/dashboarDelta/internal/db"
	"github.com/preston16161/dashboarDelta/internal/kv"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "delta-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	conn, err := db.New(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("db.New: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		_ = conn.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("db.Migrate: %v", err)
	}

	return conn, func() {
		_ = conn.Close()
		_ = os.Remove(dbPath)
	}
}

// TestKV returns an in-memory snapshot medium for store tests that do not
// exercise durability.
func TestKV(t *testing.T) kv.Store {
	t.Helper()
	return kv.NewMemoryStore()
}
