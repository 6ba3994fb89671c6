// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/preston16161/dashboarDelta/internal/kv"
)

// Backups dumps every snapshot held by the key-value medium into one
// timestamped JSON file per run.
type Backups struct {
	medium kv.Store
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewBackups creates a backup runner writing into dir.
func NewBackups(medium kv.Store, dir string, logger *slog.Logger) *Backups {
	return &Backups{
		medium: medium,
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// RunNow writes a backup file and returns its path. Snapshot values are
// embedded verbatim, so a backup file is itself valid JSON.
func (b *Backups) RunNow(ctx context.Context) (string, error) {
	keys, err := b.medium.Keys(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list snapshot keys: %w", err)
	}

	dump := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		value, err := b.medium.Get(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to read snapshot %q: %w", key, err)
		}
		if !json.Valid(value) {
			b.logger.Warn("skipping non-JSON snapshot in backup", "key", key)
			continue
		}
		dump[key] = json.RawMessage(value)
	}

	if err := os.MkdirAll(b.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path := filepath.Join(b.dir, b.now().UTC().Format("20060102-150405")+".json")
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	b.logger.Info("backup written", "path", path, "snapshots", len(dump))
	return path, nil
}
