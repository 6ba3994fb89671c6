// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// BackupRunner triggers a snapshot backup and returns the written file path.
type BackupRunner interface {
	RunNow(ctx context.Context) (string, error)
}

// AdminHandler handles maintenance endpoints. All of its routes are
// admin-gated.
type AdminHandler struct {
	backups BackupRunner
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(backups BackupRunner, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{backups: backups, logger: logger}
}

// Backup runs a snapshot backup immediately.
func (h *AdminHandler) Backup(w http.ResponseWriter, r *http.Request) {
	path, err := h.backups.RunNow(r.Context())
	if err != nil {
		h.logger.Error("manual backup failed", "error", err)
		WriteInternalError(w, "La sauvegarde a échoué")
		return
	}
	WriteSuccess(w, map[string]string{"path": path})
}
