// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston16161/dashboarDelta/internal/media"
)

// MediaHandler handles chat attachment uploads.
type MediaHandler struct {
	processor *media.Processor
	logger    *slog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(processor *media.Processor, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{processor: processor, logger: logger}
}

// Upload accepts a multipart image upload, normalizes it and returns its
// public URLs.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(media.MaxUploadBytes); err != nil {
		WriteBadRequest(w, "Formulaire multipart invalide", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Champ de fichier manquant", nil)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.processor.Process(file, header.Filename)
	if err != nil {
		h.logger.Warn("rejected media upload", "filename", header.Filename, "error", err)
		WriteValidationError(w, map[string]string{"file": err.Error()})
		return
	}
	WriteCreated(w, result)
}

// Delete removes an uploaded attachment and its thumbnail.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.processor.Delete(id); err != nil {
		WriteBadRequest(w, "Identifiant de média invalide", nil)
		return
	}
	WriteSuccess(w, map[string]string{"id": id})
}
