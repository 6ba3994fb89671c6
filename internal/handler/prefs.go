// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/preston16161/dashboarDelta/internal/middleware"
	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// PrefsHandler handles per-user display settings.
type PrefsHandler struct {
	prefs *store.Preferences
}

// NewPrefsHandler creates a new PrefsHandler.
func NewPrefsHandler(prefs *store.Preferences) *PrefsHandler {
	return &PrefsHandler{prefs: prefs}
}

// Get returns the caller's settings, defaults if none are stored.
func (h *PrefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	WriteSuccess(w, h.prefs.Get(identity.Username))
}

// Set replaces the caller's settings.
func (h *PrefsHandler) Set(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	var req model.Preferences
	if !decodeJSON(w, r, &req) {
		return
	}
	h.prefs.Set(r.Context(), identity.Username, req)
	WriteSuccess(w, req)
}
