// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/preston16161/dashboarDelta/internal/middleware"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// ActivityHandler handles the audit trail endpoints.
type ActivityHandler struct {
	activity *store.ActivityLog
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activity *store.ActivityLog) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List returns the audit entries visible to the caller, newest first.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	WriteSuccess(w, h.activity.Entries(identity))
}

// Clear wipes the audit trail.
func (h *ActivityHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.activity.Clear(r.Context())
	WriteSuccess(w, map[string]string{"status": "effacé"})
}
