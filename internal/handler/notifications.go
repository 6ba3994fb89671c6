// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston16161/dashboarDelta/internal/middleware"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// NotificationsHandler handles the notification center endpoints.
type NotificationsHandler struct {
	notifications *store.Notifications
}

// NewNotificationsHandler creates a new NotificationsHandler.
func NewNotificationsHandler(notifications *store.Notifications) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List returns the notifications visible to the caller. Admin-only entries
// are filtered out for non-admin viewers.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	WriteSuccess(w, h.notifications.Visible(identity.IsAdmin))
}

// MarkRead flags one notification as read. Unknown ids are a no-op.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.notifications.MarkRead(r.Context(), id)
	WriteSuccess(w, map[string]string{"id": id})
}

// Remove deletes one notification. Unknown ids are a no-op.
func (h *NotificationsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.notifications.Remove(r.Context(), id)
	WriteSuccess(w, map[string]string{"id": id})
}

// Clear deletes every notification.
func (h *NotificationsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.notifications.ClearAll(r.Context())
	WriteSuccess(w, map[string]string{"status": "effacé"})
}

// UnreadCount returns the number of unread notifications visible to the
// caller. Admin-only entries never inflate a non-admin badge.
func (h *NotificationsHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	count := 0
	for _, item := range h.notifications.Visible(identity.IsAdmin) {
		if !item.Read {
			count++
		}
	}
	WriteSuccess(w, map[string]int{"unread": count})
}
