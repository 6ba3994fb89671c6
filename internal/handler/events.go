// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// EventsHandler handles the planning calendar endpoints. Mutating routes
// are gated on the manage_events permission and announce themselves through
// the notification center.
type EventsHandler struct {
	events        *store.Events
	notifications *store.Notifications
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events *store.Events, notifications *store.Notifications) *EventsHandler {
	return &EventsHandler{events: events, notifications: notifications}
}

// List returns every calendar entry.
func (h *EventsHandler) List(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.events.All())
}

type eventRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Create adds a calendar entry and notifies every user.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event, err := h.events.Add(r.Context(), req.Title, req.Type, req.Date, req.Description)
	if err != nil {
		WriteValidationError(w, map[string]string{"event": err.Error()})
		return
	}
	_, _ = h.notifications.Add(r.Context(), store.NotificationInput{
		Title:   "Nouvel événement",
		Message: "L'événement \"" + event.Title + "\" a été créé",
		Kind:    model.NotificationSuccess,
	})
	WriteCreated(w, event)
}

// Delete removes a calendar entry and notifies every user.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, ok := h.events.Delete(r.Context(), id)
	if !ok {
		WriteNotFound(w, "Événement introuvable")
		return
	}
	_, _ = h.notifications.Add(r.Context(), store.NotificationInput{
		Title:   "Événement supprimé",
		Message: "L'événement \"" + event.Title + "\" a été supprimé",
		Kind:    model.NotificationWarning,
	})
	WriteSuccess(w, event)
}
