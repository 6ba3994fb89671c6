// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston16161/dashboarDelta/internal/markup"
	"github.com/preston16161/dashboarDelta/internal/middleware"
	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// CommsHandler handles chat messages, presence and the announcement board.
type CommsHandler struct {
	comms  *store.Comms
	logger *slog.Logger
}

// NewCommsHandler creates a new CommsHandler.
func NewCommsHandler(comms *store.Comms, logger *slog.Logger) *CommsHandler {
	return &CommsHandler{comms: comms, logger: logger}
}

type messageRequest struct {
	Receiver  *string `json:"receiver"`
	Content   string  `json:"content"`
	MediaURL  string  `json:"mediaUrl"`
	MediaType string  `json:"mediaType"`
}

// SendMessage posts a message as the caller. A null receiver addresses the
// broadcast channel.
func (h *CommsHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	var req messageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	msg, err := h.comms.SendMessage(r.Context(), store.MessageInput{
		Sender:    identity.Username,
		Receiver:  req.Receiver,
		Content:   req.Content,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
	})
	if err != nil {
		WriteValidationError(w, map[string]string{"content": err.Error()})
		return
	}
	WriteCreated(w, msg)
}

// Channel returns the messages of one channel, oldest first. Without a
// "with" query parameter it returns the broadcast channel.
func (h *CommsHandler) Channel(w http.ResponseWriter, r *http.Request) {
	var receiver *string
	if with := r.URL.Query().Get("with"); with != "" {
		receiver = &with
	}
	WriteSuccess(w, h.comms.Channel(receiver))
}

// MarkMessageRead flags one message as read. Unknown ids are a no-op.
func (h *CommsHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.comms.MarkMessageRead(r.Context(), id)
	WriteSuccess(w, map[string]string{"id": id})
}

// UnreadMessages returns the caller's count of unread direct messages.
func (h *CommsHandler) UnreadMessages(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	WriteSuccess(w, map[string]int{"unread": h.comms.UnreadCount(identity.Username)})
}

// Join marks the caller as online.
func (h *CommsHandler) Join(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	h.comms.AddOnlineUser(r.Context(), identity.Username)
	WriteSuccess(w, h.comms.OnlineUsers())
}

// Leave marks the caller as offline.
func (h *CommsHandler) Leave(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	h.comms.RemoveOnlineUser(r.Context(), identity.Username)
	WriteSuccess(w, h.comms.OnlineUsers())
}

// Presence returns the online user list.
func (h *CommsHandler) Presence(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.comms.OnlineUsers())
}

// announcementView is an announcement plus its rendered body.
type announcementView struct {
	model.Announcement
	HTML string `json:"html"`
}

func (h *CommsHandler) renderAnnouncement(a model.Announcement) announcementView {
	html, err := markup.Render(a.Content)
	if err != nil {
		h.logger.Warn("failed to render announcement", "id", a.ID, "error", err)
		html = ""
	}
	return announcementView{Announcement: a, HTML: html}
}

// Announcements returns the board, pinned entries first. Bodies are rendered
// from Markdown and sanitized.
func (h *CommsHandler) Announcements(w http.ResponseWriter, _ *http.Request) {
	entries := h.comms.Announcements()
	views := make([]announcementView, 0, len(entries))
	for _, a := range entries {
		views = append(views, h.renderAnnouncement(a))
	}
	WriteSuccess(w, views)
}

type announcementRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority string `json:"priority"`
	Pinned   bool   `json:"pinned"`
}

// CreateAnnouncement posts a board entry as the caller.
func (h *CommsHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	var req announcementRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.comms.AddAnnouncement(r.Context(), store.AnnouncementInput{
		Author:   identity.Username,
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
		Pinned:   req.Pinned,
	})
	if err != nil {
		WriteValidationError(w, map[string]string{"title": err.Error()})
		return
	}
	WriteCreated(w, h.renderAnnouncement(a))
}

// DeleteAnnouncement removes a board entry. Unknown ids are a no-op.
func (h *CommsHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.comms.DeleteAnnouncement(r.Context(), id)
	WriteSuccess(w, map[string]string{"id": id})
}

// TogglePin flips the pinned flag of a board entry.
func (h *CommsHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.comms.TogglePin(r.Context(), id)
	WriteSuccess(w, map[string]string{"id": id})
}
