// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
	"github.com/preston16161/dashboarDelta/internal/testutil"
)

func newTestCommsHandler(t *testing.T) (*CommsHandler, *store.Comms) {
	t.Helper()
	comms := store.NewComms(context.Background(), kv.NewMemoryStore())
	return NewCommsHandler(comms, testutil.TestLoggerSilent()), comms
}

func TestCommsHandler_SendMessage_Broadcast(t *testing.T) {
	h, comms := newTestCommsHandler(t)

	r := jsonRequest(t, http.MethodPost, "/api/messages", map[string]any{
		"receiver": nil,
		"content":  "Briefing à 14h",
	})
	rec := httptest.NewRecorder()
	h.SendMessage(rec, withIdentity(r, model.Identity{Username: "marc.dupont"}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got model.Message
	decodeData(t, rec, &got)
	if got.Sender != "marc.dupont" {
		t.Errorf("expected sender from identity, got %q", got.Sender)
	}
	if !got.Broadcast() {
		t.Error("expected a broadcast message")
	}
	if len(comms.Channel(nil)) != 1 {
		t.Error("expected message in the broadcast channel")
	}
}

func TestCommsHandler_Channel_Direct(t *testing.T) {
	h, comms := newTestCommsHandler(t)
	ctx := context.Background()
	receiver := "sophie.martin"
	if _, err := comms.SendMessage(ctx, store.MessageInput{Sender: "marc", Receiver: &receiver, Content: "Salut"}); err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}
	if _, err := comms.SendMessage(ctx, store.MessageInput{Sender: "marc", Content: "À tous"}); err != nil {
		t.Fatalf("failed to seed broadcast: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Channel(rec, httptest.NewRequest(http.MethodGet, "/api/messages?with=sophie.martin", nil))

	var got []model.Message
	decodeData(t, rec, &got)
	if len(got) != 1 {
		t.Fatalf("expected 1 direct message, got %d", len(got))
	}
	if got[0].Content != "Salut" {
		t.Errorf("unexpected message content %q", got[0].Content)
	}
}

func TestCommsHandler_UnreadMessages(t *testing.T) {
	h, comms := newTestCommsHandler(t)
	receiver := "sophie.martin"
	if _, err := comms.SendMessage(context.Background(), store.MessageInput{Sender: "marc", Receiver: &receiver, Content: "Salut"}); err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/messages/unread-count", nil)
	rec := httptest.NewRecorder()
	h.UnreadMessages(rec, withIdentity(r, model.Identity{Username: "sophie.martin"}))

	var got struct {
		Unread int `json:"unread"`
	}
	decodeData(t, rec, &got)
	if got.Unread != 1 {
		t.Errorf("expected 1 unread, got %d", got.Unread)
	}
}

func TestCommsHandler_Presence(t *testing.T) {
	h, _ := newTestCommsHandler(t)

	join := httptest.NewRequest(http.MethodPost, "/api/presence", nil)
	rec := httptest.NewRecorder()
	h.Join(rec, withIdentity(join, model.Identity{Username: "marc.dupont"}))

	var online []string
	decodeData(t, rec, &online)
	if len(online) != 1 || online[0] != "marc.dupont" {
		t.Fatalf("expected marc.dupont online, got %v", online)
	}

	leave := httptest.NewRequest(http.MethodDelete, "/api/presence", nil)
	rec = httptest.NewRecorder()
	h.Leave(rec, withIdentity(leave, model.Identity{Username: "marc.dupont"}))

	online = nil
	decodeData(t, rec, &online)
	if len(online) != 0 {
		t.Fatalf("expected nobody online, got %v", online)
	}
}

func TestCommsHandler_CreateAnnouncement_RendersMarkdown(t *testing.T) {
	h, _ := newTestCommsHandler(t)

	r := jsonRequest(t, http.MethodPost, "/api/announcements", map[string]any{
		"title":    "Exercice annulé",
		"content":  "L'exercice de **samedi** est annulé.",
		"priority": "important",
	})
	rec := httptest.NewRecorder()
	h.CreateAnnouncement(rec, withIdentity(r, model.Identity{Username: "Preston1616", IsAdmin: true}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		model.Announcement
		HTML string `json:"html"`
	}
	decodeData(t, rec, &got)
	if !strings.Contains(got.HTML, "<strong>samedi</strong>") {
		t.Errorf("expected rendered markdown, got %q", got.HTML)
	}
	if got.Priority != model.PriorityImportant {
		t.Errorf("expected important priority, got %q", got.Priority)
	}
}

func TestCommsHandler_Announcements_SanitizesHTML(t *testing.T) {
	h, comms := newTestCommsHandler(t)
	if _, err := comms.AddAnnouncement(context.Background(), store.AnnouncementInput{
		Author:  "Preston1616",
		Title:   "Info",
		Content: "Bonjour <script>alert(1)</script>",
	}); err != nil {
		t.Fatalf("failed to seed announcement: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Announcements(rec, httptest.NewRequest(http.MethodGet, "/api/announcements", nil))

	if strings.Contains(rec.Body.String(), "<script>") {
		t.Error("expected script tags to be stripped from rendered bodies")
	}
}

func TestCommsHandler_TogglePin(t *testing.T) {
	h, comms := newTestCommsHandler(t)
	a, err := comms.AddAnnouncement(context.Background(), store.AnnouncementInput{
		Author: "Preston1616", Title: "Info", Content: "x",
	})
	if err != nil {
		t.Fatalf("failed to seed announcement: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/announcements/"+a.ID+"/pin", nil)
	rec := httptest.NewRecorder()
	h.TogglePin(rec, withURLParam(r, "id", a.ID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	entries := comms.Announcements()
	if len(entries) != 1 || !entries[0].Pinned {
		t.Error("expected the announcement to be pinned")
	}
}
