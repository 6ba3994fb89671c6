// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

func newTestNotificationsHandler(t *testing.T) (*NotificationsHandler, *store.Notifications) {
	t.Helper()
	notifications := store.NewNotifications(context.Background(), kv.NewMemoryStore())
	return NewNotificationsHandler(notifications), notifications
}

func seedNotification(t *testing.T, n *store.Notifications, title string, adminOnly bool) model.Notification {
	t.Helper()
	created, err := n.Add(context.Background(), store.NotificationInput{
		Title:     title,
		Message:   "détails",
		Kind:      model.NotificationInfo,
		AdminOnly: adminOnly,
	})
	if err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}
	return created
}

func TestNotificationsHandler_List_FiltersAdminOnly(t *testing.T) {
	h, notifications := newTestNotificationsHandler(t)
	seedNotification(t, notifications, "Pour tous", false)
	seedNotification(t, notifications, "Accès refusé", true)

	r := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	rec := httptest.NewRecorder()
	h.List(rec, withIdentity(r, model.Identity{Username: "marc"}))

	var got []model.Notification
	decodeData(t, rec, &got)
	if len(got) != 1 || got[0].Title != "Pour tous" {
		t.Fatalf("expected only the public notification, got %+v", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	rec = httptest.NewRecorder()
	h.List(rec, withIdentity(r, model.Identity{Username: "Preston1616", IsAdmin: true}))

	got = nil
	decodeData(t, rec, &got)
	if len(got) != 2 {
		t.Fatalf("expected the admin to see both notifications, got %d", len(got))
	}
}

func TestNotificationsHandler_MarkReadAndUnreadCount(t *testing.T) {
	h, notifications := newTestNotificationsHandler(t)
	created := seedNotification(t, notifications, "Info", false)

	r := httptest.NewRequest(http.MethodPost, "/api/notifications/"+created.ID+"/read", nil)
	rec := httptest.NewRecorder()
	h.MarkRead(rec, withURLParam(r, "id", created.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.UnreadCount(rec, httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil))
	var got struct {
		Unread int `json:"unread"`
	}
	decodeData(t, rec, &got)
	if got.Unread != 0 {
		t.Errorf("expected 0 unread, got %d", got.Unread)
	}
}

func TestNotificationsHandler_UnreadCount_ScopedToViewer(t *testing.T) {
	h, notifications := newTestNotificationsHandler(t)
	seedNotification(t, notifications, "Pour tous", false)
	seedNotification(t, notifications, "Accès refusé", true)
	seedNotification(t, notifications, "Avertissement système", true)

	r := httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil)
	rec := httptest.NewRecorder()
	h.UnreadCount(rec, withIdentity(r, model.Identity{Username: "marc"}))
	var got struct {
		Unread int `json:"unread"`
	}
	decodeData(t, rec, &got)
	if got.Unread != 1 {
		t.Errorf("expected 1 unread for a non-admin viewer, got %d", got.Unread)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil)
	rec = httptest.NewRecorder()
	h.UnreadCount(rec, withIdentity(r, model.Identity{Username: "Preston1616", IsAdmin: true}))
	got.Unread = -1
	decodeData(t, rec, &got)
	if got.Unread != 3 {
		t.Errorf("expected 3 unread for the admin, got %d", got.Unread)
	}
}

func TestNotificationsHandler_RemoveAndClear(t *testing.T) {
	h, notifications := newTestNotificationsHandler(t)
	first := seedNotification(t, notifications, "Première", false)
	seedNotification(t, notifications, "Deuxième", false)

	r := httptest.NewRequest(http.MethodDelete, "/api/notifications/"+first.ID, nil)
	rec := httptest.NewRecorder()
	h.Remove(rec, withURLParam(r, "id", first.ID))
	if len(notifications.All()) != 1 {
		t.Fatalf("expected 1 notification left, got %d", len(notifications.All()))
	}

	rec = httptest.NewRecorder()
	h.Clear(rec, httptest.NewRequest(http.MethodDelete, "/api/notifications", nil))
	if len(notifications.All()) != 0 {
		t.Error("expected an empty notification center")
	}
}
