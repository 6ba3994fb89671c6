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

func newTestEventsHandler(t *testing.T) (*EventsHandler, *store.Events) {
	t.Helper()
	ctx := context.Background()
	events := store.NewEvents(ctx, kv.NewMemoryStore())
	notifications := store.NewNotifications(ctx, kv.NewMemoryStore())
	return NewEventsHandler(events, notifications), events
}

func TestEventsHandler_CreateAndList(t *testing.T) {
	h, _ := newTestEventsHandler(t)

	r := jsonRequest(t, http.MethodPost, "/api/events", map[string]string{
		"title": "Exercice de tir",
		"type":  "training",
		"date":  "2026-09-12",
	})
	rec := httptest.NewRecorder()
	h.Create(rec, r)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	var got []model.Event
	decodeData(t, rec, &got)
	if len(got) != 1 || got[0].Title != "Exercice de tir" {
		t.Fatalf("unexpected calendar %+v", got)
	}
}

func TestEventsHandler_Create_MissingTitle(t *testing.T) {
	h, _ := newTestEventsHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/api/events", map[string]string{"type": "mission"}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestEventsHandler_CreateAndDelete_Notify(t *testing.T) {
	ctx := context.Background()
	events := store.NewEvents(ctx, kv.NewMemoryStore())
	notifications := store.NewNotifications(ctx, kv.NewMemoryStore())
	h := NewEventsHandler(events, notifications)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/api/events", map[string]string{
		"title": "Cérémonie",
		"type":  "mission",
		"date":  "2026-11-11",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	items := notifications.All()
	if len(items) != 1 {
		t.Fatalf("expected 1 notification after create, got %d", len(items))
	}
	if items[0].Title != "Nouvel événement" || items[0].Kind != model.NotificationSuccess {
		t.Errorf("unexpected creation notification %+v", items[0])
	}

	var created model.Event
	decodeData(t, rec, &created)
	r := httptest.NewRequest(http.MethodDelete, "/api/events/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.Delete(rec, withURLParam(r, "id", created.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	items = notifications.All()
	if len(items) != 2 {
		t.Fatalf("expected 2 notifications after delete, got %d", len(items))
	}
	if items[0].Title != "Événement supprimé" || items[0].Kind != model.NotificationWarning {
		t.Errorf("unexpected deletion notification %+v", items[0])
	}
	if items[0].AdminOnly {
		t.Error("event notifications are visible to everyone")
	}
}

func TestEventsHandler_Delete(t *testing.T) {
	h, events := newTestEventsHandler(t)
	event, err := events.Add(context.Background(), "Revue annuelle", "mission", "2026-10-01", "")
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	r := httptest.NewRequest(http.MethodDelete, "/api/events/"+event.ID, nil)
	rec := httptest.NewRecorder()
	h.Delete(rec, withURLParam(r, "id", event.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	r = httptest.NewRequest(http.MethodDelete, "/api/events/"+event.ID, nil)
	rec = httptest.NewRecorder()
	h.Delete(rec, withURLParam(r, "id", event.ID))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on the second delete, got %d", rec.Code)
	}
}
