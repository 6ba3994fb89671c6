// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/preston16161/dashboarDelta/internal/kv"
)

func TestEvents_AddAndList(t *testing.T) {
	ctx := context.Background()
	e := NewEvents(ctx, kv.NewMemoryStore())

	ev, err := e.Add(ctx, "Entraînement mensuel", "training", "2026-09-05", "Salle B")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ev.ID == "" {
		t.Error("new event should get an id")
	}

	if _, err := e.Add(ctx, "", "meeting", "2026-09-06", ""); err == nil {
		t.Error("expected a validation error for missing title")
	}
	if _, err := e.Add(ctx, "Réunion", "meeting", "", ""); err == nil {
		t.Error("expected a validation error for missing date")
	}

	all := e.All()
	if len(all) != 1 || all[0].Title != "Entraînement mensuel" {
		t.Errorf("calendar = %+v, want the single valid entry", all)
	}
}

func TestEvents_Delete(t *testing.T) {
	ctx := context.Background()
	medium := kv.NewMemoryStore()
	e := NewEvents(ctx, medium)

	ev, _ := e.Add(ctx, "Cérémonie", "ceremony", "2026-10-01", "")
	e.Add(ctx, "Réunion d'état-major", "meeting", "2026-10-02", "")

	deleted, ok := e.Delete(ctx, ev.ID)
	if !ok || deleted.Title != "Cérémonie" {
		t.Fatalf("Delete = (%+v, %v), want the deleted event", deleted, ok)
	}
	if _, ok := e.Delete(ctx, "missing"); ok {
		t.Error("deleting an unknown id must report false")
	}

	reloaded := NewEvents(ctx, medium)
	all := reloaded.All()
	if len(all) != 1 || all[0].Title != "Réunion d'état-major" {
		t.Errorf("calendar after reload = %+v", all)
	}
}
