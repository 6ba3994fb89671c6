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

type reportsFixture struct {
	handler       *ReportsHandler
	reports       *store.Reports
	personnel     *store.Personnel
	notifications *store.Notifications
	activity      *store.ActivityLog
}

func newTestReportsHandler(t *testing.T) reportsFixture {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	medium := kv.NewMemoryStore()
	f := reportsFixture{
		reports:       store.NewReports(db),
		personnel:     store.NewPersonnel(ctx, medium),
		notifications: store.NewNotifications(ctx, medium),
		activity:      store.NewActivityLog(ctx, medium),
	}
	f.handler = NewReportsHandler(f.reports, f.personnel, f.notifications, f.activity, testutil.TestLoggerSilent())
	return f
}

func TestReportsHandler_Create(t *testing.T) {
	f := newTestReportsHandler(t)
	member, err := f.personnel.Add(context.Background(), store.MemberInput{
		Username: "marc.dupont", Password: "x", Name: "Marc Dupont",
	})
	if err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}

	r := jsonRequest(t, http.MethodPost, "/api/reports", map[string]any{
		"type":  "mission",
		"title": "Patrouille de nuit",
	})
	rec := httptest.NewRecorder()
	f.handler.Create(rec, withIdentity(r, model.Identity{Username: "marc.dupont"}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got model.Report
	decodeData(t, rec, &got)
	if got.AuthorID != member.ID {
		t.Errorf("expected author id %d, got %d", member.ID, got.AuthorID)
	}
	if got.AuthorName != "Marc Dupont" {
		t.Errorf("expected resolved author name, got %q", got.AuthorName)
	}

	// Filing a report announces it.
	visible := f.notifications.Visible(false)
	if len(visible) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(visible))
	}
	if visible[0].Title != "Nouveau rapport" {
		t.Errorf("unexpected notification title %q", visible[0].Title)
	}
}

func TestReportsHandler_Create_Superuser(t *testing.T) {
	f := newTestReportsHandler(t)

	r := jsonRequest(t, http.MethodPost, "/api/reports", map[string]any{
		"type":  "incident",
		"title": "Alerte système",
	})
	rec := httptest.NewRecorder()
	f.handler.Create(rec, withIdentity(r, model.Identity{Username: "Preston1616", IsAdmin: true}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var got model.Report
	decodeData(t, rec, &got)
	if got.AuthorID != 0 || got.AuthorName != "admin" {
		t.Errorf("expected superuser report under id 0 / admin, got %d / %q", got.AuthorID, got.AuthorName)
	}
}

func TestReportsHandler_Create_MissingFields(t *testing.T) {
	f := newTestReportsHandler(t)

	r := jsonRequest(t, http.MethodPost, "/api/reports", map[string]any{"title": "Sans type"})
	rec := httptest.NewRecorder()
	f.handler.Create(rec, withIdentity(r, model.Identity{Username: "marc"}))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestReportsHandler_List_NewestFirst(t *testing.T) {
	f := newTestReportsHandler(t)
	ctx := context.Background()
	for _, title := range []string{"Premier", "Deuxième"} {
		if _, err := f.reports.Create(ctx, store.ReportInput{Type: "mission", Title: title}); err != nil {
			t.Fatalf("failed to seed report: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	f.handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))

	var got []model.Report
	decodeData(t, rec, &got)
	if len(got) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(got))
	}
	if got[0].Title != "Deuxième" {
		t.Errorf("expected newest first, got %q", got[0].Title)
	}
}

func TestReportsHandler_Delete_RecordsActivity(t *testing.T) {
	f := newTestReportsHandler(t)
	report, err := f.reports.Create(context.Background(), store.ReportInput{Type: "mission", Title: "À supprimer"})
	if err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}

	r := httptest.NewRequest(http.MethodDelete, "/api/reports/"+formatID(report.ID), nil)
	r = withIdentity(r, model.Identity{Username: "moderateur"})
	rec := httptest.NewRecorder()
	f.handler.Delete(rec, withURLParam(r, "id", formatID(report.ID)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := f.reports.Get(context.Background(), report.ID); err == nil {
		t.Error("expected report to be gone")
	}

	entries := f.activity.Entries(model.Identity{IsAdmin: true})
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Action != "Suppression de rapport" || entries[0].Username != "moderateur" {
		t.Errorf("unexpected audit entry %+v", entries[0])
	}

	items := f.notifications.All()
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	if items[0].Title != "Rapport supprimé" || items[0].Kind != model.NotificationWarning {
		t.Errorf("unexpected deletion notification %+v", items[0])
	}
	if !items[0].AdminOnly {
		t.Error("deletion notification must be admin-only")
	}
	if !strings.Contains(items[0].Message, "À supprimer") || !strings.Contains(items[0].Message, "moderateur") {
		t.Errorf("Message = %q", items[0].Message)
	}
}

func TestReportsHandler_Delete_NotFound(t *testing.T) {
	f := newTestReportsHandler(t)

	r := httptest.NewRequest(http.MethodDelete, "/api/reports/999", nil)
	r = withIdentity(r, model.Identity{Username: "moderateur"})
	rec := httptest.NewRecorder()
	f.handler.Delete(rec, withURLParam(r, "id", "999"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
