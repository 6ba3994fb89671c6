// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/preston16161/dashboarDelta/internal/middleware"
	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// ReportsHandler handles the record-keeping endpoints. Reports live in SQL,
// unlike the snapshot-backed stores.
type ReportsHandler struct {
	reports       *store.Reports
	personnel     *store.Personnel
	notifications *store.Notifications
	activity      *store.ActivityLog
	logger        *slog.Logger
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(reports *store.Reports, personnel *store.Personnel, notifications *store.Notifications, activity *store.ActivityLog, logger *slog.Logger) *ReportsHandler {
	return &ReportsHandler{
		reports:       reports,
		personnel:     personnel,
		notifications: notifications,
		activity:      activity,
		logger:        logger,
	}
}

// authorName resolves a roster id for display. The superuser writes reports
// under id 0.
func (h *ReportsHandler) authorName(id int64) string {
	if id == 0 {
		return "admin"
	}
	if member, ok := h.personnel.FindByID(id); ok {
		return member.Name
	}
	return "Inconnu"
}

// List returns every report, newest first, with author names resolved.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reports.List(r.Context(), h.authorName)
	if err != nil {
		h.logger.Error("failed to list reports", "error", err)
		WriteInternalError(w, "Impossible de lister les rapports")
		return
	}
	WriteSuccess(w, reports)
}

// Get returns one report.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant de rapport invalide", nil)
		return
	}
	report, err := h.reports.Get(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Rapport introuvable")
		return
	}
	report.AuthorName = h.authorName(report.AuthorID)
	WriteSuccess(w, report)
}

type reportRequest struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Participants string `json:"participants"`
	Outcome      string `json:"outcome"`
	Priority     string `json:"priority"`
}

// Create files a report as the caller and announces it to every user.
func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	var req reportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var authorID int64
	if member, ok := h.personnel.FindByUsername(identity.Username); ok {
		authorID = member.ID
	}

	report, err := h.reports.Create(r.Context(), store.ReportInput{
		Type:         req.Type,
		Title:        req.Title,
		Description:  req.Description,
		Participants: req.Participants,
		Outcome:      req.Outcome,
		Priority:     req.Priority,
		AuthorID:     authorID,
	})
	if err != nil {
		WriteValidationError(w, map[string]string{"report": err.Error()})
		return
	}
	report.AuthorName = h.authorName(report.AuthorID)

	if _, err := h.notifications.Add(r.Context(), store.NotificationInput{
		Title:   "Nouveau rapport",
		Message: report.Title + " par " + report.AuthorName,
		Kind:    model.NotificationInfo,
	}); err != nil {
		h.logger.Warn("failed to notify about new report", "error", err)
	}

	WriteCreated(w, report)
}

// Delete removes a report and records the removal in the audit trail. The
// route is gated on the delete_reports permission.
func (h *ReportsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant de rapport invalide", nil)
		return
	}
	report, err := h.reports.Get(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Rapport introuvable")
		return
	}
	if err := h.reports.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete report", "id", id, "error", err)
		WriteInternalError(w, "Impossible de supprimer le rapport")
		return
	}
	if _, err := h.notifications.Add(r.Context(), store.NotificationInput{
		Title:     "Rapport supprimé",
		Message:   "Le rapport \"" + report.Title + "\" a été supprimé par " + identity.Username,
		Kind:      model.NotificationWarning,
		AdminOnly: true,
	}); err != nil {
		h.logger.Warn("failed to notify about report deletion", "error", err)
	}
	h.activity.Add(r.Context(), "Suppression de rapport", report.Title, identity.Username)
	WriteSuccess(w, map[string]int64{"id": id})
}
