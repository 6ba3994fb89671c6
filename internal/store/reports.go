// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/preston16161/dashboarDelta/internal/model"
)

// ErrMissingReportFields rejects report creation without type or title.
var ErrMissingReportFields = errors.New("report type and title are required")

// Reports is the SQL-backed record-keeping side of the portal. Unlike the
// snapshot stores it lives in the relational tables, mirroring the upstream
// service the original views talked to over HTTP.
type Reports struct {
	db *sql.DB
}

// NewReports creates the report store over the application database.
func NewReports(db *sql.DB) *Reports {
	return &Reports{db: db}
}

// ReportInput carries the caller-supplied fields of a new report.
type ReportInput struct {
	Type         string
	Title        string
	Description  string
	Participants string
	Outcome      string
	Priority     string
	AuthorID     int64
	CreatedAt    time.Time // zero means now; set by the legacy importer
}

// Create inserts a report and returns it with its assigned id.
func (r *Reports) Create(ctx context.Context, in ReportInput) (model.Report, error) {
	if in.Type == "" || in.Title == "" {
		return model.Report{}, ErrMissingReportFields
	}
	if in.Priority == "" {
		in.Priority = model.PriorityNormal
	}

	now := in.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (type, title, description, participants, outcome, priority, author_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Type, in.Title, in.Description, in.Participants, in.Outcome, in.Priority, in.AuthorID, now)
	if err != nil {
		return model.Report{}, fmt.Errorf("inserting report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Report{}, fmt.Errorf("reading report id: %w", err)
	}

	return model.Report{
		ID:           id,
		Type:         in.Type,
		Title:        in.Title,
		Description:  in.Description,
		Participants: in.Participants,
		Outcome:      in.Outcome,
		Priority:     in.Priority,
		AuthorID:     in.AuthorID,
		CreatedAt:    now,
	}, nil
}

// List returns every report, newest first. Author names are resolved from
// the personnel roster by the caller-supplied lookup; unknown author ids
// keep an empty name (a dangling reference is tolerated).
func (r *Reports) List(ctx context.Context, authorName func(id int64) string) ([]model.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, title, description, participants, outcome, priority, author_id, created_at
		FROM reports ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []model.Report
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(&rep.ID, &rep.Type, &rep.Title, &rep.Description,
			&rep.Participants, &rep.Outcome, &rep.Priority, &rep.AuthorID, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		if authorName != nil {
			rep.AuthorName = authorName(rep.AuthorID)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}
	return reports, nil
}

// Get returns one report by id.
func (r *Reports) Get(ctx context.Context, id int64) (model.Report, error) {
	var rep model.Report
	err := r.db.QueryRowContext(ctx, `
		SELECT id, type, title, description, participants, outcome, priority, author_id, created_at
		FROM reports WHERE id = ?`, id).
		Scan(&rep.ID, &rep.Type, &rep.Title, &rep.Description,
			&rep.Participants, &rep.Outcome, &rep.Priority, &rep.AuthorID, &rep.CreatedAt)
	if err != nil {
		return model.Report{}, fmt.Errorf("reading report %d: %w", id, err)
	}
	return rep, nil
}

// Delete removes a report by id. Unknown ids are a no-op, matching the
// not-found rule of the snapshot stores.
func (r *Reports) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting report %d: %w", id, err)
	}
	return nil
}
