// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer imports the legacy PHP portal's MySQL database into the
// current stores. It is a one-shot migration run from the command line.
package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// Importer loads legacy users and reports into the portal.
type Importer struct {
	personnel *store.Personnel
	reports   *store.Reports
	logger    *slog.Logger
}

// NewImporter creates a new Importer.
func NewImporter(personnel *store.Personnel, reports *store.Reports, logger *slog.Logger) *Importer {
	return &Importer{
		personnel: personnel,
		reports:   reports,
		logger:    logger,
	}
}

// Summary counts what an import run did.
type Summary struct {
	Users          int
	Reports        int
	SkippedUsers   int
	SkippedReports int
}

// legacyUser mirrors one row of the old portal's users table.
type legacyUser struct {
	ID       int64
	Username string
	Password string
	Name     string
	Rank     sql.NullString
	Division sql.NullString
	Status   sql.NullString
	Email    sql.NullString
	Phone    sql.NullString
	Roles    sql.NullString
}

// legacyReport mirrors one row of the old portal's reports table.
type legacyReport struct {
	Type         string
	Title        string
	Description  sql.NullString
	Participants sql.NullString
	Outcome      sql.NullString
	Priority     sql.NullString
	AuthorID     int64
	CreatedAt    sql.NullString
}

// Run connects to the legacy database and imports users then reports.
func (i *Importer) Run(ctx context.Context, dsn string) (Summary, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return Summary{}, fmt.Errorf("opening legacy database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return Summary{}, fmt.Errorf("reaching legacy database: %w", err)
	}

	users, err := readLegacyUsers(ctx, db)
	if err != nil {
		return Summary{}, err
	}
	reports, err := readLegacyReports(ctx, db)
	if err != nil {
		return Summary{}, err
	}

	return i.load(ctx, users, reports)
}

// load inserts the legacy rows into the portal stores. Report author ids
// are remapped to the newly assigned member ids; reports whose author was
// skipped keep a zero author id.
func (i *Importer) load(ctx context.Context, users []legacyUser, reports []legacyReport) (Summary, error) {
	var sum Summary

	idMap := make(map[int64]int64, len(users))
	for _, u := range users {
		if _, exists := i.personnel.FindByUsername(u.Username); exists {
			i.logger.Warn("skipping duplicate legacy user", "username", u.Username)
			sum.SkippedUsers++
			continue
		}
		member, err := i.personnel.Add(ctx, store.MemberInput{
			Username: u.Username,
			Password: u.Password,
			Name:     u.Name,
			Rank:     u.Rank.String,
			Division: u.Division.String,
			Email:    u.Email.String,
			Phone:    u.Phone.String,
			Roles:    parseLegacyRoles(u.Roles.String),
		})
		if err != nil {
			i.logger.Warn("skipping invalid legacy user", "username", u.Username, "error", err)
			sum.SkippedUsers++
			continue
		}
		if u.Status.Valid && u.Status.String == model.StatusInactive {
			i.personnel.ToggleStatus(ctx, member.ID)
		}
		idMap[u.ID] = member.ID
		sum.Users++
	}

	for _, r := range reports {
		if _, err := i.reports.Create(ctx, store.ReportInput{
			Type:         r.Type,
			Title:        r.Title,
			Description:  r.Description.String,
			Participants: r.Participants.String,
			Outcome:      r.Outcome.String,
			Priority:     r.Priority.String,
			AuthorID:     idMap[r.AuthorID],
			CreatedAt:    parseLegacyTime(r.CreatedAt.String),
		}); err != nil {
			i.logger.Warn("skipping invalid legacy report", "title", r.Title, "error", err)
			sum.SkippedReports++
			continue
		}
		sum.Reports++
	}

	i.logger.Info("legacy import finished",
		"users", sum.Users,
		"reports", sum.Reports,
		"skipped_users", sum.SkippedUsers,
		"skipped_reports", sum.SkippedReports,
	)
	return sum, nil
}

func readLegacyUsers(ctx context.Context, db *sql.DB) ([]legacyUser, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, username, password, name, grade, division, status, email, phone, roles
		FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("reading legacy users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []legacyUser
	for rows.Next() {
		var u legacyUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Name,
			&u.Rank, &u.Division, &u.Status, &u.Email, &u.Phone, &u.Roles); err != nil {
			return nil, fmt.Errorf("scanning legacy user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func readLegacyReports(ctx context.Context, db *sql.DB) ([]legacyReport, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT type, title, description, participants, outcome, priority, author_id, created_at
		FROM reports ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("reading legacy reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []legacyReport
	for rows.Next() {
		var r legacyReport
		if err := rows.Scan(&r.Type, &r.Title, &r.Description,
			&r.Participants, &r.Outcome, &r.Priority, &r.AuthorID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning legacy report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// parseLegacyRoles accepts both the JSON array form written by newer PHP
// versions and the older comma-separated form.
func parseLegacyRoles(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var roles []string
		if err := json.Unmarshal([]byte(raw), &roles); err == nil {
			return roles
		}
	}
	var roles []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			roles = append(roles, part)
		}
	}
	return roles
}

// parseLegacyTime parses the DATETIME text MySQL hands back. A zero time
// lets the store stamp the insert instead.
func parseLegacyTime(raw string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
