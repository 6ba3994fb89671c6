// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Report is one mission/training/incident report held by the record-keeping
// service (SQL-backed, unlike the snapshot stores).
type Report struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Participants string    `json:"participants"`
	Outcome      string    `json:"outcome"`
	Priority     string    `json:"priority"`
	AuthorID     int64     `json:"author_id"`
	AuthorName   string    `json:"author_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
