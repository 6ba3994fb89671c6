// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Announcement priorities.
const (
	PriorityNormal    = "normal"
	PriorityImportant = "important"
	PriorityUrgent    = "urgent"
)

// Announcement is one board entry. Pinned announcements always sort before
// unpinned ones; within each group the newest entries come first.
type Announcement struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Priority  string `json:"priority"`
	CreatedAt int64  `json:"timestamp"` // Unix milliseconds
	Pinned    bool   `json:"pinned"`
}
