// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Notification kinds.
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
)

// Notification is a transient user-facing alert. AdminOnly notifications are
// only shown to admin viewers; the store itself does not filter, callers do.
type Notification struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Kind      string `json:"type"`
	CreatedAt int64  `json:"timestamp"` // Unix milliseconds
	Read      bool   `json:"read"`
	AdminOnly bool   `json:"forAdmin,omitempty"`
}
