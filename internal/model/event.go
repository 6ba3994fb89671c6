// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Event is one planning calendar entry. Deleting an event is gated on the
// manage_events permission in the handler layer.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"` // mission, training, incident
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
}
