// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Activity actions recorded by the session gate. Kept in French for parity
// with the portal's display labels.
const (
	ActionLogin  = "Connexion"
	ActionLogout = "Déconnexion"
)

// ActivityEntry is one row of the bounded audit trail.
type ActivityEntry struct {
	Action    string `json:"action"`
	Details   string `json:"details"`
	CreatedAt int64  `json:"timestamp"` // Unix milliseconds
	Username  string `json:"username"`
}
