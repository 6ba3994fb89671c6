// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Member statuses. Kept in French for parity with the portal's display
// labels; an "Inactif" member cannot log in.
const (
	StatusActive   = "Actif"
	StatusInactive = "Inactif"
)

// Member is one personnel roster entry. Passwords are stored and compared in
// plaintext, matching the ported system; see DESIGN.md for the deliberate
// security trade-off. Roles holds role ids by value, so a deleted role may
// leave dangling ids behind, which grant nothing.
type Member struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Password string   `json:"password,omitempty"`
	Name     string   `json:"name"`
	Rank     string   `json:"rank"`
	Division string   `json:"division"`
	Status   string   `json:"status"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	JoinDate string   `json:"joinDate"` // YYYY-MM-DD
	Roles    []string `json:"roles,omitempty"`
}

// Active reports whether the member may log in.
func (m Member) Active() bool {
	return m.Status != StatusInactive
}
