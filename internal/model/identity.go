// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Identity is the current user established by the session gate. It is never
// persisted; it is reconstructed from the login check each session.
type Identity struct {
	Username string   `json:"username"`
	IsAdmin  bool     `json:"isAdmin"`
	RoleIDs  []string `json:"roles,omitempty"`
}
