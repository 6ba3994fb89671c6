// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Preferences holds per-user display settings.
type Preferences struct {
	DarkMode bool `json:"darkMode"`
}

// DefaultPreferences returns the settings materialized for a user with no
// stored entry. The default is never written back.
func DefaultPreferences() Preferences {
	return Preferences{DarkMode: false}
}
