// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "rapport", "rapport"},
		{"accents", "Cérémonie d'été", "ceremonie-dete"},
		{"spaces", "exercice de tir", "exercice-de-tir"},
		{"mixed case and digits", "Division Alpha 2026", "division-alpha-2026"},
		{"collapses hyphens", "a -- b", "a-b"},
		{"trims hyphens", " -rapport- ", "rapport"},
		{"symbols only", "♥★", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
