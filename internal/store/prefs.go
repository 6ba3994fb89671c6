// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"sync"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
)

// Preferences maps usernames to their display settings.
type Preferences struct {
	mu     sync.RWMutex
	medium kv.Store
	prefs  map[string]model.Preferences
}

// NewPreferences loads the preference map from the medium.
func NewPreferences(ctx context.Context, medium kv.Store) *Preferences {
	p := &Preferences{medium: medium, prefs: make(map[string]model.Preferences)}
	loadSnapshot(ctx, medium, keyPreferences, &p.prefs)
	if p.prefs == nil {
		p.prefs = make(map[string]model.Preferences)
	}
	return p
}

// Get returns the user's settings, materializing the default for unknown
// usernames. The default is not written back.
func (p *Preferences) Get(username string) model.Preferences {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if prefs, ok := p.prefs[username]; ok {
		return prefs
	}
	return model.DefaultPreferences()
}

// Set upserts the user's settings.
func (p *Preferences) Set(ctx context.Context, username string, prefs model.Preferences) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prefs[username] = prefs
	saveSnapshot(ctx, p.medium, keyPreferences, p.prefs)
}
