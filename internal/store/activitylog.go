// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"sync"
	"time"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
)

// MaxActivityEntries caps the audit trail: the 101st newest entry evicts the
// oldest. The notification queue deliberately has no such cap.
const MaxActivityEntries = 100

// ActivityLog is the bounded append-only audit trail of user actions,
// ordered most-recent-first.
type ActivityLog struct {
	mu      sync.RWMutex
	medium  kv.Store
	entries []model.ActivityEntry
	now     func() time.Time
}

// NewActivityLog loads the audit trail from the medium.
func NewActivityLog(ctx context.Context, medium kv.Store) *ActivityLog {
	l := &ActivityLog{medium: medium, now: time.Now}
	loadSnapshot(ctx, medium, keyActivityLog, &l.entries)
	return l
}

// Add prepends an entry and evicts beyond the cap.
func (l *ActivityLog) Add(ctx context.Context, action, details, username string) {
	entry := model.ActivityEntry{
		Action:    action,
		Details:   details,
		CreatedAt: l.now().UnixMilli(),
		Username:  username,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]model.ActivityEntry{entry}, l.entries...)
	if len(l.entries) > MaxActivityEntries {
		l.entries = l.entries[:MaxActivityEntries]
	}
	saveSnapshot(ctx, l.medium, keyActivityLog, l.entries)
}

// Clear empties the trail.
func (l *ActivityLog) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	saveSnapshot(ctx, l.medium, keyActivityLog, l.entries)
}

// Entries projects the trail for a viewer: admins see every entry,
// non-admins only entries attributed to their own username.
func (l *ActivityLog) Entries(viewer model.Identity) []model.ActivityEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if viewer.IsAdmin {
		out := make([]model.ActivityEntry, len(l.entries))
		copy(out, l.entries)
		return out
	}

	out := make([]model.ActivityEntry, 0)
	for _, e := range l.entries {
		if e.Username == viewer.Username {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the current number of entries.
func (l *ActivityLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
