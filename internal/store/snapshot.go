// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements the portal's state layer: independent in-memory
// collections (roles, notifications, activity log, communications,
// preferences, personnel, events) each persisted as a full JSON snapshot
// under its own key of the durable kv medium.
//
// Every store loads its snapshot once at construction and re-serializes the
// whole collection synchronously after each mutation. The in-memory
// collection is the source of truth: a failing durable write is logged and
// degrades persistence, never the caller. Two processes sharing one medium
// are last-writer-wins with no merge; that is a documented limitation, not a
// defect to fix here.
//
// The stores hold no policy. Authorization checks (admin flag, permission
// probes) belong to the caller, which is expected to surface rejections
// through the notification center.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/preston16161/dashboarDelta/internal/kv"
)

// snapshotLogger reports snapshot read and write failures. It bypasses
// slog.Default on purpose: the process default mirrors warnings into the
// notifications store, and a snapshot failure is logged while the failing
// store still holds its mutex. Routing that record back into
// Notifications.Add would deadlock on the same lock.
var snapshotLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Snapshot keys. One per store, stable across restarts.
const (
	keyRoles         = "roles"
	keyNotifications = "notifications"
	keyActivityLog   = "activity_log"
	keyComms         = "communications"
	keyPreferences   = "preferences"
	keyMembers       = "members"
	keyEvents        = "events"
)

// loadSnapshot deserializes the collection stored under key into dst.
// An absent key leaves dst untouched and returns false. A read failure or
// malformed payload is logged and likewise leaves dst untouched: stores fall
// back to their empty default collection instead of failing the caller.
func loadSnapshot(ctx context.Context, medium kv.Store, key string, dst any) bool {
	raw, err := medium.Get(ctx, key)
	if err != nil {
		if err != kv.ErrNotFound {
			snapshotLogger.Error("reading store snapshot", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		snapshotLogger.Error("malformed store snapshot, starting empty", "key", key, "error", err)
		return false
	}
	return true
}

// saveSnapshot re-serializes the full collection back to the medium. Write
// failures are logged, not returned: from the caller's perspective the
// mutation already happened in memory.
func saveSnapshot(ctx context.Context, medium kv.Store, key string, src any) {
	raw, err := json.Marshal(src)
	if err != nil {
		snapshotLogger.Error("encoding store snapshot", "key", key, "error", err)
		return
	}

	if err := medium.Set(ctx, key, raw); err != nil {
		snapshotLogger.Error("writing store snapshot", "key", key, "error", err)
	}
}
