// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
)

// ErrMissingTitle rejects notification creation without a title.
var ErrMissingTitle = errors.New("notification title is required")

// Notifications is the queue of transient user-facing alerts, ordered
// most-recent-first. Unlike the activity log it has no size cap; unbounded
// growth matches the ported system and is intentional.
type Notifications struct {
	mu     sync.RWMutex
	medium kv.Store
	items  []model.Notification
	now    func() time.Time
}

// NewNotifications loads the notification queue from the medium.
func NewNotifications(ctx context.Context, medium kv.Store) *Notifications {
	n := &Notifications{medium: medium, now: time.Now}
	loadSnapshot(ctx, medium, keyNotifications, &n.items)
	return n
}

// NotificationInput carries the caller-supplied fields of a new
// notification.
type NotificationInput struct {
	Title     string
	Message   string
	Kind      string
	AdminOnly bool
}

// Add prepends a new unread notification.
func (n *Notifications) Add(ctx context.Context, in NotificationInput) (model.Notification, error) {
	if in.Title == "" {
		return model.Notification{}, ErrMissingTitle
	}
	if in.Kind == "" {
		in.Kind = model.NotificationInfo
	}

	item := model.Notification{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Message:   in.Message,
		Kind:      in.Kind,
		CreatedAt: n.now().UnixMilli(),
		Read:      false,
		AdminOnly: in.AdminOnly,
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = append([]model.Notification{item}, n.items...)
	saveSnapshot(ctx, n.medium, keyNotifications, n.items)
	return item, nil
}

// Remove deletes a notification by id. Unknown ids are a no-op.
func (n *Notifications) Remove(ctx context.Context, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.items {
		if n.items[i].ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			saveSnapshot(ctx, n.medium, keyNotifications, n.items)
			return
		}
	}
}

// MarkRead flags a notification as read. Unknown ids are a no-op.
func (n *Notifications) MarkRead(ctx context.Context, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.items {
		if n.items[i].ID == id {
			if !n.items[i].Read {
				n.items[i].Read = true
				saveSnapshot(ctx, n.medium, keyNotifications, n.items)
			}
			return
		}
	}
}

// ClearAll empties the queue.
func (n *Notifications) ClearAll(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = nil
	saveSnapshot(ctx, n.medium, keyNotifications, n.items)
}

// All returns a copy of the queue, newest first.
func (n *Notifications) All() []model.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]model.Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Visible projects the queue for a viewer: admin-only notifications are
// dropped for non-admin viewers. The underlying queue is not filtered; this
// is the caller-side audience rule applied in one place for the handlers.
func (n *Notifications) Visible(isAdmin bool) []model.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]model.Notification, 0, len(n.items))
	for _, item := range n.items {
		if item.AdminOnly && !isAdmin {
			continue
		}
		out = append(out, item)
	}
	return out
}

// UnreadCount counts unread notifications. Audience scoping stays with the
// caller: handlers count over Visible when serving a non-admin viewer.
func (n *Notifications) UnreadCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	count := 0
	for _, item := range n.items {
		if !item.Read {
			count++
		}
	}
	return count
}
