// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
)

// Validation errors for communications.
var (
	ErrMissingSender  = errors.New("message sender is required")
	ErrEmptyMessage   = errors.New("message needs content or media")
	ErrMissingAuthor  = errors.New("announcement author is required")
	ErrMissingContent = errors.New("announcement title and content are required")
)

// commsSnapshot is the single persisted collection of the hub: messages,
// announcements and the presence set share one key, as in the ported system.
type commsSnapshot struct {
	Messages      []model.Message      `json:"messages"`
	Announcements []model.Announcement `json:"announcements"`
	OnlineUsers   []string             `json:"onlineUsers"`
}

// Comms is the communications hub: the broadcast and direct message
// channels, the announcement board and the online-presence set.
//
// Messages are kept in chronological order (oldest first), the opposite of
// the notification queue and activity log. The bidirectional pair filter for
// direct channels is deliberately left to the caller; Channel only matches
// on the receiver.
type Comms struct {
	mu     sync.RWMutex
	medium kv.Store
	state  commsSnapshot
	now    func() time.Time
}

// NewComms loads the hub from the medium. The persisted presence set may
// retain stale usernames from a previous run; membership is only meaningful
// while view lifecycles keep it current.
func NewComms(ctx context.Context, medium kv.Store) *Comms {
	c := &Comms{medium: medium, now: time.Now}
	loadSnapshot(ctx, medium, keyComms, &c.state)
	return c
}

// MessageInput carries the caller-supplied fields of a new message. A nil
// Receiver addresses the broadcast channel.
type MessageInput struct {
	Sender    string
	Receiver  *string
	Content   string
	MediaURL  string
	MediaType string
}

// SendMessage appends a new unread message to its channel.
func (c *Comms) SendMessage(ctx context.Context, in MessageInput) (model.Message, error) {
	if in.Sender == "" {
		return model.Message{}, ErrMissingSender
	}
	if in.Content == "" && in.MediaURL == "" {
		return model.Message{}, ErrEmptyMessage
	}

	msg := model.Message{
		ID:        uuid.NewString(),
		Sender:    in.Sender,
		Receiver:  in.Receiver,
		Content:   in.Content,
		CreatedAt: c.now().UnixMilli(),
		Read:      false,
		MediaURL:  in.MediaURL,
		MediaType: in.MediaType,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Messages = append(c.state.Messages, msg)
	saveSnapshot(ctx, c.medium, keyComms, c.state)
	return msg, nil
}

// Channel returns the messages whose receiver equals the argument (nil for
// the broadcast channel), ascending by timestamp.
func (c *Comms) Channel(receiver *string) []model.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Message, 0)
	for _, m := range c.state.Messages {
		switch {
		case receiver == nil && m.Receiver == nil:
			out = append(out, m)
		case receiver != nil && m.Receiver != nil && *m.Receiver == *receiver:
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

// MarkMessageRead flags a message as read. Unknown ids are a no-op.
func (c *Comms) MarkMessageRead(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.state.Messages {
		if c.state.Messages[i].ID == id {
			if !c.state.Messages[i].Read {
				c.state.Messages[i].Read = true
				saveSnapshot(ctx, c.medium, keyComms, c.state)
			}
			return
		}
	}
}

// UnreadCount counts unread messages addressed to the username.
func (c *Comms) UnreadCount(username string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, m := range c.state.Messages {
		if !m.Read && m.Receiver != nil && *m.Receiver == username {
			count++
		}
	}
	return count
}

// AddOnlineUser inserts a username into the presence set. Idempotent.
func (c *Comms) AddOnlineUser(ctx context.Context, username string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, u := range c.state.OnlineUsers {
		if u == username {
			return
		}
	}
	c.state.OnlineUsers = append(c.state.OnlineUsers, username)
	saveSnapshot(ctx, c.medium, keyComms, c.state)
}

// RemoveOnlineUser removes a username from the presence set. Idempotent.
func (c *Comms) RemoveOnlineUser(ctx context.Context, username string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, u := range c.state.OnlineUsers {
		if u == username {
			c.state.OnlineUsers = append(c.state.OnlineUsers[:i], c.state.OnlineUsers[i+1:]...)
			saveSnapshot(ctx, c.medium, keyComms, c.state)
			return
		}
	}
}

// OnlineUsers returns a copy of the presence set.
func (c *Comms) OnlineUsers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.state.OnlineUsers))
	copy(out, c.state.OnlineUsers)
	return out
}

// AnnouncementInput carries the caller-supplied fields of a new
// announcement.
type AnnouncementInput struct {
	Author   string
	Title    string
	Content  string
	Priority string
	Pinned   bool
}

// AddAnnouncement appends a new board entry.
func (c *Comms) AddAnnouncement(ctx context.Context, in AnnouncementInput) (model.Announcement, error) {
	if in.Author == "" {
		return model.Announcement{}, ErrMissingAuthor
	}
	if in.Title == "" || in.Content == "" {
		return model.Announcement{}, ErrMissingContent
	}
	if in.Priority == "" {
		in.Priority = model.PriorityNormal
	}

	ann := model.Announcement{
		ID:        uuid.NewString(),
		Author:    in.Author,
		Title:     in.Title,
		Content:   in.Content,
		Priority:  in.Priority,
		CreatedAt: c.now().UnixMilli(),
		Pinned:    in.Pinned,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Announcements = append(c.state.Announcements, ann)
	saveSnapshot(ctx, c.medium, keyComms, c.state)
	return ann, nil
}

// DeleteAnnouncement removes a board entry by id. Unknown ids are a no-op.
func (c *Comms) DeleteAnnouncement(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.state.Announcements {
		if c.state.Announcements[i].ID == id {
			c.state.Announcements = append(c.state.Announcements[:i], c.state.Announcements[i+1:]...)
			saveSnapshot(ctx, c.medium, keyComms, c.state)
			return
		}
	}
}

// TogglePin flips the pinned flag of a board entry. Unknown ids are a no-op.
func (c *Comms) TogglePin(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.state.Announcements {
		if c.state.Announcements[i].ID == id {
			c.state.Announcements[i].Pinned = !c.state.Announcements[i].Pinned
			saveSnapshot(ctx, c.medium, keyComms, c.state)
			return
		}
	}
}

// Announcements returns the board in display order: pinned entries first,
// then newest first within each group. The order is recomputed on every
// read, never cached.
func (c *Comms) Announcements() []model.Announcement {
	c.mu.RLock()
	out := make([]model.Announcement, len(c.state.Announcements))
	copy(out, c.state.Announcements)
	c.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}
