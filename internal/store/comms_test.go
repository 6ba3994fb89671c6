// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"
	"time"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
)

func strptr(s string) *string { return &s }

func TestComms_BroadcastAndDirectChannels(t *testing.T) {
	ctx := context.Background()
	c := NewComms(ctx, kv.NewMemoryStore())

	if _, err := c.SendMessage(ctx, MessageInput{Sender: "alice", Content: "hello all"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if _, err := c.SendMessage(ctx, MessageInput{Sender: "alice", Receiver: strptr("bob"), Content: "hi bob"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	broadcast := c.Channel(nil)
	if len(broadcast) != 1 || broadcast[0].Content != "hello all" {
		t.Errorf("broadcast channel wrong: %+v", broadcast)
	}

	direct := c.Channel(strptr("bob"))
	if len(direct) != 1 || direct[0].Content != "hi bob" {
		t.Errorf("direct channel wrong: %+v", direct)
	}
}

func TestComms_ChannelChronologicalOrder(t *testing.T) {
	ctx := context.Background()
	c := NewComms(ctx, kv.NewMemoryStore())

	ts := time.Now()
	c.now = func() time.Time { ts = ts.Add(time.Second); return ts }

	c.SendMessage(ctx, MessageInput{Sender: "a", Content: "first"})
	c.SendMessage(ctx, MessageInput{Sender: "b", Content: "second"})
	c.SendMessage(ctx, MessageInput{Sender: "c", Content: "third"})

	msgs := c.Channel(nil)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	// Oldest first, unlike notifications and the activity log.
	if msgs[0].Content != "first" || msgs[2].Content != "third" {
		t.Errorf("expected ascending order, got %q .. %q", msgs[0].Content, msgs[2].Content)
	}
}

func TestComms_UnreadCountAndMarkRead(t *testing.T) {
	ctx := context.Background()
	c := NewComms(ctx, kv.NewMemoryStore())

	m1, _ := c.SendMessage(ctx, MessageInput{Sender: "alice", Receiver: strptr("bob"), Content: "1"})
	c.SendMessage(ctx, MessageInput{Sender: "alice", Receiver: strptr("bob"), Content: "2"})
	c.SendMessage(ctx, MessageInput{Sender: "alice", Content: "broadcast"})
	c.SendMessage(ctx, MessageInput{Sender: "bob", Receiver: strptr("alice"), Content: "reply"})

	if got := c.UnreadCount("bob"); got != 2 {
		t.Fatalf("UnreadCount(bob) = %d, want 2 (broadcasts are not addressed)", got)
	}

	c.MarkMessageRead(ctx, m1.ID)
	if got := c.UnreadCount("bob"); got != 1 {
		t.Errorf("UnreadCount after MarkMessageRead = %d, want 1", got)
	}

	c.MarkMessageRead(ctx, "ghost") // no-op
	if got := c.UnreadCount("bob"); got != 1 {
		t.Errorf("unknown id must not change the count, got %d", got)
	}
}

func TestComms_MessageValidation(t *testing.T) {
	ctx := context.Background()
	c := NewComms(ctx, kv.NewMemoryStore())

	if _, err := c.SendMessage(ctx, MessageInput{Content: "no sender"}); err == nil {
		t.Error("expected a validation error for a missing sender")
	}
	if _, err := c.SendMessage(ctx, MessageInput{Sender: "alice"}); err == nil {
		t.Error("expected a validation error for empty content without media")
	}
	if _, err := c.SendMessage(ctx, MessageInput{Sender: "alice", MediaURL: "/uploads/x.png", MediaType: "image"}); err != nil {
		t.Errorf("media-only message should be accepted: %v", err)
	}
}

func TestComms_PresenceSet(t *testing.T) {
	ctx := context.Background()
	c := NewComms(ctx, kv.NewMemoryStore())

	c.AddOnlineUser(ctx, "alice")
	c.AddOnlineUser(ctx, "alice") // idempotent
	c.AddOnlineUser(ctx, "bob")

	if got := c.OnlineUsers(); len(got) != 2 {
		t.Fatalf("presence set = %v, want 2 distinct users", got)
	}

	c.RemoveOnlineUser(ctx, "alice")
	c.RemoveOnlineUser(ctx, "alice") // idempotent
	if got := c.OnlineUsers(); len(got) != 1 || got[0] != "bob" {
		t.Errorf("presence set after removal = %v, want [bob]", got)
	}
}

func TestComms_AnnouncementDisplayOrder(t *testing.T) {
	ctx := context.Background()
	c := NewComms(ctx, kv.NewMemoryStore())

	base := time.UnixMilli(0)
	tick := int64(0)
	c.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Millisecond) }

	// A pinned at t=1, B unpinned at t=5, C pinned at t=3.
	a, _ := c.AddAnnouncement(ctx, AnnouncementInput{Author: "x", Title: "A", Content: "a", Pinned: true})
	tick = 4
	b, _ := c.AddAnnouncement(ctx, AnnouncementInput{Author: "x", Title: "B", Content: "b"})
	tick = 2
	cc, _ := c.AddAnnouncement(ctx, AnnouncementInput{Author: "x", Title: "C", Content: "c", Pinned: true})

	got := c.Announcements()
	if len(got) != 3 {
		t.Fatalf("expected 3 announcements, got %d", len(got))
	}
	if got[0].ID != cc.ID || got[1].ID != a.ID || got[2].ID != b.ID {
		t.Errorf("display order = [%s %s %s], want [C A B]", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestComms_TogglePinRecomputesOrder(t *testing.T) {
	ctx := context.Background()
	c := NewComms(ctx, kv.NewMemoryStore())

	ts := time.Now()
	c.now = func() time.Time { ts = ts.Add(time.Second); return ts }

	old, _ := c.AddAnnouncement(ctx, AnnouncementInput{Author: "x", Title: "old", Content: "o"})
	c.AddAnnouncement(ctx, AnnouncementInput{Author: "x", Title: "new", Content: "n"})

	if c.Announcements()[0].Title != "new" {
		t.Fatal("unpinned board should be newest-first")
	}

	c.TogglePin(ctx, old.ID)
	if got := c.Announcements()[0]; got.ID != old.ID || !got.Pinned {
		t.Errorf("pinned announcement should sort first, got %q pinned=%v", got.Title, got.Pinned)
	}

	c.TogglePin(ctx, old.ID) // unpin again
	if c.Announcements()[0].Title != "new" {
		t.Error("unpinning should restore newest-first order")
	}
}

func TestComms_DeleteAnnouncement(t *testing.T) {
	ctx := context.Background()
	c := NewComms(ctx, kv.NewMemoryStore())

	ann, _ := c.AddAnnouncement(ctx, AnnouncementInput{Author: "x", Title: "t", Content: "c"})
	c.DeleteAnnouncement(ctx, "ghost") // no-op
	c.DeleteAnnouncement(ctx, ann.ID)
	if len(c.Announcements()) != 0 {
		t.Error("announcement should be deleted")
	}
}

func TestComms_RoundTrip(t *testing.T) {
	ctx := context.Background()
	medium := kv.NewMemoryStore()
	c := NewComms(ctx, medium)

	c.SendMessage(ctx, MessageInput{Sender: "alice", Receiver: strptr("bob"), Content: "persisted", MediaURL: "/uploads/img.png", MediaType: "image"})
	c.AddAnnouncement(ctx, AnnouncementInput{Author: "admin", Title: "T", Content: "C", Priority: model.PriorityUrgent, Pinned: true})
	c.AddOnlineUser(ctx, "alice")

	r := NewComms(ctx, medium)

	msgs, want := r.Channel(strptr("bob")), c.Channel(strptr("bob"))
	if len(msgs) != 1 || msgs[0].ID != want[0].ID || msgs[0].Content != want[0].Content ||
		msgs[0].MediaURL != want[0].MediaURL || *msgs[0].Receiver != *want[0].Receiver {
		t.Errorf("message differs after reload: %+v vs %+v", msgs, want)
	}
	anns := r.Announcements()
	if len(anns) != 1 || anns[0].Priority != model.PriorityUrgent || !anns[0].Pinned {
		t.Errorf("announcement differs after reload: %+v", anns)
	}
	if users := r.OnlineUsers(); len(users) != 1 || users[0] != "alice" {
		t.Errorf("presence set differs after reload: %v", users)
	}
}
