// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that integrates with the
// notification center. It surfaces logs at WARN level and above as admin-only
// warning notifications.
package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// NotifierHandler is a slog.Handler that wraps another handler and also
// turns WARN and ERROR level logs into admin-only notifications.
type NotifierHandler struct {
	inner         slog.Handler
	notifications *store.Notifications
	level         slog.Level // minimum level to surface (default: WARN)
}

// NewNotifierHandler creates a NotifierHandler that wraps the given handler.
// Logs at WARN level and above are written to both the wrapped handler and
// the notification center.
func NewNotifierHandler(inner slog.Handler, notifications *store.Notifications) *NotifierHandler {
	return &NotifierHandler{
		inner:         inner,
		notifications: notifications,
		level:         slog.LevelWarn,
	}
}

// NewNotifierHandlerWithLevel creates a NotifierHandler with a custom
// minimum level.
func NewNotifierHandlerWithLevel(inner slog.Handler, notifications *store.Notifications, level slog.Level) *NotifierHandler {
	return &NotifierHandler{
		inner:         inner,
		notifications: notifications,
		level:         level,
	}
}

// Enabled implements slog.Handler.
func (h *NotifierHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *NotifierHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.notify(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *NotifierHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &NotifierHandler{
		inner:         h.inner.WithAttrs(attrs),
		notifications: h.notifications,
		level:         h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *NotifierHandler) WithGroup(name string) slog.Handler {
	return &NotifierHandler{
		inner:         h.inner.WithGroup(name),
		notifications: h.notifications,
		level:         h.level,
	}
}

// notify turns a log record into an admin-only notification. A background
// context keeps the write alive past request cancellation.
func (h *NotifierHandler) notify(r slog.Record) {
	_, _ = h.notifications.Add(context.Background(), store.NotificationInput{
		Title:     h.title(r.Level),
		Message:   h.describe(r),
		Kind:      model.NotificationWarning,
		AdminOnly: true,
	})
}

// title maps a slog level to the notification headline.
func (h *NotifierHandler) title(level slog.Level) string {
	if level >= slog.LevelError {
		return "Erreur système"
	}
	return "Avertissement système"
}

// describe renders the record message plus its attributes as "key=value"
// pairs.
func (h *NotifierHandler) describe(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return r.Message
	}

	var sb strings.Builder
	sb.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value.String())
		return true
	})
	return sb.String()
}
