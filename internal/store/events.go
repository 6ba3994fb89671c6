// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
)

// ErrMissingEventFields rejects event creation without title or date.
var ErrMissingEventFields = errors.New("event title and date are required")

// Events is the planning calendar. Deletion is gated on the manage_events
// permission by the caller, not here.
type Events struct {
	mu     sync.RWMutex
	medium kv.Store
	events []model.Event
}

// NewEvents loads the calendar from the medium.
func NewEvents(ctx context.Context, medium kv.Store) *Events {
	e := &Events{medium: medium}
	loadSnapshot(ctx, medium, keyEvents, &e.events)
	return e
}

// Add appends a new calendar entry.
func (e *Events) Add(ctx context.Context, title, kind, date, description string) (model.Event, error) {
	if title == "" || date == "" {
		return model.Event{}, ErrMissingEventFields
	}

	event := model.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Type:        kind,
		Date:        date,
		Description: description,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, event)
	saveSnapshot(ctx, e.medium, keyEvents, e.events)
	return event, nil
}

// Delete removes a calendar entry by id. Unknown ids are a no-op.
func (e *Events) Delete(ctx context.Context, id string) (model.Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.events {
		if e.events[i].ID == id {
			deleted := e.events[i]
			e.events = append(e.events[:i], e.events[i+1:]...)
			saveSnapshot(ctx, e.medium, keyEvents, e.events)
			return deleted, true
		}
	}
	return model.Event{}, false
}

// All returns a copy of the calendar.
func (e *Events) All() []model.Event {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]model.Event, len(e.events))
	copy(out, e.events)
	return out
}
