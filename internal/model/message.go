// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Message is one chat message. A nil Receiver addresses the shared broadcast
// channel; a non-nil Receiver addresses a direct 1:1 channel. Messages are
// immutable once created except for the read flag.
type Message struct {
	ID        string  `json:"id"`
	Sender    string  `json:"sender"`
	Receiver  *string `json:"receiver"`
	Content   string  `json:"content"`
	CreatedAt int64   `json:"timestamp"` // Unix milliseconds
	Read      bool    `json:"read"`
	MediaURL  string  `json:"mediaUrl,omitempty"`
	MediaType string  `json:"mediaType,omitempty"`
}

// Broadcast reports whether the message is addressed to the shared channel.
func (m Message) Broadcast() bool {
	return m.Receiver == nil
}
