// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package kv provides the durable key-value medium backing the snapshot
// stores. Each domain store owns one namespaced key whose value is the full
// serialized snapshot of its collection.
package kv

import "context"

// Store is the durable key-value medium. All implementations must be safe
// for use from multiple goroutines.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

// Error represents an error type for store operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key is absent. Callers substitute their
	// empty default collection rather than failing.
	ErrNotFound Error = "kv: key not found"

	// ErrClosed indicates the store has been closed.
	ErrClosed Error = "kv: store closed"
)
