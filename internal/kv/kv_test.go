// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/preston16161/dashboarDelta/internal/db"
)

// openTestStores builds one store per backend over fresh state.
func openTestStores(t *testing.T) map[string]Store {
	t.Helper()

	conn, err := db.New(filepath.Join(t.TempDir(), "kv-test.db"))
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("db.Migrate: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(conn),
	}
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get missing = %v, want ErrNotFound", err)
			}

			if err := s.Set(ctx, "roles", []byte(`[{"id":"membre"}]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := s.Get(ctx, "roles")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !bytes.Equal(got, []byte(`[{"id":"membre"}]`)) {
				t.Errorf("Get = %q", got)
			}

			// Overwrite replaces the whole value.
			if err := s.Set(ctx, "roles", []byte(`[]`)); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, _ = s.Get(ctx, "roles")
			if !bytes.Equal(got, []byte(`[]`)) {
				t.Errorf("Get after overwrite = %q", got)
			}

			if err := s.Delete(ctx, "roles"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, "roles"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete = %v, want ErrNotFound", err)
			}

			// Deleting an absent key is not an error.
			if err := s.Delete(ctx, "roles"); err != nil {
				t.Errorf("Delete absent key: %v", err)
			}
		})
	}
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	for name, s := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"preferences", "activity_log", "members"} {
				if err := s.Set(ctx, k, []byte("{}")); err != nil {
					t.Fatalf("Set %s: %v", k, err)
				}
			}
			keys, err := s.Keys(ctx)
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			want := []string{"activity_log", "members", "preferences"}
			if !reflect.DeepEqual(keys, want) {
				t.Errorf("Keys = %v, want %v", keys, want)
			}
		})
	}
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	for name, s := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
				t.Errorf("Get after close = %v, want ErrClosed", err)
			}
			if err := s.Set(ctx, "k", nil); !errors.Is(err, ErrClosed) {
				t.Errorf("Set after close = %v, want ErrClosed", err)
			}
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	val := []byte("original")
	if err := s.Set(ctx, "k", val); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val[0] = 'X'

	got, _ := s.Get(ctx, "k")
	if string(got) != "original" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}
