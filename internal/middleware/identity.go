// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for session identity,
// authorization and request throttling.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyIdentity is the context key for the established identity.
const ContextKeyIdentity ContextKey = "identity"

// Session keys. The session stores only the username and the admin flag;
// role ids are re-read from the roster on every request so role edits take
// effect without re-login.
const (
	SessionKeyUsername = "username"
	SessionKeyIsAdmin  = "is_admin"
)

// LoadIdentity creates middleware that reconstructs the identity from the
// session and the personnel roster. Requests without a session pass through
// without an identity; Auth decides what that means per route.
func LoadIdentity(sm *scs.SessionManager, personnel *store.Personnel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := sm.GetString(r.Context(), SessionKeyUsername)
			if username == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity := model.Identity{
				Username: username,
				IsAdmin:  sm.GetBool(r.Context(), SessionKeyIsAdmin),
			}
			if !identity.IsAdmin {
				member, ok := personnel.FindByUsername(username)
				if !ok || !member.Active() {
					// The member was removed or deactivated mid-session.
					_ = sm.Destroy(r.Context())
					next.ServeHTTP(w, r)
					return
				}
				identity.RoleIDs = member.Roles
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the identity from the request context.
func GetIdentity(r *http.Request) (model.Identity, bool) {
	identity, ok := r.Context().Value(ContextKeyIdentity).(model.Identity)
	return identity, ok
}

// Auth creates middleware that requires an established identity.
func Auth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetIdentity(r); !ok {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentification requise", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
