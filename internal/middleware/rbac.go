// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// Guard holds the authorization dependencies: the role registry for
// permission checks and the notification center for surfacing rejections.
type Guard struct {
	roles         *store.Roles
	notifications *store.Notifications
}

// NewGuard creates an authorization guard.
func NewGuard(roles *store.Roles, notifications *store.Notifications) *Guard {
	return &Guard{roles: roles, notifications: notifications}
}

// RequireAdmin creates middleware that requires the admin flag.
func (g *Guard) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r)
			if !ok {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentification requise", nil)
				return
			}
			if !identity.IsAdmin {
				g.reject(r, identity)
				WriteAPIError(w, http.StatusForbidden, "forbidden", "Accès réservé aux administrateurs", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission creates middleware that requires the permission through
// any of the identity's roles. Admins pass unconditionally.
func (g *Guard) RequirePermission(p model.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r)
			if !ok {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentification requise", nil)
				return
			}
			if !identity.IsAdmin && !g.roles.HasPermission(identity.RoleIDs, p) {
				g.reject(r, identity)
				WriteAPIError(w, http.StatusForbidden, "forbidden", "Permission insuffisante", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// reject records a denied action as an admin-only warning notification, the
// portal's equivalent of a security audit line. The log line stays at INFO:
// the default logger mirrors WARN and above into the notification center, and
// the explicit Add below already covers it.
func (g *Guard) reject(r *http.Request, identity model.Identity) {
	slog.Info("access denied",
		"method", r.Method,
		"path", r.URL.Path,
		"username", identity.Username,
	)
	_, _ = g.notifications.Add(context.Background(), store.NotificationInput{
		Title:     "Accès refusé",
		Message:   identity.Username + " a tenté une action non autorisée (" + r.Method + " " + r.URL.Path + ")",
		Kind:      model.NotificationWarning,
		AdminOnly: true,
	})
}
