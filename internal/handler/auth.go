// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"

	"github.com/preston16161/dashboarDelta/internal/auth"
	"github.com/preston16161/dashboarDelta/internal/middleware"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	gate            *auth.Gate
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
	logger          *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *auth.Gate, sm *scs.SessionManager, lp *middleware.LoginProtection, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		gate:            gate,
		sessionManager:  sm,
		loginProtection: lp,
		logger:          logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the caller and opens a session holding the username
// and the admin flag. Role ids are never stored in the session; they are
// re-read from the roster on every request.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteBadRequest(w, "Nom d'utilisateur et mot de passe requis", nil)
		return
	}

	if locked, remaining := h.loginProtection.IsAccountLocked(req.Username); locked {
		WriteError(w, http.StatusTooManyRequests, "account_locked",
			fmt.Sprintf("Compte temporairement verrouillé, réessayez dans %d minutes", int(remaining.Minutes())+1), nil)
		return
	}

	meta := auth.Meta{
		IP:        middleware.GetClientIP(r),
		UserAgent: r.UserAgent(),
	}

	identity, err := h.gate.Login(r.Context(), req.Username, req.Password, meta)
	switch {
	case errors.Is(err, auth.ErrAccountDisabled):
		WriteForbidden(w, "Compte désactivé")
		return
	case err != nil:
		lockedNow, lockDuration := h.loginProtection.RecordFailedAttempt(req.Username)
		if lockedNow {
			WriteError(w, http.StatusTooManyRequests, "account_locked",
				fmt.Sprintf("Trop de tentatives, compte verrouillé pendant %d minutes", int(lockDuration.Minutes())), nil)
			return
		}
		WriteError(w, http.StatusUnauthorized, "bad_credentials", "Identifiants invalides", map[string]string{
			"remaining_attempts": strconv.Itoa(h.loginProtection.GetRemainingAttempts(req.Username)),
		})
		return
	}

	h.loginProtection.RecordSuccessfulLogin(req.Username)

	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		h.logger.Error("failed to renew session token", "error", err)
		WriteInternalError(w, "Erreur de session")
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUsername, identity.Username)
	h.sessionManager.Put(r.Context(), middleware.SessionKeyIsAdmin, identity.IsAdmin)

	WriteSuccess(w, identity)
}

// Logout records the departure and destroys the session. Calling it without
// a session is harmless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if identity, ok := middleware.GetIdentity(r); ok {
		h.gate.Logout(r.Context(), identity, auth.Meta{
			IP:        middleware.GetClientIP(r),
			UserAgent: r.UserAgent(),
		})
	}
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		h.logger.Error("failed to destroy session", "error", err)
		WriteInternalError(w, "Erreur de session")
		return
	}
	WriteSuccess(w, map[string]string{"status": "déconnecté"})
}

// Me returns the caller's identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		WriteUnauthorized(w, "Authentification requise")
		return
	}
	WriteSuccess(w, identity)
}
