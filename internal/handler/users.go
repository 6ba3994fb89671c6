// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/preston16161/dashboarDelta/internal/middleware"
	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// UsersHandler handles the personnel roster endpoints. The superuser is not
// a roster entry and never appears in responses. Member removal fans out to
// the notification center and the activity log.
type UsersHandler struct {
	personnel     *store.Personnel
	notifications *store.Notifications
	activity      *store.ActivityLog
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(personnel *store.Personnel, notifications *store.Notifications, activity *store.ActivityLog) *UsersHandler {
	return &UsersHandler{personnel: personnel, notifications: notifications, activity: activity}
}

// sanitizeMember strips the stored credential from an API response.
func sanitizeMember(m model.Member) model.Member {
	m.Password = ""
	return m
}

func sanitizeMembers(members []model.Member) []model.Member {
	out := make([]model.Member, 0, len(members))
	for _, m := range members {
		out = append(out, sanitizeMember(m))
	}
	return out
}

// List returns the roster without credentials.
func (h *UsersHandler) List(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, sanitizeMembers(h.personnel.Members()))
}

// Get returns one member without credentials.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant de membre invalide", nil)
		return
	}
	member, ok := h.personnel.FindByID(id)
	if !ok {
		WriteNotFound(w, "Membre introuvable")
		return
	}
	WriteSuccess(w, sanitizeMember(member))
}

type memberRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Rank     string   `json:"rank"`
	Division string   `json:"division"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Roles    []string `json:"roles"`
}

// Create adds a roster entry. Usernames must be unique.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, exists := h.personnel.FindByUsername(req.Username); exists {
		WriteValidationError(w, map[string]string{"username": "Ce nom d'utilisateur existe déjà"})
		return
	}
	member, err := h.personnel.Add(r.Context(), store.MemberInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Rank:     req.Rank,
		Division: req.Division,
		Email:    req.Email,
		Phone:    req.Phone,
		Roles:    req.Roles,
	})
	if err != nil {
		WriteValidationError(w, map[string]string{"member": err.Error()})
		return
	}
	WriteCreated(w, sanitizeMember(member))
}

type memberUpdateRequest struct {
	Username *string   `json:"username"`
	Password *string   `json:"password"`
	Name     *string   `json:"name"`
	Rank     *string   `json:"rank"`
	Division *string   `json:"division"`
	Email    *string   `json:"email"`
	Phone    *string   `json:"phone"`
	Roles    *[]string `json:"roles"`
}

// Update merges the given fields into a member.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant de membre invalide", nil)
		return
	}
	if _, ok := h.personnel.FindByID(id); !ok {
		WriteNotFound(w, "Membre introuvable")
		return
	}
	var req memberUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.personnel.Update(r.Context(), id, store.MemberUpdate{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Rank:     req.Rank,
		Division: req.Division,
		Email:    req.Email,
		Phone:    req.Phone,
		Roles:    req.Roles,
	})
	member, _ := h.personnel.FindByID(id)
	WriteSuccess(w, sanitizeMember(member))
}

// ToggleStatus flips a member between Actif and Inactif. An inactive member
// keeps their data but can no longer log in.
func (h *UsersHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant de membre invalide", nil)
		return
	}
	if _, ok := h.personnel.FindByID(id); !ok {
		WriteNotFound(w, "Membre introuvable")
		return
	}
	h.personnel.ToggleStatus(r.Context(), id)
	member, _ := h.personnel.FindByID(id)
	WriteSuccess(w, sanitizeMember(member))
}

// Delete removes a member from the roster and records the removal.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant de membre invalide", nil)
		return
	}
	member, ok := h.personnel.FindByID(id)
	if !ok {
		WriteNotFound(w, "Membre introuvable")
		return
	}
	h.personnel.Remove(r.Context(), id)
	_, _ = h.notifications.Add(r.Context(), store.NotificationInput{
		Title:     "Membre supprimé",
		Message:   "Le membre \"" + member.Name + "\" a été retiré de l'effectif par " + identity.Username,
		Kind:      model.NotificationWarning,
		AdminOnly: true,
	})
	h.activity.Add(r.Context(), "Suppression de membre", member.Name, identity.Username)
	WriteSuccess(w, map[string]int64{"id": id})
}
