// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston16161/dashboarDelta/internal/middleware"
	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/store"
)

// RolesHandler handles the role registry endpoints.
type RolesHandler struct {
	roles *store.Roles
}

// NewRolesHandler creates a new RolesHandler.
func NewRolesHandler(roles *store.Roles) *RolesHandler {
	return &RolesHandler{roles: roles}
}

// List returns every role.
func (h *RolesHandler) List(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.roles.All())
}

type roleRequest struct {
	Name        string             `json:"name"`
	Permissions []model.Permission `json:"permissions"`
	Color       string             `json:"color"`
}

// Create adds a new role.
func (h *RolesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Le nom est requis"})
		return
	}
	role := h.roles.Add(r.Context(), req.Name, req.Permissions, req.Color)
	WriteCreated(w, role)
}

type roleUpdateRequest struct {
	Name        *string             `json:"name"`
	Permissions *[]model.Permission `json:"permissions"`
	Color       *string             `json:"color"`
}

// Update merges the given fields into a role.
func (h *RolesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.roles.Get(id); !ok {
		WriteNotFound(w, "Rôle introuvable")
		return
	}
	var req roleUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.roles.Update(r.Context(), id, store.RoleUpdate{
		Name:        req.Name,
		Permissions: req.Permissions,
		Color:       req.Color,
	})
	role, _ := h.roles.Get(id)
	WriteSuccess(w, role)
}

// Delete removes a role. The built-in admin role cannot be removed.
func (h *RolesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == model.RoleAdmin {
		WriteForbidden(w, "Le rôle administrateur ne peut pas être supprimé")
		return
	}
	if _, ok := h.roles.Get(id); !ok {
		WriteNotFound(w, "Rôle introuvable")
		return
	}
	h.roles.Delete(r.Context(), id)
	WriteSuccess(w, map[string]string{"id": id})
}

// Probe reports whether the caller holds the queried permission. Admins
// always do.
func (h *RolesHandler) Probe(w http.ResponseWriter, r *http.Request) {
	perm := r.URL.Query().Get("permission")
	if perm == "" {
		WriteBadRequest(w, "Paramètre permission requis", nil)
		return
	}
	identity, _ := middleware.GetIdentity(r)
	granted := identity.IsAdmin || h.roles.HasPermission(identity.RoleIDs, model.Permission(perm))
	WriteSuccess(w, map[string]any{
		"permission": perm,
		"granted":    granted,
	})
}
