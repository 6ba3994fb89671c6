// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
)

// Roles is the registry of named permission sets. It is the sole
// authorization primitive: every admin-gated action checks HasPermission (or
// the identity's admin flag) before mutating shared state.
type Roles struct {
	mu     sync.RWMutex
	medium kv.Store
	roles  []model.Role
}

// defaultRoles are the built-in roles seeded on first run.
func defaultRoles() []model.Role {
	return []model.Role{
		{ID: model.RoleAdmin, Name: "Administrateur", Permissions: []model.Permission{model.PermManageAll}, Color: "#DC2626"},
		{ID: "moderator", Name: "Modérateur", Permissions: []model.Permission{model.PermDeleteReport, model.PermManageEvents, model.PermViewActivity}, Color: "#2563EB"},
		{ID: "chef_division", Name: "Chef de Division", Permissions: []model.Permission{model.PermManageEvents, model.PermViewActivity}, Color: "#059669"},
		{ID: "officier", Name: "Officier", Permissions: []model.Permission{model.PermViewActivity}, Color: "#D97706"},
		{ID: "membre", Name: "Membre", Permissions: []model.Permission{}, Color: "#6B7280"},
	}
}

// NewRoles loads the role registry from the medium, seeding the built-in
// roles when no snapshot exists yet.
func NewRoles(ctx context.Context, medium kv.Store) *Roles {
	r := &Roles{medium: medium}
	if !loadSnapshot(ctx, medium, keyRoles, &r.roles) {
		r.roles = defaultRoles()
		saveSnapshot(ctx, medium, keyRoles, r.roles)
	}
	return r
}

// All returns a copy of every role.
func (r *Roles) All() []model.Role {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Role, len(r.roles))
	copy(out, r.roles)
	return out
}

// Get returns the role with the given id.
func (r *Roles) Get(id string) (model.Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, role := range r.roles {
		if role.ID == id {
			return role, true
		}
	}
	return model.Role{}, false
}

// Add appends a new role under a fresh unique id.
func (r *Roles) Add(ctx context.Context, name string, permissions []model.Permission, color string) model.Role {
	role := model.Role{
		ID:          uuid.NewString(),
		Name:        name,
		Permissions: permissions,
		Color:       color,
	}
	if role.Permissions == nil {
		role.Permissions = []model.Permission{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.roles = append(r.roles, role)
	saveSnapshot(ctx, r.medium, keyRoles, r.roles)
	return role
}

// RoleUpdate carries the fields of a partial role update. Nil fields are
// left unchanged.
type RoleUpdate struct {
	Name        *string
	Permissions *[]model.Permission
	Color       *string
}

// Update merges the given fields into the role. Unknown ids are a no-op.
func (r *Roles) Update(ctx context.Context, id string, upd RoleUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.roles {
		if r.roles[i].ID != id {
			continue
		}
		if upd.Name != nil {
			r.roles[i].Name = *upd.Name
		}
		if upd.Permissions != nil {
			r.roles[i].Permissions = *upd.Permissions
		}
		if upd.Color != nil {
			r.roles[i].Color = *upd.Color
		}
		saveSnapshot(ctx, r.medium, keyRoles, r.roles)
		return
	}
}

// Delete removes a role by id. Unknown ids are a no-op, the built-in admin
// role refuses deletion, and members still referencing the id keep their
// dangling reference (which grants nothing).
func (r *Roles) Delete(ctx context.Context, id string) {
	if id == model.RoleAdmin {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.roles {
		if r.roles[i].ID == id {
			r.roles = append(r.roles[:i], r.roles[i+1:]...)
			saveSnapshot(ctx, r.medium, keyRoles, r.roles)
			return
		}
	}
}

// HasPermission reports whether any of the referenced roles grants the
// permission, either explicitly or through the blanket manage_all
// capability. Unknown role ids grant nothing.
func (r *Roles) HasPermission(roleIDs []string, p model.Permission) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range roleIDs {
		for _, role := range r.roles {
			if role.ID == id && role.Grants(p) {
				return true
			}
		}
	}
	return false
}
