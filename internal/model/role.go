// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared across the application:
// roles, members, notifications, messages, announcements and the identity
// established at login.
package model

// Permission is a capability tag granted by a role.
type Permission string

// Capabilities recognized by the role registry. ManageAll is the blanket
// admin capability: a role holding it grants every permission.
const (
	PermManageUsers  Permission = "manage_users"
	PermManageRoles  Permission = "manage_roles"
	PermDeleteReport Permission = "delete_reports"
	PermManageEvents Permission = "manage_events"
	PermViewActivity Permission = "view_activity_logs"
	PermManageAll    Permission = "manage_all"
)

// RoleAdmin is the id of the built-in administrator role. It cannot be
// deleted.
const RoleAdmin = "admin"

// Role is a named permission set assignable to members by id.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	Color       string       `json:"color"`
}

// Grants reports whether the role lists the permission explicitly or holds
// the blanket manage_all capability.
func (r Role) Grants(p Permission) bool {
	for _, have := range r.Permissions {
		if have == PermManageAll || have == p {
			return true
		}
	}
	return false
}
