// Copyright (c) 2026 dashboarDelta contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/model"
)

// ErrMissingMemberFields rejects member creation without the required
// identifying fields.
var ErrMissingMemberFields = errors.New("member username, password and name are required")

// Personnel is the roster of members. The session gate reads it for the
// credential check; the users REST surface mutates it.
type Personnel struct {
	mu      sync.RWMutex
	medium  kv.Store
	members []model.Member
	now     func() time.Time
}

// NewPersonnel loads the roster from the medium.
func NewPersonnel(ctx context.Context, medium kv.Store) *Personnel {
	p := &Personnel{medium: medium, now: time.Now}
	loadSnapshot(ctx, medium, keyMembers, &p.members)
	return p
}

// MemberInput carries the caller-supplied fields of a new member.
type MemberInput struct {
	Username string
	Password string
	Name     string
	Rank     string
	Division string
	Email    string
	Phone    string
	Roles    []string
}

// Add appends a new member with status Actif and today's join date.
func (p *Personnel) Add(ctx context.Context, in MemberInput) (model.Member, error) {
	if in.Username == "" || in.Password == "" || in.Name == "" {
		return model.Member{}, ErrMissingMemberFields
	}

	member := model.Member{
		ID:       p.now().UnixMilli(),
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Rank:     in.Rank,
		Division: in.Division,
		Status:   model.StatusActive,
		Email:    in.Email,
		Phone:    in.Phone,
		JoinDate: p.now().Format("2006-01-02"),
		Roles:    in.Roles,
	}
	if member.Roles == nil {
		member.Roles = []string{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Two adds within the same millisecond would collide.
	for p.idTaken(member.ID) {
		member.ID++
	}

	p.members = append(p.members, member)
	saveSnapshot(ctx, p.medium, keyMembers, p.members)
	return member, nil
}

func (p *Personnel) idTaken(id int64) bool {
	for _, m := range p.members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// MemberUpdate carries the fields of a partial member update. Nil fields
// are left unchanged.
type MemberUpdate struct {
	Username *string
	Password *string
	Name     *string
	Rank     *string
	Division *string
	Email    *string
	Phone    *string
	Roles    *[]string
}

// Update merges the given fields into the member. Unknown ids are a no-op.
func (p *Personnel) Update(ctx context.Context, id int64, upd MemberUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.members {
		if p.members[i].ID != id {
			continue
		}
		m := &p.members[i]
		if upd.Username != nil {
			m.Username = *upd.Username
		}
		if upd.Password != nil {
			m.Password = *upd.Password
		}
		if upd.Name != nil {
			m.Name = *upd.Name
		}
		if upd.Rank != nil {
			m.Rank = *upd.Rank
		}
		if upd.Division != nil {
			m.Division = *upd.Division
		}
		if upd.Email != nil {
			m.Email = *upd.Email
		}
		if upd.Phone != nil {
			m.Phone = *upd.Phone
		}
		if upd.Roles != nil {
			m.Roles = *upd.Roles
		}
		saveSnapshot(ctx, p.medium, keyMembers, p.members)
		return
	}
}

// ToggleStatus flips a member between Actif and Inactif. Unknown ids are a
// no-op.
func (p *Personnel) ToggleStatus(ctx context.Context, id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.members {
		if p.members[i].ID == id {
			if p.members[i].Status == model.StatusActive {
				p.members[i].Status = model.StatusInactive
			} else {
				p.members[i].Status = model.StatusActive
			}
			saveSnapshot(ctx, p.medium, keyMembers, p.members)
			return
		}
	}
}

// Remove deletes a member by id. Unknown ids are a no-op. Messages,
// announcements and activity entries attributed to the username keep their
// by-value reference.
func (p *Personnel) Remove(ctx context.Context, id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.members {
		if p.members[i].ID == id {
			p.members = append(p.members[:i], p.members[i+1:]...)
			saveSnapshot(ctx, p.medium, keyMembers, p.members)
			return
		}
	}
}

// Members returns a copy of the roster.
func (p *Personnel) Members() []model.Member {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]model.Member, len(p.members))
	copy(out, p.members)
	return out
}

// FindByUsername returns the member with the given username.
func (p *Personnel) FindByUsername(username string) (model.Member, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, m := range p.members {
		if m.Username == username {
			return m, true
		}
	}
	return model.Member{}, false
}

// FindByID returns the member with the given id.
func (p *Personnel) FindByID(id int64) (model.Member, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, m := range p.members {
		if m.ID == id {
			return m, true
		}
	}
	return model.Member{}, false
}
