// Package identity resolves a validated bearer token into the caller's
// identity. The env-configured admin is a distinct variant built purely from
// token claims, so it keeps working even with an empty user table.
package identity

import (
	"cms/internal/auth"
	"cms/internal/model"
)

// Identity is the resolved caller: either the admin variant or a variant
// backed by a user record.
type Identity struct {
	user *model.User // nil marks the admin variant
}

// Admin returns the sentinel admin identity.
func Admin() Identity {
	return Identity{}
}

// ForUser returns an identity backed by a user record.
func ForUser(user *model.User) Identity {
	return Identity{user: user}
}

// IsAdmin reports whether this is the env-configured admin.
func (id Identity) IsAdmin() bool {
	return id.user == nil
}

// User returns the backing record, ok=false for the admin variant.
func (id Identity) User() (*model.User, bool) {
	if id.user == nil {
		return nil, false
	}
	return id.user, true
}

// SubjectID is the user's id, or the admin sentinel.
func (id Identity) SubjectID() string {
	if id.user == nil {
		return auth.AdminSubject
	}
	return id.user.ID.String()
}

// Role of the caller.
func (id Identity) Role() model.Role {
	if id.user == nil {
		return model.RoleAdmin
	}
	return id.user.Role
}

// Department of the caller; the admin carries the wildcard.
func (id Identity) Department() model.Department {
	if id.user == nil {
		return model.DepartmentAll
	}
	return id.user.Department
}

// Status of the caller; the admin is always approved.
func (id Identity) Status() model.AccountStatus {
	if id.user == nil {
		return model.StatusApproved
	}
	return id.user.Status
}

// Attribution is the acted-by reference this identity stamps on records.
func (id Identity) Attribution() model.Attribution {
	if id.user == nil {
		return model.AdminAttribution()
	}
	return model.UserAttribution(id.user.ID)
}
