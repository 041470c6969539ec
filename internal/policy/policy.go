// Package policy decides what a resolved identity may see and touch. Role
// and status gates run as route middleware; the scoping and write rules are
// pure functions the resource services consult.
package policy

import (
	"github.com/google/uuid"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
)

// RequireRole fails unless the identity's role is in the allowed set.
func RequireRole(id identity.Identity, allowed ...model.Role) error {
	role := id.Role()
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	if len(allowed) == 1 && allowed[0] == model.RoleAdmin {
		return errors.Forbidden("Access denied. Admin privileges required.")
	}
	return errors.Forbidden("Access denied. Insufficient privileges.")
}

// RequireApproved is the status gate: non-admin identities must be approved
// before touching any resource. The admin identity always passes.
func RequireApproved(id identity.Identity) error {
	if id.IsAdmin() {
		return nil
	}
	if id.Status() != model.StatusApproved {
		return errors.Forbidden("Access denied. Your account is pending approval.")
	}
	return nil
}

// ListDepartment derives the department filter for list/read queries. Admin
// sees across departments unless it supplies its own filter; everyone else
// is pinned to their own department, and any requested filter is ignored.
func ListDepartment(id identity.Identity, requested model.Department) model.Department {
	if id.IsAdmin() {
		return requested
	}
	return id.Department()
}

// OwnerScope pins students to their own records regardless of any requested
// owner filter. Other roles keep the requested filter.
func OwnerScope(id identity.Identity, requested uuid.UUID) uuid.UUID {
	if user, ok := id.User(); ok && user.Role == model.RoleStudent {
		return user.ID
	}
	return requested
}

// WriteDepartment resolves the department persisted on a created or updated
// record. Admin may target any department, defaulting to the wildcard.
// Non-admin identities always write into their own department; asking for
// the wildcard explicitly is a validation failure.
func WriteDepartment(id identity.Identity, requested model.Department) (model.Department, error) {
	if id.IsAdmin() {
		if requested == "" {
			return model.DepartmentAll, nil
		}
		return requested, nil
	}
	if requested == model.DepartmentAll {
		return "", errors.Validation("Department must be specified for non-admin users")
	}
	return id.Department(), nil
}

// CanModify is the write-authorization check on an existing
// department-scoped record: admin, or same department. message is the
// resource-specific refusal shown to the caller.
func CanModify(id identity.Identity, recordDepartment model.Department, message string) error {
	if id.IsAdmin() || recordDepartment == id.Department() {
		return nil
	}
	return errors.Forbidden(message)
}

// CanReviewLeave gates leave status transitions: admin reviews anything; an
// HOD reviews only teacher requests from their own department.
func CanReviewLeave(id identity.Identity, requesterRole model.Role, requesterDepartment model.Department) error {
	if id.IsAdmin() {
		return nil
	}
	if id.Role() == model.RoleHOD {
		if requesterRole != model.RoleTeacher || requesterDepartment != id.Department() {
			return errors.Forbidden("You can only review leave requests from teachers in your department")
		}
		return nil
	}
	return errors.Forbidden("Access denied")
}

// CanViewLeave gates single-request reads: students and teachers see their
// own, an HOD sees their department, admin sees everything.
func CanViewLeave(id identity.Identity, requestedBy uuid.UUID, requesterDepartment model.Department) error {
	if id.IsAdmin() {
		return nil
	}
	switch id.Role() {
	case model.RoleStudent, model.RoleTeacher:
		if user, ok := id.User(); ok && user.ID == requestedBy {
			return nil
		}
	case model.RoleHOD:
		if requesterDepartment == id.Department() {
			return nil
		}
	}
	return errors.Forbidden("Access denied")
}

// CanDeleteLeave gates deletion: the requester or admin only.
func CanDeleteLeave(id identity.Identity, requestedBy uuid.UUID) error {
	if id.IsAdmin() {
		return nil
	}
	if user, ok := id.User(); ok && user.ID == requestedBy {
		return nil
	}
	return errors.Forbidden("You can only delete your own leave requests")
}
