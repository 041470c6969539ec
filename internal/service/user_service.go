package service

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/policy"
	"cms/internal/repository"
)

// UserPage is one page of the admin user listing.
type UserPage struct {
	Users []model.User
	Total int64
	Page  int
	Pages int
}

// UserService exposes profile and user-administration operations.
type UserService interface {
	Profile(ctx context.Context, actor identity.Identity) (*model.User, error)
	UpdateProfile(ctx context.Context, actor identity.Identity, fullName, phone string) (*model.User, error)
	List(ctx context.Context, filter repository.UserFilter, page, limit int) (*UserPage, error)
	ListPending(ctx context.Context) ([]model.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) (*model.User, error)
	ListByRole(ctx context.Context, actor identity.Identity, role model.Role, department model.Department) ([]model.User, error)
}

type userService struct {
	users       repository.UserRepository
	attribution *AttributionResolver
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository, attribution *AttributionResolver) UserService {
	return &userService{users: users, attribution: attribution}
}

// Profile returns the caller's own record. The admin identity has no row.
func (s *userService) Profile(ctx context.Context, actor identity.Identity) (*model.User, error) {
	user, ok := actor.User()
	if !ok {
		return nil, errors.NotFound("User not found")
	}
	return user, nil
}

// UpdateProfile changes the caller's name and phone. Empty fields are left
// untouched. A rename invalidates the cached attribution display identity.
func (s *userService) UpdateProfile(ctx context.Context, actor identity.Identity, fullName, phone string) (*model.User, error) {
	user, ok := actor.User()
	if !ok {
		return nil, errors.NotFound("User not found")
	}
	if fullName != "" {
		user.FullName = fullName
	}
	if phone != "" {
		user.Phone = phone
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, errors.Unexpected(err)
	}
	s.attribution.Invalidate(ctx, user.ID.String())
	return user, nil
}

// List returns a filtered page of users, newest first.
func (s *userService) List(ctx context.Context, filter repository.UserFilter, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	users, total, err := s.users.List(ctx, filter, page, limit)
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return &UserPage{Users: users, Total: total, Page: page, Pages: pages}, nil
}

// ListPending returns users awaiting approval, newest first.
func (s *userService) ListPending(ctx context.Context) ([]model.User, error) {
	users, _, err := s.users.List(ctx, repository.UserFilter{Status: model.StatusPending}, 1, 1000)
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	return users, nil
}

// UpdateStatus transitions a user's approval state.
func (s *userService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) (*model.User, error) {
	if !model.ValidAccountStatus(status) {
		return nil, errors.Validation("Valid status (pending, approved, rejected) is required")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("User not found")
		}
		return nil, errors.Unexpected(err)
	}
	user.Status = status
	if err := s.users.Save(ctx, user); err != nil {
		return nil, errors.Unexpected(err)
	}
	return user, nil
}

// ListByRole returns approved users matching role and department, sorted by
// name. Non-admin callers are pinned to their own department.
func (s *userService) ListByRole(ctx context.Context, actor identity.Identity, role model.Role, department model.Department) ([]model.User, error) {
	filter := repository.UserFilter{
		Status:     model.StatusApproved,
		Role:       role,
		Department: policy.ListDepartment(actor, department),
	}
	users, err := s.users.ListByName(ctx, filter)
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	return users, nil
}
