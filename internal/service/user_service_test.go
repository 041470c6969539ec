package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/repository"
)

func newUserService(users *MockUserRepository) UserService {
	return NewUserService(users, NewAttributionResolver(users, nil))
}

func TestUserService_UpdateStatus(t *testing.T) {
	t.Run("approves a pending user", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Status: model.StatusPending}
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)

		updated, err := newUserService(users).UpdateStatus(context.Background(), user.ID, model.StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusApproved, updated.Status)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := newUserService(new(MockUserRepository)).UpdateStatus(
			context.Background(), uuid.New(), model.AccountStatus("banned"))

		assert.Error(t, err)
		assert.Equal(t, "Valid status (pending, approved, rejected) is required", err.Error())
		assert.Equal(t, errors.KindValidation, errors.AsError(err).Kind)
	})

	t.Run("unknown user", func(t *testing.T) {
		id := uuid.New()
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := newUserService(users).UpdateStatus(context.Background(), id, model.StatusRejected)

		assert.Error(t, err)
		assert.Equal(t, errors.KindNotFound, errors.AsError(err).Kind)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("empty fields keep stored values", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), FullName: "Old Name", Phone: "123", Role: model.RoleStudent}
		users := new(MockUserRepository)
		users.On("Save", mock.Anything, user).Return(nil)

		updated, err := newUserService(users).UpdateProfile(context.Background(), identity.ForUser(user), "New Name", "")

		assert.NoError(t, err)
		assert.Equal(t, "New Name", updated.FullName)
		assert.Equal(t, "123", updated.Phone)
	})

	t.Run("admin has no profile row", func(t *testing.T) {
		_, err := newUserService(new(MockUserRepository)).UpdateProfile(
			context.Background(), identity.Admin(), "x", "")

		assert.Error(t, err)
		assert.Equal(t, errors.KindNotFound, errors.AsError(err).Kind)
	})
}

func TestUserService_ListByRole_PinsDepartment(t *testing.T) {
	teacher := &model.User{ID: uuid.New(), Role: model.RoleTeacher, Department: model.DepartmentBCA}
	users := new(MockUserRepository)
	users.On("ListByName", mock.Anything, repository.UserFilter{
		Status:     model.StatusApproved,
		Role:       model.RoleStudent,
		Department: model.DepartmentBCA,
	}).Return([]model.User{}, nil)

	_, err := newUserService(users).ListByRole(
		context.Background(), identity.ForUser(teacher), model.RoleStudent, model.DepartmentBCom)

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestUserService_List_Pagination(t *testing.T) {
	users := new(MockUserRepository)
	users.On("List", mock.Anything, repository.UserFilter{}, 1, 10).
		Return(make([]model.User, 10), int64(25), nil)

	page, err := newUserService(users).List(context.Background(), repository.UserFilter{}, 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)
}
