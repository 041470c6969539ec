package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/repository"
)

func newNotificationService(notifications *MockNotificationRepository, users *MockUserRepository) NotificationService {
	return NewNotificationService(notifications, NewAttributionResolver(users, nil))
}

func TestAudienceFor(t *testing.T) {
	t.Run("admin audience is unfiltered", func(t *testing.T) {
		audience := audienceFor(identity.Admin())
		assert.Empty(t, audience.Roles)
		assert.Empty(t, audience.Departments)
	})

	t.Run("teacher audience covers own role and department plus wildcards", func(t *testing.T) {
		teacher := &model.User{ID: uuid.New(), Role: model.RoleTeacher, Department: model.DepartmentBCom}
		audience := audienceFor(identity.ForUser(teacher))
		assert.Equal(t, []string{"teacher", "all"}, audience.Roles)
		assert.Equal(t, []model.Department{model.DepartmentBCom, model.DepartmentAll}, audience.Departments)
	})
}

func TestNotificationService_Create(t *testing.T) {
	t.Run("target role defaults to all", func(t *testing.T) {
		notifications := new(MockNotificationRepository)
		notifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).Return(nil)

		view, err := newNotificationService(notifications, new(MockUserRepository)).Create(
			context.Background(), identity.Admin(), NotificationInput{
				Title:       "Holiday",
				Description: "Campus closed on Friday",
			})

		assert.NoError(t, err)
		assert.Equal(t, "all", view.TargetRole)
		assert.Equal(t, model.DepartmentAll, view.Department)
		assert.Equal(t, model.AdminAttributionView, view.CreatedBy)
	})

	t.Run("unknown target role is rejected", func(t *testing.T) {
		_, err := newNotificationService(new(MockNotificationRepository), new(MockUserRepository)).Create(
			context.Background(), identity.Admin(), NotificationInput{
				Title:       "Holiday",
				Description: "Campus closed",
				TargetRole:  "janitor",
			})

		assert.Error(t, err)
		assert.Equal(t, "Target role must be student, teacher, hod, or all", err.Error())
	})

	t.Run("hod posts into own department", func(t *testing.T) {
		hodUser := &model.User{ID: uuid.New(), FullName: "Test HOD", Role: model.RoleHOD, Department: model.DepartmentBCA}
		notifications := new(MockNotificationRepository)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, hodUser.ID).Return(hodUser, nil)
		notifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).Return(nil)

		view, err := newNotificationService(notifications, users).Create(
			context.Background(), identity.ForUser(hodUser), NotificationInput{
				Title:       "Quiz",
				Description: "Quiz on Monday",
				TargetRole:  "student",
				Department:  model.DepartmentBA, // ignored
			})

		assert.NoError(t, err)
		assert.Equal(t, model.DepartmentBCA, view.Department)
	})

	t.Run("teacher may not publish", func(t *testing.T) {
		teacher := &model.User{ID: uuid.New(), Role: model.RoleTeacher, Department: model.DepartmentBCA}
		notifications := new(MockNotificationRepository)

		_, err := newNotificationService(notifications, new(MockUserRepository)).Create(
			context.Background(), identity.ForUser(teacher), NotificationInput{
				Title:       "Quiz",
				Description: "Quiz on Monday",
			})

		assert.Error(t, err)
		assert.Equal(t, errors.KindForbidden, errors.AsError(err).Kind)
		notifications.AssertNotCalled(t, "Create")
	})
}

func TestNotificationService_Get(t *testing.T) {
	notificationID := uuid.New()
	stored := &model.Notification{ID: notificationID, Title: "Holiday", Department: model.DepartmentBCA}

	t.Run("same department reads", func(t *testing.T) {
		notifications := new(MockNotificationRepository)
		notifications.On("FindByID", mock.Anything, notificationID).Return(stored, nil)
		student := identity.ForUser(&model.User{ID: uuid.New(), Role: model.RoleStudent, Department: model.DepartmentBCA})

		view, err := newNotificationService(notifications, new(MockUserRepository)).Get(
			context.Background(), student, notificationID)

		assert.NoError(t, err)
		assert.Equal(t, "Holiday", view.Title)
	})

	t.Run("wildcard notification is visible everywhere", func(t *testing.T) {
		wide := &model.Notification{ID: notificationID, Department: model.DepartmentAll}
		notifications := new(MockNotificationRepository)
		notifications.On("FindByID", mock.Anything, notificationID).Return(wide, nil)
		student := identity.ForUser(&model.User{ID: uuid.New(), Role: model.RoleStudent, Department: model.DepartmentBA})

		_, err := newNotificationService(notifications, new(MockUserRepository)).Get(
			context.Background(), student, notificationID)

		assert.NoError(t, err)
	})

	t.Run("cross department is refused", func(t *testing.T) {
		notifications := new(MockNotificationRepository)
		notifications.On("FindByID", mock.Anything, notificationID).Return(stored, nil)
		outsider := identity.ForUser(&model.User{ID: uuid.New(), Role: model.RoleStudent, Department: model.DepartmentBA})

		_, err := newNotificationService(notifications, new(MockUserRepository)).Get(
			context.Background(), outsider, notificationID)

		assert.Error(t, err)
		assert.Equal(t, "Access denied", err.Error())
		assert.Equal(t, errors.KindForbidden, errors.AsError(err).Kind)
	})
}

func TestNotificationService_Update(t *testing.T) {
	notificationID := uuid.New()

	t.Run("hod edits own-department notification, unset fields kept", func(t *testing.T) {
		stored := &model.Notification{
			ID:          notificationID,
			Title:       "Holiday",
			Description: "Campus closed",
			TargetRole:  "student",
			Department:  model.DepartmentBCA,
		}
		hodUser := &model.User{ID: uuid.New(), FullName: "Test HOD", Role: model.RoleHOD, Department: model.DepartmentBCA}
		notifications := new(MockNotificationRepository)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, hodUser.ID).Return(hodUser, nil)
		notifications.On("FindByID", mock.Anything, notificationID).Return(stored, nil)
		notifications.On("Save", mock.Anything, stored).Return(nil)

		view, err := newNotificationService(notifications, users).Update(
			context.Background(), identity.ForUser(hodUser), notificationID, NotificationInput{Title: "Holiday moved"})

		assert.NoError(t, err)
		assert.Equal(t, "Holiday moved", view.Title)
		assert.Equal(t, "Campus closed", view.Description)
	})

	t.Run("hod may not edit another department", func(t *testing.T) {
		stored := &model.Notification{ID: notificationID, Department: model.DepartmentBCom}
		notifications := new(MockNotificationRepository)
		notifications.On("FindByID", mock.Anything, notificationID).Return(stored, nil)
		hodUser := &model.User{ID: uuid.New(), Role: model.RoleHOD, Department: model.DepartmentBCA}

		_, err := newNotificationService(notifications, new(MockUserRepository)).Update(
			context.Background(), identity.ForUser(hodUser), notificationID, NotificationInput{Title: "x"})

		assert.Error(t, err)
		assert.Equal(t, "You can only update notifications for your department", err.Error())
	})

	t.Run("teacher may not edit", func(t *testing.T) {
		teacher := &model.User{ID: uuid.New(), Role: model.RoleTeacher, Department: model.DepartmentBCA}

		_, err := newNotificationService(new(MockNotificationRepository), new(MockUserRepository)).Update(
			context.Background(), identity.ForUser(teacher), notificationID, NotificationInput{Title: "x"})

		assert.Error(t, err)
		assert.Equal(t, errors.KindForbidden, errors.AsError(err).Kind)
	})
}

func TestNotificationService_List(t *testing.T) {
	t.Run("admin sees every notification regardless of target", func(t *testing.T) {
		notifications := new(MockNotificationRepository)
		notifications.On("List", mock.Anything, repository.NotificationAudience{}).Return([]model.Notification{
			{Title: "For students", TargetRole: "student", Department: model.DepartmentBCA},
			{Title: "For teachers", TargetRole: "teacher", Department: model.DepartmentBA},
		}, nil)

		views, err := newNotificationService(notifications, new(MockUserRepository)).List(
			context.Background(), identity.Admin())

		assert.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("student queries the scoped audience", func(t *testing.T) {
		student := &model.User{ID: uuid.New(), Role: model.RoleStudent, Department: model.DepartmentBCA}
		notifications := new(MockNotificationRepository)
		notifications.On("List", mock.Anything, repository.NotificationAudience{
			Roles:       []string{"student", "all"},
			Departments: []model.Department{model.DepartmentBCA, model.DepartmentAll},
		}).Return([]model.Notification{}, nil)

		_, err := newNotificationService(notifications, new(MockUserRepository)).List(
			context.Background(), identity.ForUser(student))

		assert.NoError(t, err)
		notifications.AssertExpectations(t)
	})
}
