package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cms/internal/model"
)

func TestAttributionResolver_Resolve(t *testing.T) {
	t.Run("admin reference resolves without a lookup", func(t *testing.T) {
		users := new(MockUserRepository)
		resolver := NewAttributionResolver(users, nil)

		view := resolver.Resolve(context.Background(), model.AdminAttribution())

		assert.Equal(t, model.AdminAttributionView, view)
		assert.Equal(t, "admin", view.ID)
		assert.Equal(t, "Admin", view.FullName)
		users.AssertNotCalled(t, "FindByID")
	})

	t.Run("user reference resolves to the display identity", func(t *testing.T) {
		userID := uuid.New()
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, FullName: "Test Teacher"}, nil)
		resolver := NewAttributionResolver(users, nil)

		view := resolver.Resolve(context.Background(), model.UserAttribution(userID))

		assert.Equal(t, userID.String(), view.ID)
		assert.Equal(t, "Test Teacher", view.FullName)
	})

	t.Run("deleted user degrades to the raw reference", func(t *testing.T) {
		userID := uuid.New()
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
		resolver := NewAttributionResolver(users, nil)

		view := resolver.Resolve(context.Background(), model.UserAttribution(userID))

		assert.Equal(t, userID.String(), view.ID)
		assert.Empty(t, view.FullName)
	})

	t.Run("zero reference resolves to the zero view", func(t *testing.T) {
		resolver := NewAttributionResolver(new(MockUserRepository), nil)

		view := resolver.Resolve(context.Background(), model.Attribution{})

		assert.Empty(t, view.ID)
		assert.Empty(t, view.FullName)
	})
}
