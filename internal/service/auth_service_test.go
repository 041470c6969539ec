package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cms/internal/auth"
	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
)

func newAuthService(users *MockUserRepository) AuthService {
	return NewAuthService(users, auth.NewJWTService("test-secret"), "admin", "secret")
}

func TestAuthService_AdminLogin(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		expectedError string
	}{
		{
			name:     "correct credentials issue a token",
			username: "admin",
			password: "secret",
		},
		{
			name:          "wrong password",
			username:      "admin",
			password:      "wrong",
			expectedError: "Invalid admin credentials",
		},
		{
			name:          "wrong username",
			username:      "root",
			password:      "secret",
			expectedError: "Invalid admin credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(new(MockUserRepository))
			token, err := svc.AdminLogin(context.Background(), tt.username, tt.password)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Equal(t, errors.KindUnauthenticated, errors.AsError(err).Kind)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)

				claims, err := auth.NewJWTService("test-secret").ValidateToken(token)
				assert.NoError(t, err)
				assert.True(t, claims.IsAdmin())
				assert.Equal(t, model.DepartmentAll, claims.Department)
			}
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	base := RegisterInput{
		FullName:        "Test Student",
		Email:           "Student@Example.com",
		Phone:           "1234567890",
		Department:      model.DepartmentBCA,
		Role:            model.RoleStudent,
		Password:        "password123",
		ConfirmPassword: "password123",
	}

	tests := []struct {
		name          string
		mutate        func(*RegisterInput)
		setupMock     func(*MockUserRepository)
		expectedError string
	}{
		{
			name: "successful registration is pending with hashed password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "student@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "password mismatch",
			mutate:        func(in *RegisterInput) { in.ConfirmPassword = "different" },
			expectedError: "Passwords do not match",
		},
		{
			name: "short password",
			mutate: func(in *RegisterInput) {
				in.Password = "abc"
				in.ConfirmPassword = "abc"
			},
			expectedError: "Password must be at least 6 characters long",
		},
		{
			name:          "unknown department",
			mutate:        func(in *RegisterInput) { in.Department = "Physics" },
			expectedError: "Department must be BCA, BCom, or BA",
		},
		{
			name:          "admin role rejected",
			mutate:        func(in *RegisterInput) { in.Role = model.RoleAdmin },
			expectedError: "Role must be student, teacher, or hod",
		},
		{
			name: "duplicate email",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "student@example.com").Return(&model.User{Email: "student@example.com"}, nil)
			},
			expectedError: "Email already registered",
		},
		{
			name: "concurrent registration race loser",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "student@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: "Email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			if tt.setupMock != nil {
				tt.setupMock(mockRepo)
			}

			input := base
			if tt.mutate != nil {
				tt.mutate(&input)
			}

			user, err := newAuthService(mockRepo).Register(context.Background(), input)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "student@example.com", user.Email)
				assert.Equal(t, model.StatusPending, user.Status)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	approved := &model.User{
		ID:         uuid.New(),
		Email:      "teacher@example.com",
		Password:   string(hashed),
		Role:       model.RoleTeacher,
		Department: model.DepartmentBCom,
		Status:     model.StatusApproved,
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError string
		expectedKind  errors.Kind
	}{
		{
			name:     "approved user logs in",
			email:    "teacher@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "teacher@example.com").Return(approved, nil)
			},
		},
		{
			name:     "unknown email gets the generic message",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: "Invalid email or password",
			expectedKind:  errors.KindUnauthenticated,
		},
		{
			name:     "wrong password gets the same generic message",
			email:    "teacher@example.com",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "teacher@example.com").Return(approved, nil)
			},
			expectedError: "Invalid email or password",
			expectedKind:  errors.KindUnauthenticated,
		},
		{
			name:     "pending account is blocked after password check",
			email:    "pending@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "pending@example.com").Return(&model.User{
					Email:    "pending@example.com",
					Password: string(hashed),
					Status:   model.StatusPending,
				}, nil)
			},
			expectedError: "Your account is pending. Please wait for admin approval.",
			expectedKind:  errors.KindForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			token, user, err := newAuthService(mockRepo).Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Equal(t, tt.expectedKind, errors.AsError(err).Kind)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, approved.Email, user.Email)

				claims, err := auth.NewJWTService("test-secret").ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, approved.ID.String(), claims.UserID)
				assert.Equal(t, approved.Department, claims.Department)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), 10)

	t.Run("admin identity is refused", func(t *testing.T) {
		err := newAuthService(new(MockUserRepository)).ChangePassword(context.Background(), identity.Admin(), "oldpass", "newpass1", "newpass1")
		assert.Error(t, err)
		assert.Equal(t, "Admin credentials are managed via environment configuration", err.Error())
	})

	t.Run("wrong current password", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Password: string(hashed)}
		err := newAuthService(new(MockUserRepository)).ChangePassword(context.Background(), identity.ForUser(user), "wrong", "newpass1", "newpass1")
		assert.Error(t, err)
		assert.Equal(t, "Current password is incorrect", err.Error())
	})

	t.Run("success stores a new hash", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Password: string(hashed)}
		mockRepo := new(MockUserRepository)
		mockRepo.On("Save", mock.Anything, user).Return(nil)

		err := newAuthService(mockRepo).ChangePassword(context.Background(), identity.ForUser(user), "oldpass", "newpass1", "newpass1")
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpass1")))
		mockRepo.AssertExpectations(t)
	})
}
