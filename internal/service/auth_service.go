package service

import (
	"context"
	stderrors "errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cms/internal/auth"
	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/repository"
)

const bcryptCost = 10

// AdminProfile is the fixed display profile of the env-configured admin.
type AdminProfile struct {
	FullName   string              `json:"fullName"`
	Email      string              `json:"email"`
	Role       model.Role          `json:"role"`
	Department model.Department    `json:"department"`
	Status     model.AccountStatus `json:"status"`
}

// DefaultAdminProfile mirrors the identity carried in admin token claims.
var DefaultAdminProfile = AdminProfile{
	FullName:   "Admin",
	Email:      "admin@cms.com",
	Role:       model.RoleAdmin,
	Department: model.DepartmentAll,
	Status:     model.StatusApproved,
}

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	FullName        string
	Email           string
	Phone           string
	Department      model.Department
	Role            model.Role
	Password        string
	ConfirmPassword string
}

// AuthService handles authentication operations.
type AuthService interface {
	AdminLogin(ctx context.Context, username, password string) (token string, err error)
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	ChangePassword(ctx context.Context, actor identity.Identity, current, newPassword, confirm string) error
}

type authService struct {
	users         repository.UserRepository
	jwtService    *auth.JWTService
	adminUsername string
	adminPassword string
}

// NewAuthService creates a new authentication service. adminUsername and
// adminPassword come from deployment configuration; no admin user row exists.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, adminUsername, adminPassword string) AuthService {
	return &authService{
		users:         users,
		jwtService:    jwtService,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// AdminLogin checks the env-configured credentials and issues the sentinel
// admin token. The failure message deliberately matches the shape of a
// failed user login.
func (s *authService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	if username != s.adminUsername || password != s.adminPassword {
		return "", errors.Unauthenticated("Invalid admin credentials")
	}
	token, err := s.jwtService.GenerateAdminToken()
	if err != nil {
		return "", errors.Unexpected(err)
	}
	return token, nil
}

// Register creates a pending user with a hashed password.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, errors.Validation("Passwords do not match")
	}
	if len(input.Password) < 6 {
		return nil, errors.Validation("Password must be at least 6 characters long")
	}
	if !model.ValidDepartment(input.Department) {
		return nil, errors.Validation("Department must be BCA, BCom, or BA")
	}
	role := model.Role(strings.ToLower(string(input.Role)))
	if !model.ValidUserRole(role) {
		return nil, errors.Validation("Role must be student, teacher, or hod")
	}

	email := strings.ToLower(input.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, errors.Validation("Email already registered")
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Unexpected(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, errors.Unexpected(err)
	}

	user := &model.User{
		FullName:   input.FullName,
		Email:      email,
		Phone:      input.Phone,
		Department: input.Department,
		Role:       role,
		Password:   string(hashed),
		Status:     model.StatusPending,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// loser of a concurrent registration race on the email index
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.Validation("Email already registered")
		}
		return nil, errors.Unexpected(err)
	}
	return user, nil
}

// Login authenticates an approved user and issues a token carrying the
// resolved identity claims.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, errors.Unauthenticated("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.Unauthenticated("Invalid email or password")
	}
	if user.Status != model.StatusApproved {
		return "", nil, errors.Forbidden("Your account is " + string(user.Status) + ". Please wait for admin approval.")
	}

	token, err := s.jwtService.GenerateToken(user.ID.String(), user.Role, user.Department, user.Status)
	if err != nil {
		return "", nil, errors.Unexpected(err)
	}
	return token, user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *authService) ChangePassword(ctx context.Context, actor identity.Identity, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return errors.Validation("New passwords do not match")
	}
	if len(newPassword) < 6 {
		return errors.Validation("New password must be at least 6 characters long")
	}

	user, ok := actor.User()
	if !ok {
		return errors.Forbidden("Admin credentials are managed via environment configuration")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return errors.Unauthenticated("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return errors.Unexpected(err)
	}
	user.Password = string(hashed)
	if err := s.users.Save(ctx, user); err != nil {
		return errors.Unexpected(err)
	}
	return nil
}
