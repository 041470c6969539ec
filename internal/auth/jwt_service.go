package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cms/internal/model"
)

// TokenExpiry is the duration for which issued tokens are valid.
const TokenExpiry = 7 * 24 * time.Hour

// AdminSubject is the claim subject of the env-configured admin, which has
// no user row.
const AdminSubject = "admin"

// Claims represents JWT claims. UserID is a user uuid or AdminSubject.
type Claims struct {
	UserID     string              `json:"userId"`
	Role       model.Role          `json:"role"`
	Department model.Department    `json:"department"`
	Status     model.AccountStatus `json:"status"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry the sentinel admin identity.
func (c *Claims) IsAdmin() bool {
	return c.UserID == AdminSubject && c.Role == model.RoleAdmin
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateToken signs a token carrying the resolved identity claims.
func (s *JWTService) GenerateToken(userID string, role model.Role, department model.Department, status model.AccountStatus) (string, error) {
	claims := &Claims{
		UserID:     userID,
		Role:       role,
		Department: department,
		Status:     status,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateAdminToken signs the sentinel admin token.
func (s *JWTService) GenerateAdminToken() (string, error) {
	return s.GenerateToken(AdminSubject, model.RoleAdmin, model.DepartmentAll, model.StatusApproved)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
