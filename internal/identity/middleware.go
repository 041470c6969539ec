package identity

import (
	stderrors "errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"cms/internal/auth"
	"cms/internal/errors"
	"cms/internal/repository"
)

const contextKey = "identity"

// JWTErrorHandler maps token validation failures onto the 401 envelope,
// distinguishing expiry from everything else. Plug into echojwt.Config.
func JWTErrorHandler(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, echojwt.ErrJWTMissing):
		return errors.Unauthenticated("No token provided. Access denied.")
	case stderrors.Is(err, jwt.ErrTokenExpired):
		return errors.Unauthenticated("Token expired. Please login again.")
	default:
		return errors.Unauthenticated("Invalid token. Access denied.")
	}
}

// Middleware resolves the validated token claims into an Identity and stores
// it on the request context. The admin claim short-circuits with no store
// lookup; everyone else must still exist in the user table, so a stale token
// for a deleted user fails as unauthenticated.
func Middleware(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return errors.Unauthenticated("No token provided. Access denied.")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return errors.Unauthenticated("Invalid token. Access denied.")
			}

			if claims.IsAdmin() {
				c.Set(contextKey, Admin())
				return next(c)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return errors.Unauthenticated("Invalid token. Access denied.")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.Unauthenticated("User not found. Token invalid.")
				}
				return errors.Unexpected(err)
			}

			c.Set(contextKey, ForUser(user))
			return next(c)
		}
	}
}

// FromContext returns the identity attached by Middleware.
func FromContext(c echo.Context) (Identity, bool) {
	id, ok := c.Get(contextKey).(Identity)
	return id, ok
}
