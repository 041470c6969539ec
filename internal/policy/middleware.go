package policy

import (
	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
)

// StatusGate blocks pending and rejected accounts on every protected route.
func StatusGate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := identity.FromContext(c)
			if !ok {
				return errors.Unauthenticated("Authentication required.")
			}
			if err := RequireApproved(id); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RoleGate restricts a route to the given roles.
func RoleGate(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := identity.FromContext(c)
			if !ok {
				return errors.Unauthenticated("Authentication required.")
			}
			if err := RequireRole(id, allowed...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
