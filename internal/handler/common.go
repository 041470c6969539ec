// Package handler exposes the HTTP surface. Handlers bind and validate
// request bodies, then delegate to the service layer; domain errors flow to
// the global error handler, which renders the response envelope.
package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/identity"
)

// actor returns the identity resolved by the auth middleware.
func actor(c echo.Context) (identity.Identity, error) {
	id, ok := identity.FromContext(c)
	if !ok {
		return identity.Identity{}, errors.Unauthenticated("No token provided. Access denied.")
	}
	return id, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.Validation("Invalid id")
	}
	return id, nil
}

// optionalUUID parses a uuid query or body value, treating empty as absent.
func optionalUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.Validation("Invalid id")
	}
	return id, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Validation("Date must be in YYYY-MM-DD format")
	}
	return t, nil
}

// optionalDate is parseDate but treats empty as the zero time.
func optionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return parseDate(value)
}
