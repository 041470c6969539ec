package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/model"
	"cms/internal/repository"
	"cms/internal/service"
)

// UserHandler handles profile and user-administration endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a profile update request.
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// UpdateStatusRequest represents an approval state change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Profile godoc
// @Summary Return the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Envelope
// @Router /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	user, err := h.userService.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// UpdateProfile godoc
// @Summary Update the caller's name and phone
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Envelope
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), id, req.FullName, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// List godoc
// @Summary List users with filters and pagination
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param status query string false "Approval status"
// @Param role query string false "Role"
// @Param department query string false "Department"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := repository.UserFilter{
		Status:     model.AccountStatus(c.QueryParam("status")),
		Role:       model.Role(c.QueryParam("role")),
		Department: model.Department(c.QueryParam("department")),
	}

	result, err := h.userService.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"users":   result.Users,
		"total":   result.Total,
		"page":    result.Page,
		"pages":   result.Pages,
	})
}

// Pending godoc
// @Summary List users awaiting approval
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Router /users/pending [get]
func (h *UserHandler) Pending(c echo.Context) error {
	users, err := h.userService.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}

// UpdateStatus godoc
// @Summary Approve or reject a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Envelope
// @Router /users/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Validation("Valid status (pending, approved, rejected) is required")
	}

	user, err := h.userService.UpdateStatus(c.Request().Context(), id, model.AccountStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User status updated successfully",
		"user":    user,
	})
}

// ByRole godoc
// @Summary List approved users of one role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string true "Role"
// @Param department query string false "Department (admin only)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Envelope
// @Router /users/by-role [get]
func (h *UserHandler) ByRole(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	role := model.Role(c.QueryParam("role"))
	if !model.ValidUserRole(role) {
		return errors.Validation("Role must be student, teacher, or hod")
	}

	users, err := h.userService.ListByRole(c.Request().Context(), id, role, model.Department(c.QueryParam("department")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}
