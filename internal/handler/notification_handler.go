package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/model"
	"cms/internal/service"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// NotificationRequest represents a create request.
type NotificationRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Media       string `json:"media"`
	TargetRole  string `json:"targetRole"`
	Department  string `json:"department"`
}

// Create godoc
// @Summary Publish a notification to a role and department
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NotificationRequest true "Notification data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Envelope
// @Router /notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req NotificationRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Validation("Title and description are required")
	}

	notification, err := h.notificationService.Create(c.Request().Context(), id, service.NotificationInput{
		Title:       req.Title,
		Description: req.Description,
		Media:       req.Media,
		TargetRole:  req.TargetRole,
		Department:  model.Department(req.Department),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":      true,
		"message":      "Notification created successfully",
		"notification": notification,
	})
}

// List godoc
// @Summary List notifications addressed to the caller
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationService.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "notifications": notifications})
}

// Get godoc
// @Summary Fetch one notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /notifications/{id} [get]
func (h *NotificationHandler) Get(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	notificationID, err := pathID(c)
	if err != nil {
		return err
	}

	notification, err := h.notificationService.Get(c.Request().Context(), id, notificationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "notification": notification})
}

// Update godoc
// @Summary Update one notification
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification id"
// @Param request body NotificationRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /notifications/{id} [put]
func (h *NotificationHandler) Update(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	notificationID, err := pathID(c)
	if err != nil {
		return err
	}

	var req NotificationRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}

	notification, err := h.notificationService.Update(c.Request().Context(), id, notificationID, service.NotificationInput{
		Title:       req.Title,
		Description: req.Description,
		Media:       req.Media,
		TargetRole:  req.TargetRole,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      "Notification updated successfully",
		"notification": notification,
	})
}

// Delete godoc
// @Summary Delete one notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	notificationID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.notificationService.Delete(c.Request().Context(), id, notificationID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Notification deleted successfully",
	})
}
