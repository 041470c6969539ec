package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/model"
	"cms/internal/service"
)

// LeaveHandler handles leave request endpoints.
type LeaveHandler struct {
	leaveService service.LeaveService
}

// NewLeaveHandler creates a new leave handler.
func NewLeaveHandler(leaveService service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// LeaveRequestBody represents a leave application.
type LeaveRequestBody struct {
	Reason string `json:"reason" validate:"required"`
}

// ReviewLeaveRequest represents an approve/reject decision.
type ReviewLeaveRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create godoc
// @Summary File a leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LeaveRequestBody true "Leave data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Envelope
// @Router /leaves [post]
func (h *LeaveHandler) Create(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req LeaveRequestBody
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Validation("Reason is required")
	}

	request, err := h.leaveService.Create(c.Request().Context(), id, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Leave request submitted successfully",
		"leave":   request,
	})
}

// List godoc
// @Summary List leave requests the caller may review or track
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param status query string false "Review status"
// @Success 200 {object} map[string]interface{}
// @Router /leaves [get]
func (h *LeaveHandler) List(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	requests, err := h.leaveService.List(c.Request().Context(), id, model.LeaveStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "leaves": requests})
}

// Mine godoc
// @Summary List the caller's own leave requests
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /leaves/my [get]
func (h *LeaveHandler) Mine(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	requests, err := h.leaveService.ListMine(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "leaves": requests})
}

// Get godoc
// @Summary Return one leave request
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Envelope
// @Router /leaves/{id} [get]
func (h *LeaveHandler) Get(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	leaveID, err := pathID(c)
	if err != nil {
		return err
	}

	request, err := h.leaveService.Get(c.Request().Context(), id, leaveID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "leave": request})
}

// Review godoc
// @Summary Approve or reject a leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request id"
// @Param request body ReviewLeaveRequest true "Decision"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /leaves/{id}/review [patch]
func (h *LeaveHandler) Review(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	leaveID, err := pathID(c)
	if err != nil {
		return err
	}

	var req ReviewLeaveRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Validation("Status must be either approved or rejected")
	}

	request, err := h.leaveService.Review(c.Request().Context(), id, leaveID, model.LeaveStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Leave request " + req.Status + " successfully",
		"leave":   request,
	})
}

// Delete godoc
// @Summary Delete one leave request
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /leaves/{id} [delete]
func (h *LeaveHandler) Delete(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	leaveID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.leaveService.Delete(c.Request().Context(), id, leaveID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Leave request deleted successfully",
	})
}
