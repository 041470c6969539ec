package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/model"
	"cms/internal/service"
)

// AttendanceHandler handles attendance endpoints.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// MarkAttendanceRequest represents a mark/re-mark request.
type MarkAttendanceRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Date   string `json:"date" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// Mark godoc
// @Summary Mark or update attendance for one user and day
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkAttendanceRequest true "Attendance data"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req MarkAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Validation("User ID, date, and status are required")
	}

	userID, err := optionalUUID(req.UserID)
	if err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}

	record, created, err := h.attendanceService.Mark(c.Request().Context(), id, userID, date, model.AttendanceStatus(req.Status))
	if err != nil {
		return err
	}

	status := http.StatusOK
	message := "Attendance updated successfully"
	if created {
		status = http.StatusCreated
		message = "Attendance marked successfully"
	}
	return c.JSON(status, echo.Map{
		"success":    true,
		"message":    message,
		"attendance": record,
	})
}

// List godoc
// @Summary List attendance records visible to the caller
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param userId query string false "User id"
// @Param role query string false "Role"
// @Param department query string false "Department (admin only)"
// @Param from query string false "Start date"
// @Param to query string false "End date"
// @Success 200 {object} map[string]interface{}
// @Router /attendance [get]
func (h *AttendanceHandler) List(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	userID, err := optionalUUID(c.QueryParam("userId"))
	if err != nil {
		return err
	}
	from, err := optionalDate(c.QueryParam("from"))
	if err != nil {
		return err
	}
	to, err := optionalDate(c.QueryParam("to"))
	if err != nil {
		return err
	}

	records, err := h.attendanceService.List(c.Request().Context(), id, service.AttendanceQuery{
		UserID:     userID,
		Role:       model.Role(c.QueryParam("role")),
		Department: model.Department(c.QueryParam("department")),
		From:       from,
		To:         to,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "attendance": records})
}

// Stats godoc
// @Summary Summarize one user's attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param userId query string false "User id (ignored for students)"
// @Param from query string false "Start date"
// @Param to query string false "End date"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Envelope
// @Router /attendance/stats [get]
func (h *AttendanceHandler) Stats(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	userID, err := optionalUUID(c.QueryParam("userId"))
	if err != nil {
		return err
	}
	from, err := optionalDate(c.QueryParam("from"))
	if err != nil {
		return err
	}
	to, err := optionalDate(c.QueryParam("to"))
	if err != nil {
		return err
	}

	stats, err := h.attendanceService.Stats(c.Request().Context(), id, userID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "stats": stats})
}
