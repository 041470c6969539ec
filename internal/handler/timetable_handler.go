package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/model"
	"cms/internal/service"
)

// TimetableHandler handles timetable endpoints.
type TimetableHandler struct {
	timetableService service.TimetableService
}

// NewTimetableHandler creates a new timetable handler.
func NewTimetableHandler(timetableService service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableService: timetableService}
}

// TimetableRequest represents an upsert request for one slot.
type TimetableRequest struct {
	Day        string `json:"day" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	TimeSlot   string `json:"timeSlot" validate:"required"`
	Role       string `json:"role" validate:"required"`
	Department string `json:"department"`
}

// Upsert godoc
// @Summary Create or replace one timetable slot
// @Tags timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TimetableRequest true "Slot data"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Envelope
// @Router /timetable [post]
func (h *TimetableHandler) Upsert(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req TimetableRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Validation("Day, subject, time slot, and role are required")
	}

	entry, created, err := h.timetableService.Upsert(c.Request().Context(), id, service.TimetableInput{
		Day:        req.Day,
		Subject:    req.Subject,
		TimeSlot:   req.TimeSlot,
		Role:       model.Role(req.Role),
		Department: model.Department(req.Department),
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	message := "Timetable entry updated successfully"
	if created {
		status = http.StatusCreated
		message = "Timetable entry created successfully"
	}
	return c.JSON(status, echo.Map{
		"success":   true,
		"message":   message,
		"timetable": entry,
	})
}

// List godoc
// @Summary List timetable entries visible to the caller
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role (defaults to the caller's)"
// @Param department query string false "Department (admin only)"
// @Param day query string false "Weekday"
// @Success 200 {object} map[string]interface{}
// @Router /timetable [get]
func (h *TimetableHandler) List(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	entries, err := h.timetableService.List(c.Request().Context(), id, service.TimetableQuery{
		Role:       model.Role(c.QueryParam("role")),
		Department: model.Department(c.QueryParam("department")),
		Day:        c.QueryParam("day"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "timetable": entries})
}

// Delete godoc
// @Summary Delete one timetable entry
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /timetable/{id} [delete]
func (h *TimetableHandler) Delete(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	entryID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.timetableService.Delete(c.Request().Context(), id, entryID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Timetable entry deleted successfully",
	})
}
