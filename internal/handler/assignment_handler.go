package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/model"
	"cms/internal/service"
)

// AssignmentHandler handles assignment endpoints.
type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler.
func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// AssignmentRequest represents an assignment create or update request.
type AssignmentRequest struct {
	Subject    string `json:"subject"`
	Questions  string `json:"questions"`
	DueDate    string `json:"dueDate"`
	Marks      int    `json:"marks"`
	Department string `json:"department"`
}

func (r *AssignmentRequest) toInput() (service.AssignmentInput, error) {
	dueDate, err := optionalDate(r.DueDate)
	if err != nil {
		return service.AssignmentInput{}, err
	}
	return service.AssignmentInput{
		Subject:    r.Subject,
		Questions:  r.Questions,
		DueDate:    dueDate,
		Marks:      r.Marks,
		Department: model.Department(r.Department),
	}, nil
}

// Create godoc
// @Summary Post an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssignmentRequest true "Assignment data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req AssignmentRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	assignment, err := h.assignmentService.Create(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"message":    "Assignment created successfully",
		"assignment": assignment,
	})
}

// List godoc
// @Summary List assignments visible to the caller
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department (admin only)"
// @Param subject query string false "Subject"
// @Success 200 {object} map[string]interface{}
// @Router /assignments [get]
func (h *AssignmentHandler) List(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	assignments, err := h.assignmentService.List(c.Request().Context(), id, model.Department(c.QueryParam("department")), c.QueryParam("subject"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "assignments": assignments})
}

// Get godoc
// @Summary Fetch one assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) Get(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	assignmentID, err := pathID(c)
	if err != nil {
		return err
	}

	assignment, err := h.assignmentService.Get(c.Request().Context(), id, assignmentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "assignment": assignment})
}

// Update godoc
// @Summary Update one assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment id"
// @Param request body AssignmentRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	assignmentID, err := pathID(c)
	if err != nil {
		return err
	}

	var req AssignmentRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	assignment, err := h.assignmentService.Update(c.Request().Context(), id, assignmentID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    "Assignment updated successfully",
		"assignment": assignment,
	})
}

// Delete godoc
// @Summary Delete one assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	assignmentID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.assignmentService.Delete(c.Request().Context(), id, assignmentID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Assignment deleted successfully",
	})
}
