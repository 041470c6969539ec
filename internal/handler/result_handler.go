package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/service"
)

// ResultHandler handles result endpoints.
type ResultHandler struct {
	resultService service.ResultService
}

// NewResultHandler creates a new result handler.
func NewResultHandler(resultService service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// AddResultRequest represents an add/update marks request.
type AddResultRequest struct {
	StudentID string `json:"studentId" validate:"required,uuid"`
	ExamID    string `json:"examId" validate:"required,uuid"`
	Subject   string `json:"subject" validate:"required"`
	Marks     *int   `json:"marks" validate:"required"`
}

// Add godoc
// @Summary Record marks for one student, exam, and subject
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddResultRequest true "Result data"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /results [post]
func (h *ResultHandler) Add(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req AddResultRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Validation("Student ID, exam ID, subject, and marks are required")
	}

	studentID, err := optionalUUID(req.StudentID)
	if err != nil {
		return err
	}
	examID, err := optionalUUID(req.ExamID)
	if err != nil {
		return err
	}

	result, created, err := h.resultService.Add(c.Request().Context(), id, studentID, examID, req.Subject, *req.Marks)
	if err != nil {
		return err
	}

	status := http.StatusOK
	message := "Result updated successfully"
	if created {
		status = http.StatusCreated
		message = "Result added successfully"
	}
	return c.JSON(status, echo.Map{
		"success": true,
		"message": message,
		"result":  result,
	})
}

// List godoc
// @Summary List results visible to the caller
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Student id (ignored for students)"
// @Param examId query string false "Exam id"
// @Param subject query string false "Subject"
// @Success 200 {object} map[string]interface{}
// @Router /results [get]
func (h *ResultHandler) List(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	studentID, err := optionalUUID(c.QueryParam("studentId"))
	if err != nil {
		return err
	}
	examID, err := optionalUUID(c.QueryParam("examId"))
	if err != nil {
		return err
	}

	results, err := h.resultService.List(c.Request().Context(), id, service.ResultQuery{
		StudentID: studentID,
		ExamID:    examID,
		Subject:   c.QueryParam("subject"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "results": results})
}

// Get godoc
// @Summary Return one result
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path string true "Result id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Envelope
// @Router /results/{id} [get]
func (h *ResultHandler) Get(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	resultID, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := h.resultService.Get(c.Request().Context(), id, resultID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "result": result})
}

// Delete godoc
// @Summary Delete one result
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path string true "Result id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /results/{id} [delete]
func (h *ResultHandler) Delete(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	resultID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.resultService.Delete(c.Request().Context(), id, resultID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Result deleted successfully",
	})
}
