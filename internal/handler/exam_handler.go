package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cms/internal/errors"
	"cms/internal/model"
	"cms/internal/service"
)

// ExamHandler handles exam endpoints.
type ExamHandler struct {
	examService service.ExamService
}

// NewExamHandler creates a new exam handler.
func NewExamHandler(examService service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ExamSubjectRequest is one subject session in an exam request.
type ExamSubjectRequest struct {
	SubjectName string `json:"subjectName" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
}

// ExamRequest represents an exam create or update request.
type ExamRequest struct {
	ExamName   string               `json:"examName"`
	Subjects   []ExamSubjectRequest `json:"subjects"`
	StartDate  string               `json:"startDate"`
	EndDate    string               `json:"endDate"`
	Department string               `json:"department"`
}

func (r *ExamRequest) toInput() (service.ExamInput, error) {
	input := service.ExamInput{
		ExamName:   r.ExamName,
		Department: model.Department(r.Department),
	}

	var err error
	if input.StartDate, err = optionalDate(r.StartDate); err != nil {
		return input, err
	}
	if input.EndDate, err = optionalDate(r.EndDate); err != nil {
		return input, err
	}

	for _, sub := range r.Subjects {
		var date time.Time
		if date, err = parseDate(sub.Date); err != nil {
			return input, err
		}
		input.Subjects = append(input.Subjects, service.ExamSubjectInput{
			SubjectName: sub.SubjectName,
			Date:        date,
			Time:        sub.Time,
			Venue:       sub.Venue,
		})
	}
	return input, nil
}

// Create godoc
// @Summary Create an exam with its subject sessions
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExamRequest true "Exam data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Envelope
// @Router /exams [post]
func (h *ExamHandler) Create(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	var req ExamRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	exam, err := h.examService.Create(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Exam created successfully",
		"exam":    exam,
	})
}

// List godoc
// @Summary List exams visible to the caller
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department (admin only)"
// @Success 200 {object} map[string]interface{}
// @Router /exams [get]
func (h *ExamHandler) List(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}

	exams, err := h.examService.List(c.Request().Context(), id, model.Department(c.QueryParam("department")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "exams": exams})
}

// Get godoc
// @Summary Return one exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exam id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Envelope
// @Router /exams/{id} [get]
func (h *ExamHandler) Get(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	examID, err := pathID(c)
	if err != nil {
		return err
	}

	exam, err := h.examService.Get(c.Request().Context(), id, examID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "exam": exam})
}

// Update godoc
// @Summary Update one exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exam id"
// @Param request body ExamRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /exams/{id} [put]
func (h *ExamHandler) Update(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	examID, err := pathID(c)
	if err != nil {
		return err
	}

	var req ExamRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("Invalid request body")
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	exam, err := h.examService.Update(c.Request().Context(), id, examID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Exam updated successfully",
		"exam":    exam,
	})
}

// Delete godoc
// @Summary Delete one exam and its subject sessions
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exam id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /exams/{id} [delete]
func (h *ExamHandler) Delete(c echo.Context) error {
	id, err := actor(c)
	if err != nil {
		return err
	}
	examID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.examService.Delete(c.Request().Context(), id, examID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Exam deleted successfully",
	})
}
