package service

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/policy"
	"cms/internal/repository"
)

// ResultView is a result with the acted-by reference resolved.
type ResultView struct {
	model.Result
	CreatedBy model.AttributionView `json:"createdBy"`
}

// ResultQuery narrows result listings.
type ResultQuery struct {
	StudentID uuid.UUID
	ExamID    uuid.UUID
	Subject   string
}

// ResultService owns the result lifecycle.
type ResultService interface {
	Add(ctx context.Context, actor identity.Identity, studentID, examID uuid.UUID, subject string, marks int) (*ResultView, bool, error)
	List(ctx context.Context, actor identity.Identity, query ResultQuery) ([]ResultView, error)
	Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*ResultView, error)
	Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error
}

type resultService struct {
	results     repository.ResultRepository
	users       repository.UserRepository
	exams       repository.ExamRepository
	attribution *AttributionResolver
}

// NewResultService builds a ResultService.
func NewResultService(results repository.ResultRepository, users repository.UserRepository, exams repository.ExamRepository, attribution *AttributionResolver) ResultService {
	return &resultService{results: results, users: users, exams: exams, attribution: attribution}
}

// Add upserts marks on the (student, exam, subject) natural key and derives
// pass/fail from the marks. The returned bool is true when a new result was
// created rather than an existing one updated.
func (s *resultService) Add(ctx context.Context, actor identity.Identity, studentID, examID uuid.UUID, subject string, marks int) (*ResultView, bool, error) {
	if subject == "" {
		return nil, false, errors.Validation("Subject is required")
	}
	if marks < 0 || marks > 100 {
		return nil, false, errors.Validation("Marks must be between 0 and 100")
	}

	student, err := s.users.FindByID(ctx, studentID)
	if err != nil || student.Role != model.RoleStudent {
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, errors.Unexpected(err)
		}
		return nil, false, errors.NotFound("Student not found")
	}

	exam, err := s.exams.FindByID(ctx, examID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, errors.NotFound("Exam not found")
		}
		return nil, false, errors.Unexpected(err)
	}
	if err := policy.CanModify(actor, exam.Department, "You can only add results for exams in your department"); err != nil {
		return nil, false, err
	}

	createdBy := actor.Attribution()
	status := model.GradeFor(marks)

	existing, err := s.results.FindByNaturalKey(ctx, studentID, examID, subject)
	if err == nil {
		existing.Marks = marks
		existing.Status = status
		existing.CreatedBy = createdBy
		if err := s.results.Save(ctx, existing); err != nil {
			return nil, false, errors.Unexpected(err)
		}
		return s.view(ctx, existing), false, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, errors.Unexpected(err)
	}

	result := &model.Result{
		StudentID: studentID,
		ExamID:    examID,
		Subject:   subject,
		Marks:     marks,
		Status:    status,
		CreatedBy: createdBy,
	}
	if err := s.results.Create(ctx, result); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, errors.Conflict("Result already recorded for this subject")
		}
		return nil, false, errors.Unexpected(err)
	}
	return s.view(ctx, result), true, nil
}

// List returns results visible to the caller. Students only ever see their
// own; teachers and HODs see their department's students.
func (s *resultService) List(ctx context.Context, actor identity.Identity, query ResultQuery) ([]ResultView, error) {
	filter := repository.ResultFilter{
		StudentID: policy.OwnerScope(actor, query.StudentID),
		ExamID:    query.ExamID,
		Subject:   query.Subject,
	}

	results, err := s.results.List(ctx, filter)
	if err != nil {
		return nil, errors.Unexpected(err)
	}

	views := make([]ResultView, 0, len(results))
	for i := range results {
		if !s.visible(actor, &results[i]) {
			continue
		}
		views = append(views, *s.view(ctx, &results[i]))
	}
	return views, nil
}

func (s *resultService) Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*ResultView, error) {
	result, err := s.results.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Result not found")
		}
		return nil, errors.Unexpected(err)
	}
	if !s.visible(actor, result) {
		return nil, errors.Forbidden("Access denied")
	}
	return s.view(ctx, result), nil
}

// Delete removes a result. Only HOD and admin may delete, and an HOD only
// within their own department.
func (s *resultService) Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error {
	if err := policy.RequireRole(actor, model.RoleHOD, model.RoleAdmin); err != nil {
		return errors.Forbidden("Access denied. Only HOD and Admin can delete results")
	}

	result, err := s.results.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("Result not found")
		}
		return errors.Unexpected(err)
	}
	if result.Student != nil {
		if err := policy.CanModify(actor, result.Student.Department, "You can only delete results for your department"); err != nil {
			return err
		}
	}

	if err := s.results.Delete(ctx, id); err != nil {
		return errors.Unexpected(err)
	}
	return nil
}

// visible implements the read scope: results carry no department of their
// own, so scoping goes through the preloaded student.
func (s *resultService) visible(actor identity.Identity, result *model.Result) bool {
	if actor.IsAdmin() {
		return true
	}
	user, ok := actor.User()
	if !ok {
		return false
	}
	if user.Role == model.RoleStudent {
		return result.StudentID == user.ID
	}
	return result.Student == nil || result.Student.Department == user.Department
}

func (s *resultService) view(ctx context.Context, result *model.Result) *ResultView {
	return &ResultView{
		Result:    *result,
		CreatedBy: s.attribution.Resolve(ctx, result.CreatedBy),
	}
}
