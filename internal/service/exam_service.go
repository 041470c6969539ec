package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/policy"
	"cms/internal/repository"
)

// ExamView is an exam with the acted-by reference resolved.
type ExamView struct {
	model.Exam
	CreatedBy model.AttributionView `json:"createdBy"`
}

// ExamSubjectInput is one subject session in a create/update request.
type ExamSubjectInput struct {
	SubjectName string
	Date        time.Time
	Time        string
	Venue       string
}

// ExamInput carries an exam create or update request. On update, zero-valued
// fields keep their stored values.
type ExamInput struct {
	ExamName   string
	Subjects   []ExamSubjectInput
	StartDate  time.Time
	EndDate    time.Time
	Department model.Department
}

// ExamService owns the exam lifecycle.
type ExamService interface {
	Create(ctx context.Context, actor identity.Identity, input ExamInput) (*ExamView, error)
	List(ctx context.Context, actor identity.Identity, department model.Department) ([]ExamView, error)
	Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*ExamView, error)
	Update(ctx context.Context, actor identity.Identity, id uuid.UUID, input ExamInput) (*ExamView, error)
	Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error
}

type examService struct {
	exams       repository.ExamRepository
	attribution *AttributionResolver
}

// NewExamService builds an ExamService.
func NewExamService(exams repository.ExamRepository, attribution *AttributionResolver) ExamService {
	return &examService{exams: exams, attribution: attribution}
}

func (s *examService) Create(ctx context.Context, actor identity.Identity, input ExamInput) (*ExamView, error) {
	if input.ExamName == "" || input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, errors.Validation("Exam name, subjects, and exam schedule are required")
	}
	if len(input.Subjects) == 0 {
		return nil, errors.Validation("Subjects must be a non-empty array")
	}

	department, err := policy.WriteDepartment(actor, input.Department)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Department: department,
		ExamName:   input.ExamName,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		CreatedBy:  actor.Attribution(),
		Subjects:   subjectsFromInput(input.Subjects),
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, errors.Unexpected(err)
	}
	return s.view(ctx, exam), nil
}

func (s *examService) List(ctx context.Context, actor identity.Identity, department model.Department) ([]ExamView, error) {
	exams, err := s.exams.List(ctx, policy.ListDepartment(actor, department))
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	views := make([]ExamView, 0, len(exams))
	for i := range exams {
		views = append(views, *s.view(ctx, &exams[i]))
	}
	return views, nil
}

func (s *examService) Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*ExamView, error) {
	exam, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && exam.Department != actor.Department() {
		return nil, errors.Forbidden("Access denied")
	}
	return s.view(ctx, exam), nil
}

func (s *examService) Update(ctx context.Context, actor identity.Identity, id uuid.UUID, input ExamInput) (*ExamView, error) {
	exam, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModify(actor, exam.Department, "You can only update exams for your department"); err != nil {
		return nil, err
	}

	if input.ExamName != "" {
		exam.ExamName = input.ExamName
	}
	if len(input.Subjects) > 0 {
		exam.Subjects = subjectsFromInput(input.Subjects)
		for i := range exam.Subjects {
			exam.Subjects[i].ExamID = exam.ID
		}
	}
	if !input.StartDate.IsZero() {
		exam.StartDate = input.StartDate
	}
	if !input.EndDate.IsZero() {
		exam.EndDate = input.EndDate
	}

	if err := s.exams.Update(ctx, exam); err != nil {
		return nil, errors.Unexpected(err)
	}
	return s.view(ctx, exam), nil
}

// Delete removes an exam. Teachers may create and update exams but only
// HODs and the admin may delete them.
func (s *examService) Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error {
	if err := policy.RequireRole(actor, model.RoleHOD, model.RoleAdmin); err != nil {
		return err
	}
	exam, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanModify(actor, exam.Department, "You can only delete exams for your department"); err != nil {
		return err
	}
	if err := s.exams.Delete(ctx, id); err != nil {
		return errors.Unexpected(err)
	}
	return nil
}

func (s *examService) find(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.exams.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Exam not found")
		}
		return nil, errors.Unexpected(err)
	}
	return exam, nil
}

func (s *examService) view(ctx context.Context, exam *model.Exam) *ExamView {
	return &ExamView{
		Exam:      *exam,
		CreatedBy: s.attribution.Resolve(ctx, exam.CreatedBy),
	}
}

func subjectsFromInput(inputs []ExamSubjectInput) []model.ExamSubject {
	subjects := make([]model.ExamSubject, 0, len(inputs))
	for _, in := range inputs {
		subjects = append(subjects, model.ExamSubject{
			SubjectName: in.SubjectName,
			Date:        in.Date,
			Time:        in.Time,
			Venue:       in.Venue,
		})
	}
	return subjects
}
