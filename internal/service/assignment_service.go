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

// AssignmentView is an assignment with the acted-by reference resolved.
type AssignmentView struct {
	model.Assignment
	CreatedBy model.AttributionView `json:"createdBy"`
}

// AssignmentInput carries a create or update request. On update, zero-valued
// fields keep their stored values.
type AssignmentInput struct {
	Subject    string
	Questions  string
	DueDate    time.Time
	Marks      int
	Department model.Department
}

// AssignmentService owns the assignment lifecycle.
type AssignmentService interface {
	Create(ctx context.Context, actor identity.Identity, input AssignmentInput) (*AssignmentView, error)
	List(ctx context.Context, actor identity.Identity, department model.Department, subject string) ([]AssignmentView, error)
	Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*AssignmentView, error)
	Update(ctx context.Context, actor identity.Identity, id uuid.UUID, input AssignmentInput) (*AssignmentView, error)
	Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	attribution *AttributionResolver
}

// NewAssignmentService builds an AssignmentService.
func NewAssignmentService(assignments repository.AssignmentRepository, attribution *AttributionResolver) AssignmentService {
	return &assignmentService{assignments: assignments, attribution: attribution}
}

func (s *assignmentService) Create(ctx context.Context, actor identity.Identity, input AssignmentInput) (*AssignmentView, error) {
	if input.Subject == "" || input.Questions == "" || input.DueDate.IsZero() {
		return nil, errors.Validation("Subject, questions, and due date are required")
	}
	if input.Marks <= 0 {
		return nil, errors.Validation("Marks must be a positive number")
	}

	department, err := policy.WriteDepartment(actor, input.Department)
	if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		Department: department,
		Subject:    input.Subject,
		Questions:  input.Questions,
		DueDate:    input.DueDate,
		Marks:      input.Marks,
		CreatedBy:  actor.Attribution(),
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, errors.Unexpected(err)
	}
	return s.view(ctx, assignment), nil
}

func (s *assignmentService) List(ctx context.Context, actor identity.Identity, department model.Department, subject string) ([]AssignmentView, error) {
	assignments, err := s.assignments.List(ctx, policy.ListDepartment(actor, department), subject)
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	views := make([]AssignmentView, 0, len(assignments))
	for i := range assignments {
		views = append(views, *s.view(ctx, &assignments[i]))
	}
	return views, nil
}

func (s *assignmentService) Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*AssignmentView, error) {
	assignment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && assignment.Department != actor.Department() {
		return nil, errors.Forbidden("Access denied")
	}
	return s.view(ctx, assignment), nil
}

func (s *assignmentService) Update(ctx context.Context, actor identity.Identity, id uuid.UUID, input AssignmentInput) (*AssignmentView, error) {
	assignment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModify(actor, assignment.Department, "You can only update assignments for your department"); err != nil {
		return nil, err
	}

	if input.Subject != "" {
		assignment.Subject = input.Subject
	}
	if input.Questions != "" {
		assignment.Questions = input.Questions
	}
	if !input.DueDate.IsZero() {
		assignment.DueDate = input.DueDate
	}
	if input.Marks > 0 {
		assignment.Marks = input.Marks
	}

	if err := s.assignments.Save(ctx, assignment); err != nil {
		return nil, errors.Unexpected(err)
	}
	return s.view(ctx, assignment), nil
}

// Delete removes an assignment. Only HODs and the admin may delete.
func (s *assignmentService) Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error {
	if err := policy.RequireRole(actor, model.RoleHOD, model.RoleAdmin); err != nil {
		return err
	}
	assignment, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanModify(actor, assignment.Department, "You can only delete assignments for your department"); err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return errors.Unexpected(err)
	}
	return nil
}

func (s *assignmentService) find(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Assignment not found")
		}
		return nil, errors.Unexpected(err)
	}
	return assignment, nil
}

func (s *assignmentService) view(ctx context.Context, assignment *model.Assignment) *AssignmentView {
	return &AssignmentView{
		Assignment: *assignment,
		CreatedBy:  s.attribution.Resolve(ctx, assignment.CreatedBy),
	}
}
