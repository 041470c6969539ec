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

// TimetableView is a timetable entry with the acted-by reference resolved.
type TimetableView struct {
	model.TimetableEntry
	CreatedBy model.AttributionView `json:"createdBy"`
}

// TimetableInput carries an upsert request for one slot.
type TimetableInput struct {
	Day        string
	Subject    string
	TimeSlot   string
	Role       model.Role
	Department model.Department
}

// TimetableQuery narrows timetable listings.
type TimetableQuery struct {
	Role       model.Role
	Department model.Department
	Day        string
}

// TimetableService owns the timetable lifecycle.
type TimetableService interface {
	Upsert(ctx context.Context, actor identity.Identity, input TimetableInput) (*TimetableView, bool, error)
	List(ctx context.Context, actor identity.Identity, query TimetableQuery) ([]TimetableView, error)
	Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error
}

type timetableService struct {
	timetable   repository.TimetableRepository
	attribution *AttributionResolver
}

// NewTimetableService builds a TimetableService.
func NewTimetableService(timetable repository.TimetableRepository, attribution *AttributionResolver) TimetableService {
	return &timetableService{timetable: timetable, attribution: attribution}
}

// Upsert creates or updates the slot keyed by (department, role, day,
// timeSlot). Only HODs and the admin may write timetables. The returned
// bool is true when a new entry was created.
func (s *timetableService) Upsert(ctx context.Context, actor identity.Identity, input TimetableInput) (*TimetableView, bool, error) {
	if err := policy.RequireRole(actor, model.RoleHOD, model.RoleAdmin); err != nil {
		return nil, false, err
	}
	if !model.ValidWeekday(input.Day) {
		return nil, false, errors.Validation("Day must be a weekday name")
	}
	if !model.ValidUserRole(input.Role) {
		return nil, false, errors.Validation("Role must be student, teacher, or hod")
	}

	department, err := policy.WriteDepartment(actor, input.Department)
	if err != nil {
		return nil, false, err
	}
	createdBy := actor.Attribution()

	existing, err := s.timetable.FindByNaturalKey(ctx, department, input.Role, input.Day, input.TimeSlot)
	if err == nil {
		existing.Subject = input.Subject
		existing.CreatedBy = createdBy
		if err := s.timetable.Save(ctx, existing); err != nil {
			return nil, false, errors.Unexpected(err)
		}
		return s.view(ctx, existing), false, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, errors.Unexpected(err)
	}

	entry := &model.TimetableEntry{
		Department: department,
		Role:       input.Role,
		Day:        input.Day,
		Subject:    input.Subject,
		TimeSlot:   input.TimeSlot,
		CreatedBy:  createdBy,
	}
	if err := s.timetable.Create(ctx, entry); err != nil {
		return nil, false, errors.Unexpected(err)
	}
	return s.view(ctx, entry), true, nil
}

// List returns entries visible to the caller, ordered by day then slot.
// The role filter defaults to the caller's own role.
func (s *timetableService) List(ctx context.Context, actor identity.Identity, query TimetableQuery) ([]TimetableView, error) {
	role := query.Role
	if role == "" {
		role = actor.Role()
	}
	filter := repository.TimetableFilter{
		Department: policy.ListDepartment(actor, query.Department),
		Role:       role,
		Day:        query.Day,
	}

	entries, err := s.timetable.List(ctx, filter)
	if err != nil {
		return nil, errors.Unexpected(err)
	}

	views := make([]TimetableView, 0, len(entries))
	for i := range entries {
		views = append(views, *s.view(ctx, &entries[i]))
	}
	return views, nil
}

// Delete removes one entry after the department write check.
func (s *timetableService) Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error {
	if err := policy.RequireRole(actor, model.RoleHOD, model.RoleAdmin); err != nil {
		return err
	}
	entry, err := s.timetable.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("Timetable entry not found")
		}
		return errors.Unexpected(err)
	}
	if err := policy.CanModify(actor, entry.Department, "You can only delete timetable entries for your department"); err != nil {
		return err
	}
	if err := s.timetable.Delete(ctx, id); err != nil {
		return errors.Unexpected(err)
	}
	return nil
}

func (s *timetableService) view(ctx context.Context, entry *model.TimetableEntry) *TimetableView {
	return &TimetableView{
		TimetableEntry: *entry,
		CreatedBy:      s.attribution.Resolve(ctx, entry.CreatedBy),
	}
}
