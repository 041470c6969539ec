package service

import (
	"context"
	stderrors "errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/policy"
	"cms/internal/repository"
)

// AttendanceView is an attendance record with the acted-by reference
// resolved for display.
type AttendanceView struct {
	model.Attendance
	MarkedBy model.AttributionView `json:"markedBy"`
}

// AttendanceQuery narrows attendance listings.
type AttendanceQuery struct {
	UserID     uuid.UUID
	Role       model.Role
	Department model.Department
	From       time.Time
	To         time.Time
}

// AttendanceStats summarizes one user's attendance.
type AttendanceStats struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Percentage float64 `json:"percentage"`
}

// AttendanceService owns the attendance lifecycle.
type AttendanceService interface {
	Mark(ctx context.Context, actor identity.Identity, userID uuid.UUID, date time.Time, status model.AttendanceStatus) (*AttendanceView, bool, error)
	List(ctx context.Context, actor identity.Identity, query AttendanceQuery) ([]AttendanceView, error)
	Stats(ctx context.Context, actor identity.Identity, userID uuid.UUID, from, to time.Time) (*AttendanceStats, error)
}

type attendanceService struct {
	attendance  repository.AttendanceRepository
	users       repository.UserRepository
	attribution *AttributionResolver
}

// NewAttendanceService builds an AttendanceService.
func NewAttendanceService(attendance repository.AttendanceRepository, users repository.UserRepository, attribution *AttributionResolver) AttendanceService {
	return &attendanceService{attendance: attendance, users: users, attribution: attribution}
}

// Mark upserts attendance on the (user, date) natural key: re-marking the
// same day updates the existing record and refreshes the acted-by
// reference. The unique index backs this up under concurrency; a losing
// insert surfaces as a conflict the caller retries as an update.
// The returned bool is true when a new record was created.
func (s *attendanceService) Mark(ctx context.Context, actor identity.Identity, userID uuid.UUID, date time.Time, status model.AttendanceStatus) (*AttendanceView, bool, error) {
	if !model.ValidAttendanceStatus(status) {
		return nil, false, errors.Validation(`Status must be either "present" or "absent"`)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, errors.NotFound("User not found")
		}
		return nil, false, errors.Unexpected(err)
	}

	if err := policy.CanModify(actor, user.Department, "You can only mark attendance for users in your department"); err != nil {
		return nil, false, err
	}

	day := model.DayOf(date)
	markedBy := actor.Attribution()

	existing, err := s.attendance.FindByUserAndDate(ctx, userID, day)
	if err == nil {
		existing.Status = status
		existing.MarkedBy = markedBy
		if err := s.attendance.Save(ctx, existing); err != nil {
			return nil, false, errors.Unexpected(err)
		}
		return s.view(ctx, existing), false, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, errors.Unexpected(err)
	}

	record := &model.Attendance{
		UserID:     userID,
		Role:       user.Role,
		Date:       day,
		Status:     status,
		MarkedBy:   markedBy,
		Department: user.Department,
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, errors.Conflict("Attendance already marked for this date")
		}
		return nil, false, errors.Unexpected(err)
	}
	return s.view(ctx, record), true, nil
}

// List returns records visible to the caller. Students only ever see their
// own; non-admin callers are pinned to their department.
func (s *attendanceService) List(ctx context.Context, actor identity.Identity, query AttendanceQuery) ([]AttendanceView, error) {
	filter := repository.AttendanceFilter{
		UserID:     policy.OwnerScope(actor, query.UserID),
		Role:       query.Role,
		Department: policy.ListDepartment(actor, query.Department),
		From:       query.From,
		To:         query.To,
	}

	records, err := s.attendance.List(ctx, filter)
	if err != nil {
		return nil, errors.Unexpected(err)
	}

	views := make([]AttendanceView, 0, len(records))
	for i := range records {
		views = append(views, *s.view(ctx, &records[i]))
	}
	return views, nil
}

// Stats computes present/absent counts and a percentage for one user.
// Students always get their own stats regardless of the requested user.
func (s *attendanceService) Stats(ctx context.Context, actor identity.Identity, userID uuid.UUID, from, to time.Time) (*AttendanceStats, error) {
	target := policy.OwnerScope(actor, userID)
	if target == uuid.Nil {
		return nil, errors.Validation("User ID is required")
	}

	records, err := s.attendance.List(ctx, repository.AttendanceFilter{UserID: target, From: from, To: to})
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	return computeAttendanceStats(records), nil
}

func computeAttendanceStats(records []model.Attendance) *AttendanceStats {
	stats := &AttendanceStats{Total: len(records)}
	for _, r := range records {
		if r.Status == model.AttendancePresent {
			stats.Present++
		} else {
			stats.Absent++
		}
	}
	if stats.Total > 0 {
		stats.Percentage = math.Round(float64(stats.Present)/float64(stats.Total)*100*100) / 100
	}
	return stats
}

func (s *attendanceService) view(ctx context.Context, record *model.Attendance) *AttendanceView {
	return &AttendanceView{
		Attendance: *record,
		MarkedBy:   s.attribution.Resolve(ctx, record.MarkedBy),
	}
}
