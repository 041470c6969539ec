package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/model"
)

// AttendanceFilter narrows attendance queries. Zero-valued fields are ignored.
type AttendanceFilter struct {
	UserID     uuid.UUID
	Role       model.Role
	Department model.Department
	From       time.Time
	To         time.Time
}

// AttendanceRepository defines attendance persistence operations.
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.Attendance) error
	Save(ctx context.Context, record *model.Attendance) error
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository builds a GORM-backed repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record *model.Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepository) Save(ctx context.Context, record *model.Attendance) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// FindByUserAndDate looks up the natural key behind the attendance upsert.
func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.Attendance, error) {
	var record model.Attendance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns matching records newest date first with the subject user
// preloaded.
func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error) {
	q := r.db.WithContext(ctx).Preload("User")
	if filter.UserID != uuid.Nil {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if !filter.From.IsZero() {
		q = q.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("date <= ?", filter.To)
	}

	var records []model.Attendance
	if err := q.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
