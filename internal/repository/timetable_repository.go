package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/model"
)

// TimetableFilter narrows timetable queries. Zero-valued fields are ignored.
type TimetableFilter struct {
	Department model.Department
	Role       model.Role
	Day        string
}

// TimetableRepository defines timetable persistence operations.
type TimetableRepository interface {
	Create(ctx context.Context, entry *model.TimetableEntry) error
	Save(ctx context.Context, entry *model.TimetableEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TimetableEntry, error)
	FindByNaturalKey(ctx context.Context, department model.Department, role model.Role, day, timeSlot string) (*model.TimetableEntry, error)
	List(ctx context.Context, filter TimetableFilter) ([]model.TimetableEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type timetableRepository struct {
	db *gorm.DB
}

// NewTimetableRepository builds a GORM-backed repository.
func NewTimetableRepository(db *gorm.DB) TimetableRepository {
	return &timetableRepository{db: db}
}

func (r *timetableRepository) Create(ctx context.Context, entry *model.TimetableEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *timetableRepository) Save(ctx context.Context, entry *model.TimetableEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *timetableRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TimetableEntry, error) {
	var entry model.TimetableEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByNaturalKey looks up the slot key behind the timetable upsert.
func (r *timetableRepository) FindByNaturalKey(ctx context.Context, department model.Department, role model.Role, day, timeSlot string) (*model.TimetableEntry, error) {
	var entry model.TimetableEntry
	if err := r.db.WithContext(ctx).
		Where("department = ? AND role = ? AND day = ? AND time_slot = ?", department, role, day, timeSlot).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns matching entries ordered by day then time slot.
func (r *timetableRepository) List(ctx context.Context, filter TimetableFilter) ([]model.TimetableEntry, error) {
	q := r.db.WithContext(ctx)
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Day != "" {
		q = q.Where("day = ?", filter.Day)
	}
	var entries []model.TimetableEntry
	if err := q.Order("day ASC, time_slot ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timetableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TimetableEntry{}).Error
}
