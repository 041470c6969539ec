package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/model"
)

// AssignmentRepository defines assignment persistence operations.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	Save(ctx context.Context, assignment *model.Assignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	List(ctx context.Context, department model.Department, subject string) ([]model.Assignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, department model.Department) (int64, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository builds a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) Save(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// List returns assignments newest first. Empty filters are ignored.
func (r *assignmentRepository) List(ctx context.Context, department model.Department, subject string) ([]model.Assignment, error) {
	q := r.db.WithContext(ctx)
	if department != "" {
		q = q.Where("department = ?", department)
	}
	if subject != "" {
		q = q.Where("subject = ?", subject)
	}
	var assignments []model.Assignment
	if err := q.Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Assignment{}).Error
}

func (r *assignmentRepository) Count(ctx context.Context, department model.Department) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Assignment{})
	if department != "" {
		q = q.Where("department = ?", department)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
