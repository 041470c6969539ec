package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/model"
)

// ResultFilter narrows result queries. Zero-valued fields are ignored.
type ResultFilter struct {
	StudentID uuid.UUID
	ExamID    uuid.UUID
	Subject   string
}

// ResultRepository defines result persistence operations.
type ResultRepository interface {
	Create(ctx context.Context, result *model.Result) error
	Save(ctx context.Context, result *model.Result) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Result, error)
	FindByNaturalKey(ctx context.Context, studentID, examID uuid.UUID, subject string) (*model.Result, error)
	List(ctx context.Context, filter ResultFilter) ([]model.Result, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository builds a GORM-backed repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, result *model.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *resultRepository) Save(ctx context.Context, result *model.Result) error {
	return r.db.WithContext(ctx).Save(result).Error
}

func (r *resultRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Result, error) {
	var result model.Result
	if err := r.db.WithContext(ctx).
		Preload("Student").Preload("Exam").
		Where("id = ?", id).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// FindByNaturalKey looks up the (student, exam, subject) key behind the
// result upsert.
func (r *resultRepository) FindByNaturalKey(ctx context.Context, studentID, examID uuid.UUID, subject string) (*model.Result, error) {
	var result model.Result
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND exam_id = ? AND subject = ?", studentID, examID, subject).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns matching results newest first with student and exam preloaded.
func (r *resultRepository) List(ctx context.Context, filter ResultFilter) ([]model.Result, error) {
	q := r.db.WithContext(ctx).Preload("Student").Preload("Exam")
	if filter.StudentID != uuid.Nil {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	if filter.ExamID != uuid.Nil {
		q = q.Where("exam_id = ?", filter.ExamID)
	}
	if filter.Subject != "" {
		q = q.Where("subject = ?", filter.Subject)
	}

	var results []model.Result
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Result{}).Error
}
