package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/model"
)

// ExamRepository defines exam persistence operations.
type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Exam, error)
	List(ctx context.Context, department model.Department) ([]model.Exam, error)
	Update(ctx context.Context, exam *model.Exam) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, department model.Department) (int64, error)
}

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository builds a GORM-backed repository.
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.WithContext(ctx).Preload("Subjects").Where("id = ?", id).First(&exam).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

// List returns exams newest first. An empty department returns all.
func (r *examRepository) List(ctx context.Context, department model.Department) ([]model.Exam, error) {
	q := r.db.WithContext(ctx).Preload("Subjects")
	if department != "" {
		q = q.Where("department = ?", department)
	}
	var exams []model.Exam
	if err := q.Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

// Update replaces the exam row and its subject sessions atomically.
func (r *examRepository) Update(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", exam.ID).Delete(&model.ExamSubject{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(exam).Error
	})
}

func (r *examRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&model.ExamSubject{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Exam{}).Error
	})
}

func (r *examRepository) Count(ctx context.Context, department model.Department) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Exam{})
	if department != "" {
		q = q.Where("department = ?", department)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
