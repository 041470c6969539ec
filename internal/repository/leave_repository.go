package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/model"
)

// LeaveFilter narrows leave request queries. Zero-valued fields are ignored.
type LeaveFilter struct {
	RequestedBy uuid.UUID
	Role        model.Role
	Status      model.LeaveStatus
}

// LeaveRepository defines leave request persistence operations.
type LeaveRepository interface {
	Create(ctx context.Context, request *model.LeaveRequest) error
	Save(ctx context.Context, request *model.LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]model.LeaveRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRequester(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status model.LeaveStatus) (int64, error)
}

type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository builds a GORM-backed repository.
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, request *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *leaveRepository) Save(ctx context.Context, request *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *leaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	var request model.LeaveRequest
	if err := r.db.WithContext(ctx).Preload("Requester").Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns matching requests newest first with the requester preloaded.
// Department is not denormalized onto requests, so department scoping happens
// in the service after the fetch.
func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter) ([]model.LeaveRequest, error) {
	q := r.db.WithContext(ctx).Preload("Requester")
	if filter.RequestedBy != uuid.Nil {
		q = q.Where("requested_by = ?", filter.RequestedBy)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var requests []model.LeaveRequest
	if err := q.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *leaveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.LeaveRequest{}).Error
}

func (r *leaveRepository) CountByRequester(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.LeaveRequest{}).
		Where("requested_by = ?", userID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *leaveRepository) CountByStatus(ctx context.Context, status model.LeaveStatus) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.LeaveRequest{}).
		Where("status = ?", status).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
