package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/model"
)

// NotificationAudience narrows notification queries to an audience. Roles
// and Departments are IN-lists; an empty list leaves that dimension
// unfiltered (admin's view).
type NotificationAudience struct {
	Roles       []string
	Departments []model.Department
}

// NotificationRepository defines notification persistence operations.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	Save(ctx context.Context, notification *model.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	List(ctx context.Context, audience NotificationAudience) ([]model.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, audience NotificationAudience) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository builds a GORM-backed repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) Save(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// List returns audience-matching notifications newest first.
func (r *notificationRepository) List(ctx context.Context, audience NotificationAudience) ([]model.Notification, error) {
	var notifications []model.Notification
	q := r.apply(r.db.WithContext(ctx), audience)
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Notification{}).Error
}

func (r *notificationRepository) Count(ctx context.Context, audience NotificationAudience) (int64, error) {
	var total int64
	q := r.apply(r.db.WithContext(ctx).Model(&model.Notification{}), audience)
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *notificationRepository) apply(q *gorm.DB, audience NotificationAudience) *gorm.DB {
	if len(audience.Roles) > 0 {
		q = q.Where("target_role IN ?", audience.Roles)
	}
	if len(audience.Departments) > 0 {
		q = q.Where("department IN ?", audience.Departments)
	}
	return q
}
