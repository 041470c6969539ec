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

// NotificationView is a notification with the acted-by reference resolved.
type NotificationView struct {
	model.Notification
	CreatedBy model.AttributionView `json:"createdBy"`
}

// NotificationInput carries a create or update request. On update,
// zero-valued fields keep their stored values.
type NotificationInput struct {
	Title       string
	Description string
	Media       string
	TargetRole  string
	Department  model.Department
}

// NotificationService owns the notification lifecycle.
type NotificationService interface {
	Create(ctx context.Context, actor identity.Identity, input NotificationInput) (*NotificationView, error)
	List(ctx context.Context, actor identity.Identity) ([]NotificationView, error)
	Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*NotificationView, error)
	Update(ctx context.Context, actor identity.Identity, id uuid.UUID, input NotificationInput) (*NotificationView, error)
	Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error
}

type notificationService struct {
	notifications repository.NotificationRepository
	attribution   *AttributionResolver
}

// NewNotificationService builds a NotificationService.
func NewNotificationService(notifications repository.NotificationRepository, attribution *AttributionResolver) NotificationService {
	return &notificationService{notifications: notifications, attribution: attribution}
}

// Create publishes a notification. Only HODs and the admin may publish.
func (s *notificationService) Create(ctx context.Context, actor identity.Identity, input NotificationInput) (*NotificationView, error) {
	if err := policy.RequireRole(actor, model.RoleHOD, model.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Title == "" || input.Description == "" {
		return nil, errors.Validation("Title and description are required")
	}
	targetRole := input.TargetRole
	if targetRole == "" {
		targetRole = "all"
	}
	if !model.ValidTargetRole(targetRole) {
		return nil, errors.Validation("Target role must be student, teacher, hod, or all")
	}

	department, err := policy.WriteDepartment(actor, input.Department)
	if err != nil {
		return nil, err
	}

	notification := &model.Notification{
		Title:       input.Title,
		Description: input.Description,
		Media:       input.Media,
		TargetRole:  targetRole,
		Department:  department,
		CreatedBy:   actor.Attribution(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, errors.Unexpected(err)
	}
	return s.view(ctx, notification), nil
}

// List returns notifications addressed to the caller, newest first. The
// admin sees every notification; everyone else sees those targeting their
// role or all roles, within their department or the wildcard.
func (s *notificationService) List(ctx context.Context, actor identity.Identity) ([]NotificationView, error) {
	notifications, err := s.notifications.List(ctx, audienceFor(actor))
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	views := make([]NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, *s.view(ctx, &notifications[i]))
	}
	return views, nil
}

// Get returns one notification visible to the caller.
func (s *notificationService) Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*NotificationView, error) {
	notification, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && notification.Department != model.DepartmentAll && notification.Department != actor.Department() {
		return nil, errors.Forbidden("Access denied")
	}
	return s.view(ctx, notification), nil
}

// Update edits a notification; zero-valued fields keep their stored values.
func (s *notificationService) Update(ctx context.Context, actor identity.Identity, id uuid.UUID, input NotificationInput) (*NotificationView, error) {
	if err := policy.RequireRole(actor, model.RoleHOD, model.RoleAdmin); err != nil {
		return nil, err
	}
	notification, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModify(actor, notification.Department, "You can only update notifications for your department"); err != nil {
		return nil, err
	}

	if input.Title != "" {
		notification.Title = input.Title
	}
	if input.Description != "" {
		notification.Description = input.Description
	}
	if input.Media != "" {
		notification.Media = input.Media
	}
	if input.TargetRole != "" {
		if !model.ValidTargetRole(input.TargetRole) {
			return nil, errors.Validation("Target role must be student, teacher, hod, or all")
		}
		notification.TargetRole = input.TargetRole
	}

	if err := s.notifications.Save(ctx, notification); err != nil {
		return nil, errors.Unexpected(err)
	}
	return s.view(ctx, notification), nil
}

func (s *notificationService) Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error {
	if err := policy.RequireRole(actor, model.RoleHOD, model.RoleAdmin); err != nil {
		return err
	}
	notification, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanModify(actor, notification.Department, "You can only delete notifications for your department"); err != nil {
		return err
	}
	if err := s.notifications.Delete(ctx, id); err != nil {
		return errors.Unexpected(err)
	}
	return nil
}

func audienceFor(actor identity.Identity) repository.NotificationAudience {
	if actor.IsAdmin() {
		return repository.NotificationAudience{}
	}
	return repository.NotificationAudience{
		Roles:       []string{string(actor.Role()), "all"},
		Departments: []model.Department{actor.Department(), model.DepartmentAll},
	}
}

func (s *notificationService) find(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	notification, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Notification not found")
		}
		return nil, errors.Unexpected(err)
	}
	return notification, nil
}

func (s *notificationService) view(ctx context.Context, notification *model.Notification) *NotificationView {
	return &NotificationView{
		Notification: *notification,
		CreatedBy:    s.attribution.Resolve(ctx, notification.CreatedBy),
	}
}
