package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/policy"
	"cms/internal/repository"
)

// LeaveView is a leave request with the reviewer reference resolved.
// ReviewedBy is nil until the request has been reviewed.
type LeaveView struct {
	model.LeaveRequest
	ReviewedBy *model.AttributionView `json:"reviewedBy"`
}

// LeaveService owns the leave request lifecycle.
type LeaveService interface {
	Create(ctx context.Context, actor identity.Identity, reason string) (*LeaveView, error)
	List(ctx context.Context, actor identity.Identity, status model.LeaveStatus) ([]LeaveView, error)
	ListMine(ctx context.Context, actor identity.Identity) ([]LeaveView, error)
	Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*LeaveView, error)
	Review(ctx context.Context, actor identity.Identity, id uuid.UUID, status model.LeaveStatus) (*LeaveView, error)
	Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error
}

type leaveService struct {
	leaves      repository.LeaveRepository
	attribution *AttributionResolver
}

// NewLeaveService builds a LeaveService.
func NewLeaveService(leaves repository.LeaveRepository, attribution *AttributionResolver) LeaveService {
	return &leaveService{leaves: leaves, attribution: attribution}
}

// Create files a pending request for the caller. The admin identity has no
// user record to request leave for.
func (s *leaveService) Create(ctx context.Context, actor identity.Identity, reason string) (*LeaveView, error) {
	user, ok := actor.User()
	if !ok {
		return nil, errors.Forbidden("Admin cannot create leave requests")
	}
	if reason == "" {
		return nil, errors.Validation("Reason is required")
	}

	request := &model.LeaveRequest{
		RequestedBy: user.ID,
		Role:        user.Role,
		Reason:      reason,
		Status:      model.LeavePending,
		Requester:   user,
	}
	if err := s.leaves.Create(ctx, request); err != nil {
		return nil, errors.Unexpected(err)
	}
	return s.view(ctx, request), nil
}

// List returns the requests the caller may review or track. The admin sees
// everything; an HOD sees teacher requests from their own department;
// students and teachers see their own.
func (s *leaveService) List(ctx context.Context, actor identity.Identity, status model.LeaveStatus) ([]LeaveView, error) {
	filter := repository.LeaveFilter{Status: status}
	switch {
	case actor.IsAdmin():
	case actor.Role() == model.RoleHOD:
		filter.Role = model.RoleTeacher
	default:
		user, _ := actor.User()
		filter.RequestedBy = user.ID
	}

	requests, err := s.leaves.List(ctx, filter)
	if err != nil {
		return nil, errors.Unexpected(err)
	}

	views := make([]LeaveView, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		// requests carry no department; HOD scoping joins through the requester
		if actor.Role() == model.RoleHOD && !actor.IsAdmin() {
			if r.Requester == nil || r.Requester.Department != actor.Department() {
				continue
			}
		}
		views = append(views, *s.view(ctx, r))
	}
	return views, nil
}

// ListMine returns the caller's own requests, newest first.
func (s *leaveService) ListMine(ctx context.Context, actor identity.Identity) ([]LeaveView, error) {
	user, ok := actor.User()
	if !ok {
		return []LeaveView{}, nil
	}
	requests, err := s.leaves.List(ctx, repository.LeaveFilter{RequestedBy: user.ID})
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	views := make([]LeaveView, 0, len(requests))
	for i := range requests {
		views = append(views, *s.view(ctx, &requests[i]))
	}
	return views, nil
}

func (s *leaveService) Get(ctx context.Context, actor identity.Identity, id uuid.UUID) (*LeaveView, error) {
	request, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewLeave(actor, request.RequestedBy, requesterDepartment(request)); err != nil {
		return nil, err
	}
	return s.view(ctx, request), nil
}

// Review approves or rejects a pending request and stamps the reviewer.
func (s *leaveService) Review(ctx context.Context, actor identity.Identity, id uuid.UUID, status model.LeaveStatus) (*LeaveView, error) {
	if status != model.LeaveApproved && status != model.LeaveRejected {
		return nil, errors.Validation("Status must be either approved or rejected")
	}

	request, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReviewLeave(actor, request.Role, requesterDepartment(request)); err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = status
	request.ReviewedBy = actor.Attribution()
	request.ReviewedAt = &now
	if err := s.leaves.Save(ctx, request); err != nil {
		return nil, errors.Unexpected(err)
	}
	return s.view(ctx, request), nil
}

func (s *leaveService) Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error {
	request, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanDeleteLeave(actor, request.RequestedBy); err != nil {
		return err
	}
	if err := s.leaves.Delete(ctx, id); err != nil {
		return errors.Unexpected(err)
	}
	return nil
}

func (s *leaveService) find(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	request, err := s.leaves.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Leave request not found")
		}
		return nil, errors.Unexpected(err)
	}
	return request, nil
}

// requesterDepartment falls back to the empty department when the requester
// record is gone, which denies HOD access without hiding it from the admin.
func requesterDepartment(request *model.LeaveRequest) model.Department {
	if request.Requester == nil {
		return ""
	}
	return request.Requester.Department
}

func (s *leaveService) view(ctx context.Context, request *model.LeaveRequest) *LeaveView {
	view := &LeaveView{LeaveRequest: *request}
	if !request.ReviewedBy.IsZero() {
		reviewer := s.attribution.Resolve(ctx, request.ReviewedBy)
		view.ReviewedBy = &reviewer
	}
	return view
}
