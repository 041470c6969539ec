package service

import (
	"context"
	"encoding/json"
	"time"

	"cms/internal/cache"
	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/policy"
	"cms/internal/repository"
)

const (
	dashboardCachePrefix = "dashboard:"
	dashboardCacheTTL    = time.Minute
)

// AdminDashboard is the system-wide summary.
type AdminDashboard struct {
	TotalUsers         int64 `json:"totalUsers"`
	PendingApprovals   int64 `json:"pendingApprovals"`
	TotalStudents      int64 `json:"totalStudents"`
	TotalTeachers      int64 `json:"totalTeachers"`
	TotalHODs          int64 `json:"totalHods"`
	TotalExams         int64 `json:"totalExams"`
	TotalNotifications int64 `json:"totalNotifications"`
	PendingLeaves      int64 `json:"pendingLeaves"`
}

// HODDashboard summarizes one department.
type HODDashboard struct {
	Students             int64 `json:"students"`
	Teachers             int64 `json:"teachers"`
	Exams                int64 `json:"exams"`
	Assignments          int64 `json:"assignments"`
	Notifications        int64 `json:"notifications"`
	PendingTeacherLeaves int   `json:"pendingTeacherLeaves"`
}

// TeacherDashboard summarizes a teacher's department and own requests.
type TeacherDashboard struct {
	Students        int64 `json:"students"`
	Exams           int64 `json:"exams"`
	Assignments     int64 `json:"assignments"`
	Notifications   int64 `json:"notifications"`
	MyLeaveRequests int64 `json:"myLeaveRequests"`
}

// StudentDashboard summarizes a student's own standing.
type StudentDashboard struct {
	Attendance    AttendanceStats `json:"attendance"`
	Exams         int64           `json:"exams"`
	Assignments   int64           `json:"assignments"`
	Notifications int64           `json:"notifications"`
	Results       int             `json:"results"`
}

// DashboardService computes the role-shaped dashboard summary.
type DashboardService interface {
	Stats(ctx context.Context, actor identity.Identity) (json.RawMessage, error)
}

type dashboardService struct {
	users         repository.UserRepository
	exams         repository.ExamRepository
	assignments   repository.AssignmentRepository
	notifications repository.NotificationRepository
	leaves        repository.LeaveRepository
	attendance    repository.AttendanceRepository
	results       repository.ResultRepository
	cache         *cache.Client
}

// NewDashboardService builds a DashboardService over the repositories.
func NewDashboardService(
	users repository.UserRepository,
	exams repository.ExamRepository,
	assignments repository.AssignmentRepository,
	notifications repository.NotificationRepository,
	leaves repository.LeaveRepository,
	attendance repository.AttendanceRepository,
	results repository.ResultRepository,
	cacheClient *cache.Client,
) DashboardService {
	return &dashboardService{
		users:         users,
		exams:         exams,
		assignments:   assignments,
		notifications: notifications,
		leaves:        leaves,
		attendance:    attendance,
		results:       results,
		cache:         cacheClient,
	}
}

// Stats returns the summary shaped for the caller's role. Summaries are
// cached per subject for a minute; counts tolerate that staleness.
func (s *dashboardService) Stats(ctx context.Context, actor identity.Identity) (json.RawMessage, error) {
	key := dashboardCachePrefix + actor.SubjectID()
	if data, _ := s.cache.Get(ctx, key); data != nil {
		return json.RawMessage(data), nil
	}

	var (
		stats any
		err   error
	)
	switch actor.Role() {
	case model.RoleAdmin:
		stats, err = s.adminStats(ctx)
	case model.RoleHOD:
		stats, err = s.hodStats(ctx, actor)
	case model.RoleTeacher:
		stats, err = s.teacherStats(ctx, actor)
	default:
		stats, err = s.studentStats(ctx, actor)
	}
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	_ = s.cache.Set(ctx, key, payload, dashboardCacheTTL)
	return payload, nil
}

func (s *dashboardService) adminStats(ctx context.Context) (*AdminDashboard, error) {
	stats := &AdminDashboard{}
	counts := []struct {
		dst    *int64
		filter repository.UserFilter
	}{
		{&stats.TotalUsers, repository.UserFilter{}},
		{&stats.PendingApprovals, repository.UserFilter{Status: model.StatusPending}},
		{&stats.TotalStudents, repository.UserFilter{Role: model.RoleStudent}},
		{&stats.TotalTeachers, repository.UserFilter{Role: model.RoleTeacher}},
		{&stats.TotalHODs, repository.UserFilter{Role: model.RoleHOD}},
	}
	for _, c := range counts {
		n, err := s.users.Count(ctx, c.filter)
		if err != nil {
			return nil, errors.Unexpected(err)
		}
		*c.dst = n
	}

	var err error
	if stats.TotalExams, err = s.exams.Count(ctx, ""); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.TotalNotifications, err = s.notifications.Count(ctx, repository.NotificationAudience{}); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.PendingLeaves, err = s.leaves.CountByStatus(ctx, model.LeavePending); err != nil {
		return nil, errors.Unexpected(err)
	}
	return stats, nil
}

func (s *dashboardService) hodStats(ctx context.Context, actor identity.Identity) (*HODDashboard, error) {
	department := actor.Department()
	stats := &HODDashboard{}

	var err error
	if stats.Students, err = s.users.Count(ctx, repository.UserFilter{Role: model.RoleStudent, Status: model.StatusApproved, Department: department}); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.Teachers, err = s.users.Count(ctx, repository.UserFilter{Role: model.RoleTeacher, Status: model.StatusApproved, Department: department}); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.Exams, err = s.exams.Count(ctx, department); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.Assignments, err = s.assignments.Count(ctx, department); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.Notifications, err = s.notifications.Count(ctx, audienceFor(actor)); err != nil {
		return nil, errors.Unexpected(err)
	}

	// pending teacher leaves join through the requester's department
	pending, err := s.leaves.List(ctx, repository.LeaveFilter{Role: model.RoleTeacher, Status: model.LeavePending})
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	for i := range pending {
		if pending[i].Requester != nil && pending[i].Requester.Department == department {
			stats.PendingTeacherLeaves++
		}
	}
	return stats, nil
}

func (s *dashboardService) teacherStats(ctx context.Context, actor identity.Identity) (*TeacherDashboard, error) {
	department := actor.Department()
	stats := &TeacherDashboard{}

	var err error
	if stats.Students, err = s.users.Count(ctx, repository.UserFilter{Role: model.RoleStudent, Status: model.StatusApproved, Department: department}); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.Exams, err = s.exams.Count(ctx, department); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.Assignments, err = s.assignments.Count(ctx, department); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.Notifications, err = s.notifications.Count(ctx, audienceFor(actor)); err != nil {
		return nil, errors.Unexpected(err)
	}
	if user, ok := actor.User(); ok {
		if stats.MyLeaveRequests, err = s.leaves.CountByRequester(ctx, user.ID); err != nil {
			return nil, errors.Unexpected(err)
		}
	}
	return stats, nil
}

func (s *dashboardService) studentStats(ctx context.Context, actor identity.Identity) (*StudentDashboard, error) {
	user, ok := actor.User()
	if !ok {
		return nil, errors.Forbidden("Access denied")
	}
	department := actor.Department()
	stats := &StudentDashboard{}

	records, err := s.attendance.List(ctx, repository.AttendanceFilter{UserID: user.ID})
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	stats.Attendance = *computeAttendanceStats(records)

	if stats.Exams, err = s.exams.Count(ctx, department); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.Assignments, err = s.assignments.Count(ctx, department); err != nil {
		return nil, errors.Unexpected(err)
	}
	if stats.Notifications, err = s.notifications.Count(ctx, audienceFor(actor)); err != nil {
		return nil, errors.Unexpected(err)
	}

	results, err := s.results.List(ctx, repository.ResultFilter{StudentID: policy.OwnerScope(actor, user.ID)})
	if err != nil {
		return nil, errors.Unexpected(err)
	}
	stats.Results = len(results)
	return stats, nil
}
