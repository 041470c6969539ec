package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/repository"
)

func newDashboardService(
	users *MockUserRepository,
	exams *MockExamRepository,
	assignments *MockAssignmentRepository,
	notifications *MockNotificationRepository,
	leaves *MockLeaveRepository,
	attendance *MockAttendanceRepository,
	results *MockResultRepository,
) DashboardService {
	return NewDashboardService(users, exams, assignments, notifications, leaves, attendance, results, nil)
}

func TestDashboardService_AdminShape(t *testing.T) {
	users := new(MockUserRepository)
	exams := new(MockExamRepository)
	notifications := new(MockNotificationRepository)
	leaves := new(MockLeaveRepository)

	users.On("Count", mock.Anything, repository.UserFilter{}).Return(int64(40), nil)
	users.On("Count", mock.Anything, repository.UserFilter{Status: model.StatusPending}).Return(int64(4), nil)
	users.On("Count", mock.Anything, repository.UserFilter{Role: model.RoleStudent}).Return(int64(30), nil)
	users.On("Count", mock.Anything, repository.UserFilter{Role: model.RoleTeacher}).Return(int64(8), nil)
	users.On("Count", mock.Anything, repository.UserFilter{Role: model.RoleHOD}).Return(int64(2), nil)
	exams.On("Count", mock.Anything, model.Department("")).Return(int64(5), nil)
	notifications.On("Count", mock.Anything, repository.NotificationAudience{}).Return(int64(7), nil)
	leaves.On("CountByStatus", mock.Anything, model.LeavePending).Return(int64(3), nil)

	payload, err := newDashboardService(users, exams, new(MockAssignmentRepository), notifications, leaves,
		new(MockAttendanceRepository), new(MockResultRepository)).Stats(context.Background(), identity.Admin())

	assert.NoError(t, err)

	var stats AdminDashboard
	assert.NoError(t, json.Unmarshal(payload, &stats))
	assert.Equal(t, int64(40), stats.TotalUsers)
	assert.Equal(t, int64(4), stats.PendingApprovals)
	assert.Equal(t, int64(3), stats.PendingLeaves)
}

func TestDashboardService_HODCountsOwnDepartmentLeaves(t *testing.T) {
	hodUser := &model.User{ID: uuid.New(), Role: model.RoleHOD, Department: model.DepartmentBCA}
	users := new(MockUserRepository)
	exams := new(MockExamRepository)
	assignments := new(MockAssignmentRepository)
	notifications := new(MockNotificationRepository)
	leaves := new(MockLeaveRepository)

	users.On("Count", mock.Anything, mock.AnythingOfType("repository.UserFilter")).Return(int64(10), nil)
	exams.On("Count", mock.Anything, model.DepartmentBCA).Return(int64(2), nil)
	assignments.On("Count", mock.Anything, model.DepartmentBCA).Return(int64(6), nil)
	notifications.On("Count", mock.Anything, mock.AnythingOfType("repository.NotificationAudience")).Return(int64(4), nil)

	ownID := uuid.New()
	otherID := uuid.New()
	leaves.On("List", mock.Anything, repository.LeaveFilter{Role: model.RoleTeacher, Status: model.LeavePending}).
		Return([]model.LeaveRequest{
			{RequestedBy: ownID, Role: model.RoleTeacher, Requester: &model.User{ID: ownID, Department: model.DepartmentBCA}},
			{RequestedBy: otherID, Role: model.RoleTeacher, Requester: &model.User{ID: otherID, Department: model.DepartmentBA}},
		}, nil)

	payload, err := newDashboardService(users, exams, assignments, notifications, leaves,
		new(MockAttendanceRepository), new(MockResultRepository)).Stats(context.Background(), identity.ForUser(hodUser))

	assert.NoError(t, err)

	var stats HODDashboard
	assert.NoError(t, json.Unmarshal(payload, &stats))
	assert.Equal(t, 1, stats.PendingTeacherLeaves, "cross-department teacher requests are excluded")
}

func TestDashboardService_StudentShape(t *testing.T) {
	student := &model.User{ID: uuid.New(), Role: model.RoleStudent, Department: model.DepartmentBCom}
	users := new(MockUserRepository)
	exams := new(MockExamRepository)
	assignments := new(MockAssignmentRepository)
	notifications := new(MockNotificationRepository)
	attendance := new(MockAttendanceRepository)
	results := new(MockResultRepository)

	attendance.On("List", mock.Anything, repository.AttendanceFilter{UserID: student.ID}).
		Return([]model.Attendance{
			{Status: model.AttendancePresent},
			{Status: model.AttendancePresent},
			{Status: model.AttendanceAbsent},
		}, nil)
	exams.On("Count", mock.Anything, model.DepartmentBCom).Return(int64(3), nil)
	assignments.On("Count", mock.Anything, model.DepartmentBCom).Return(int64(5), nil)
	notifications.On("Count", mock.Anything, repository.NotificationAudience{
		Roles:       []string{"student", "all"},
		Departments: []model.Department{model.DepartmentBCom, model.DepartmentAll},
	}).Return(int64(2), nil)
	results.On("List", mock.Anything, repository.ResultFilter{StudentID: student.ID}).
		Return([]model.Result{{Status: model.ResultPass}}, nil)

	payload, err := newDashboardService(users, exams, assignments, notifications, new(MockLeaveRepository),
		attendance, results).Stats(context.Background(), identity.ForUser(student))

	assert.NoError(t, err)

	var stats StudentDashboard
	assert.NoError(t, json.Unmarshal(payload, &stats))
	assert.Equal(t, 3, stats.Attendance.Total)
	assert.Equal(t, 66.67, stats.Attendance.Percentage)
	assert.Equal(t, 1, stats.Results)
}
