package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cms/internal/errors"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/repository"
)

func newResultService(results *MockResultRepository, users *MockUserRepository, exams *MockExamRepository) ResultService {
	return NewResultService(results, users, exams, NewAttributionResolver(users, nil))
}

func TestGradeFor_Boundary(t *testing.T) {
	assert.Equal(t, model.ResultFail, model.GradeFor(0))
	assert.Equal(t, model.ResultFail, model.GradeFor(39))
	assert.Equal(t, model.ResultPass, model.GradeFor(40))
	assert.Equal(t, model.ResultPass, model.GradeFor(100))
}

func TestResultService_Add(t *testing.T) {
	studentID := uuid.New()
	examID := uuid.New()
	student := &model.User{ID: studentID, Role: model.RoleStudent, Department: model.DepartmentBCA}
	exam := &model.Exam{ID: examID, Department: model.DepartmentBCA, ExamName: "Midterm"}
	admin := identity.Admin()

	t.Run("new result derives its status from marks", func(t *testing.T) {
		results := new(MockResultRepository)
		users := new(MockUserRepository)
		exams := new(MockExamRepository)
		users.On("FindByID", mock.Anything, studentID).Return(student, nil)
		exams.On("FindByID", mock.Anything, examID).Return(exam, nil)
		results.On("FindByNaturalKey", mock.Anything, studentID, examID, "Maths").Return(nil, gorm.ErrRecordNotFound)
		results.On("Create", mock.Anything, mock.AnythingOfType("*model.Result")).Return(nil)

		view, created, err := newResultService(results, users, exams).Add(
			context.Background(), admin, studentID, examID, "Maths", 39)

		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, model.ResultFail, view.Status)
		assert.Equal(t, model.AdminAttributionView, view.CreatedBy)
	})

	t.Run("re-submitting the same subject updates marks and status", func(t *testing.T) {
		results := new(MockResultRepository)
		users := new(MockUserRepository)
		exams := new(MockExamRepository)
		users.On("FindByID", mock.Anything, studentID).Return(student, nil)
		exams.On("FindByID", mock.Anything, examID).Return(exam, nil)
		existing := &model.Result{
			StudentID: studentID,
			ExamID:    examID,
			Subject:   "Maths",
			Marks:     35,
			Status:    model.ResultFail,
		}
		results.On("FindByNaturalKey", mock.Anything, studentID, examID, "Maths").Return(existing, nil)
		results.On("Save", mock.Anything, existing).Return(nil)

		view, created, err := newResultService(results, users, exams).Add(
			context.Background(), admin, studentID, examID, "Maths", 40)

		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, 40, view.Marks)
		assert.Equal(t, model.ResultPass, view.Status)
		results.AssertExpectations(t)
	})

	t.Run("a non-student subject is reported as student not found", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, studentID).Return(
			&model.User{ID: studentID, Role: model.RoleTeacher, Department: model.DepartmentBCA}, nil)

		_, _, err := newResultService(new(MockResultRepository), users, new(MockExamRepository)).Add(
			context.Background(), admin, studentID, examID, "Maths", 50)

		assert.Error(t, err)
		assert.Equal(t, "Student not found", err.Error())
	})

	t.Run("cross-department exam is refused", func(t *testing.T) {
		users := new(MockUserRepository)
		exams := new(MockExamRepository)
		users.On("FindByID", mock.Anything, studentID).Return(student, nil)
		exams.On("FindByID", mock.Anything, examID).Return(exam, nil)
		outsider := identity.ForUser(&model.User{ID: uuid.New(), Role: model.RoleTeacher, Department: model.DepartmentBA})

		_, _, err := newResultService(new(MockResultRepository), users, exams).Add(
			context.Background(), outsider, studentID, examID, "Maths", 50)

		assert.Error(t, err)
		assert.Equal(t, "You can only add results for exams in your department", err.Error())
		assert.Equal(t, errors.KindForbidden, errors.AsError(err).Kind)
	})

	t.Run("marks out of range are rejected", func(t *testing.T) {
		svc := newResultService(new(MockResultRepository), new(MockUserRepository), new(MockExamRepository))

		_, _, err := svc.Add(context.Background(), admin, studentID, examID, "Maths", 101)
		assert.Error(t, err)
		assert.Equal(t, errors.KindValidation, errors.AsError(err).Kind)

		_, _, err = svc.Add(context.Background(), admin, studentID, examID, "Maths", -1)
		assert.Error(t, err)
	})
}

func TestResultService_Delete(t *testing.T) {
	resultID := uuid.New()
	stored := &model.Result{
		ID:      resultID,
		Student: &model.User{Role: model.RoleStudent, Department: model.DepartmentBCA},
	}

	t.Run("teacher may not delete", func(t *testing.T) {
		teacher := identity.ForUser(&model.User{ID: uuid.New(), Role: model.RoleTeacher, Department: model.DepartmentBCA})

		err := newResultService(new(MockResultRepository), new(MockUserRepository), new(MockExamRepository)).Delete(
			context.Background(), teacher, resultID)

		assert.Error(t, err)
		assert.Equal(t, "Access denied. Only HOD and Admin can delete results", err.Error())
	})

	t.Run("hod deletes within own department", func(t *testing.T) {
		results := new(MockResultRepository)
		results.On("FindByID", mock.Anything, resultID).Return(stored, nil)
		results.On("Delete", mock.Anything, resultID).Return(nil)
		hod := identity.ForUser(&model.User{ID: uuid.New(), Role: model.RoleHOD, Department: model.DepartmentBCA})

		err := newResultService(results, new(MockUserRepository), new(MockExamRepository)).Delete(
			context.Background(), hod, resultID)

		assert.NoError(t, err)
		results.AssertExpectations(t)
	})

	t.Run("hod may not delete another department's result", func(t *testing.T) {
		results := new(MockResultRepository)
		results.On("FindByID", mock.Anything, resultID).Return(stored, nil)
		hod := identity.ForUser(&model.User{ID: uuid.New(), Role: model.RoleHOD, Department: model.DepartmentBA})

		err := newResultService(results, new(MockUserRepository), new(MockExamRepository)).Delete(
			context.Background(), hod, resultID)

		assert.Error(t, err)
		assert.Equal(t, "You can only delete results for your department", err.Error())
	})
}

func TestResultService_List_StudentPinnedToSelf(t *testing.T) {
	studentID := uuid.New()
	student := &model.User{ID: studentID, Role: model.RoleStudent, Department: model.DepartmentBCA}

	results := new(MockResultRepository)
	results.On("List", mock.Anything, repository.ResultFilter{StudentID: studentID}).Return([]model.Result{
		{StudentID: studentID, Subject: "Maths", Status: model.ResultPass, Student: student},
	}, nil)

	views, err := newResultService(results, new(MockUserRepository), new(MockExamRepository)).List(
		context.Background(), identity.ForUser(student), ResultQuery{StudentID: uuid.New()})

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, studentID, views[0].StudentID)
}
