package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result links a student, an exam and a subject to marks and a derived
// pass/fail status. The (student, exam, subject) triple is unique; repeat
// submissions update in place.
type Result struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	StudentID uuid.UUID    `json:"studentId" gorm:"type:char(36);not null;uniqueIndex:idx_result_student_exam_subject"`
	ExamID    uuid.UUID    `json:"examId" gorm:"type:char(36);not null;uniqueIndex:idx_result_student_exam_subject"`
	Subject   string       `json:"subject" gorm:"size:255;not null;uniqueIndex:idx_result_student_exam_subject,length:191"`
	Marks     int          `json:"marks" gorm:"not null"`
	Status    ResultStatus `json:"status" gorm:"size:10;not null"`
	CreatedBy Attribution  `json:"-" gorm:"type:varchar(36);not null"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`

	Student *User `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Exam    *Exam `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// GradeFor derives pass/fail from marks. The boundary is PassingMarks itself.
func GradeFor(marks int) ResultStatus {
	if marks >= PassingMarks {
		return ResultPass
	}
	return ResultFail
}
