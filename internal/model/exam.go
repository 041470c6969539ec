package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exam is a scheduled examination with per-subject sessions and an overall
// schedule window. Department may be the wildcard "all" on admin-authored
// exams.
type Exam struct {
	ID         uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Department Department  `json:"department" gorm:"size:10;not null;index"`
	ExamName   string      `json:"examName" gorm:"size:255;not null"`
	StartDate  time.Time   `json:"startDate" gorm:"not null"`
	EndDate    time.Time   `json:"endDate" gorm:"not null"`
	CreatedBy  Attribution `json:"-" gorm:"type:varchar(36);not null"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`

	Subjects []ExamSubject `json:"subjects" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
}

// ExamSubject is one subject session inside an exam.
type ExamSubject struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ExamID      uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	SubjectName string    `json:"subjectName" gorm:"size:255;not null"`
	Date        time.Time `json:"date" gorm:"not null"`
	Time        string    `json:"time" gorm:"size:50;not null"`
	Venue       string    `json:"venue" gorm:"size:255"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// BeforeCreate sets UUID before creating the record.
func (s *ExamSubject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
