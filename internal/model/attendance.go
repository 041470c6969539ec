package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance marks one user present or absent for one calendar day.
// The (user, date) pair is unique: re-marking the same day updates in place,
// and the index is the authoritative defense against concurrent inserts.
type Attendance struct {
	ID         uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID        `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_attendance_user_date"`
	Role       Role             `json:"role" gorm:"size:20;not null"`
	Date       time.Time        `json:"date" gorm:"not null;uniqueIndex:idx_attendance_user_date"`
	Status     AttendanceStatus `json:"status" gorm:"size:10;not null"`
	MarkedBy   Attribution      `json:"-" gorm:"type:varchar(36);not null"`
	Department Department       `json:"department" gorm:"size:10;not null;index"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// DayOf zeroes the time-of-day so attendance dates compare per calendar day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
