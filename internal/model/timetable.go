package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimetableEntry is one subject slot for a department, role and weekday.
// Entries upsert on the (department, role, day, timeSlot) natural key.
type TimetableEntry struct {
	ID         uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Department Department  `json:"department" gorm:"size:10;not null;index"`
	Role       Role        `json:"role" gorm:"size:20;not null;index"`
	Day        string      `json:"day" gorm:"size:10;not null"`
	Subject    string      `json:"subject" gorm:"size:255;not null"`
	TimeSlot   string      `json:"timeSlot" gorm:"size:50;not null"`
	CreatedBy  Attribution `json:"-" gorm:"type:varchar(36);not null"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (t *TimetableEntry) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
