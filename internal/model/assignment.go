package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment is homework posted for a department.
type Assignment struct {
	ID         uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Department Department  `json:"department" gorm:"size:10;not null;index"`
	Subject    string      `json:"subject" gorm:"size:255;not null"`
	Questions  string      `json:"questions" gorm:"type:text;not null"`
	DueDate    time.Time   `json:"dueDate" gorm:"not null"`
	Marks      int         `json:"marks" gorm:"not null"`
	CreatedBy  Attribution `json:"-" gorm:"type:varchar(36);not null"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
