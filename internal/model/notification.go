package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an announcement targeted at a role and a department.
// Either target may be the wildcard "all".
type Notification struct {
	ID          uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string      `json:"title" gorm:"size:255;not null"`
	Description string      `json:"description" gorm:"type:text;not null"`
	Media       string      `json:"media,omitempty" gorm:"size:512"`
	TargetRole  string      `json:"targetRole" gorm:"size:20;not null;index"`
	Department  Department  `json:"department" gorm:"size:10;not null;index"`
	CreatedBy   Attribution `json:"-" gorm:"type:varchar(36);not null"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// ValidTargetRole reports whether r is a user role or the wildcard.
func ValidTargetRole(r string) bool {
	return r == "all" || ValidUserRole(Role(r))
}
