package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveRequest is a leave application. It stays pending until an authorized
// reviewer approves or rejects it; ReviewedBy and ReviewedAt stay empty
// until then.
type LeaveRequest struct {
	ID          uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	RequestedBy uuid.UUID   `json:"requestedBy" gorm:"type:char(36);not null;index"`
	Role        Role        `json:"role" gorm:"size:20;not null;index"`
	Reason      string      `json:"reason" gorm:"type:text;not null"`
	Status      LeaveStatus `json:"status" gorm:"size:20;not null;default:'pending';index"`
	ReviewedBy  Attribution `json:"-" gorm:"type:varchar(36)"`
	ReviewedAt  *time.Time  `json:"reviewedAt"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	Requester *User `json:"requester,omitempty" gorm:"foreignKey:RequestedBy"`
}

// BeforeCreate sets UUID before creating the record.
func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
