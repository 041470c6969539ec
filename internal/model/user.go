package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered member of the college: student, teacher or HOD.
// The admin identity has no row here; it lives only in token claims.
type User struct {
	ID         uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	FullName   string        `json:"fullName" gorm:"size:255;not null"`
	Email      string        `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone      string        `json:"phone" gorm:"size:20;not null"`
	Department Department    `json:"department" gorm:"size:10;not null;index"`
	Role       Role          `json:"role" gorm:"size:20;not null;index"`
	Password   string        `json:"-" gorm:"size:255;not null"` // bcrypt hash, never serialized
	Status     AccountStatus `json:"status" gorm:"size:20;not null;default:'pending';index"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
