package entity

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type User struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	SubUUID       string `gorm:"not null;uniqueIndex"` // Cognito subject
	Username      string `gorm:"not null"`
	Email         string `gorm:"not null;uniqueIndex"`
	EmailVerified bool   `gorm:"not null"`
	CreatedAt     int64  `gorm:"not null"`
	UpdatedAt     int64  `gorm:"not null"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
