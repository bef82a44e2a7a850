package entity

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type Business struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	UserID       string `gorm:"type:uuid;not null;uniqueIndex"` // References: users(id), one business per owner
	BusinessName string `gorm:"not null"`
	Description  *string
	Category     *string
	Phone        *string
	Email        *string
	Location     *string
	LogoURL      *string
	CoverURL     *string
	Currency     string `gorm:"not null"`
	Timezone     string `gorm:"not null"`

	BookingPageEnabled     bool `gorm:"not null"`
	BookingPageTitle       *string
	BookingPageDescription *string

	RequireDeposit bool    `gorm:"not null"`
	DepositAmount  float64 `gorm:"not null"`
	DepositPercent float64 `gorm:"not null"`

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
