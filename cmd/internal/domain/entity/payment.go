package entity

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID         string        `gorm:"type:uuid;primaryKey"`
	BusinessID string        `gorm:"type:uuid;not null;index"` // References: businesses(id)
	BookingID  *string       `gorm:"type:uuid"`
	Amount     float64       `gorm:"not null"`
	Status     PaymentStatus `gorm:"type:varchar(32);not null;index"`

	// Provider-side event id, used to drop webhook replays.
	ProviderEventID *string `gorm:"uniqueIndex"`

	CreatedAt int64 `gorm:"not null;index"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
