package entity

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

// WaitlistEntry is write-only from the public landing page.
type WaitlistEntry struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"not null"`
	Name         *string
	BusinessType *string
	CreatedAt    int64 `gorm:"not null"`
}

func (w *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
