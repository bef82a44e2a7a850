package entity

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type Service struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	BusinessID  string `gorm:"type:uuid;not null;index"` // References: businesses(id)
	Name        string `gorm:"not null"`
	Description *string
	Price       float64 `gorm:"not null"`
	DurationMin int     `gorm:"not null"`
	Available   bool    `gorm:"not null;index"`
	CreatedAt   int64   `gorm:"not null"`
	UpdatedAt   int64   `gorm:"not null"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
