package entity

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

// allowedTransitions is authoritative: completed and cancelled are terminal.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingStatusPending:   {BookingStatusConfirmed: true, BookingStatusCancelled: true},
	BookingStatusConfirmed: {BookingStatusCompleted: true},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

func CanTransition(from, to BookingStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

type Booking struct {
	ID             string        `gorm:"type:uuid;primaryKey"`
	BusinessID     string        `gorm:"type:uuid;not null;index"` // References: businesses(id)
	ServiceID      string        `gorm:"type:uuid;not null"`       // References: services(id)
	CustomerName   string        `gorm:"not null"`
	CustomerPhone  string        `gorm:"not null"`
	CustomerEmail  string        `gorm:"not null"`
	ScheduledStart int64         `gorm:"not null;index"`
	ScheduledEnd   int64         `gorm:"not null"`
	Status         BookingStatus `gorm:"type:varchar(32);not null;index"`
	PaymentStatus  string        `gorm:"type:varchar(32);not null"`
	TotalAmount    float64       `gorm:"not null"`
	CreatedAt      int64         `gorm:"not null"`
	UpdatedAt      int64         `gorm:"not null"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
