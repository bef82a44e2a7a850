package repository

import (
	"errors"

	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"gorm.io/gorm"
)

type DefaultBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *DefaultBookingRepository {
	return &DefaultBookingRepository{db: db}
}

func (b *DefaultBookingRepository) FindByBusinessID(businessID string) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	err := b.db.Where("business_id = ?", businessID).
		Order("scheduled_start desc").
		Find(&bookings).Error
	return bookings, err
}

func (b *DefaultBookingRepository) FindByID(id, businessID string) (*entity.Booking, error) {
	var booking entity.Booking
	err := b.db.First(&booking, "id = ? AND business_id = ?", id, businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &booking, err
}

func (b *DefaultBookingRepository) CountByBusinessID(businessID string) (int64, error) {
	var count int64
	err := b.db.Model(&entity.Booking{}).
		Where("business_id = ?", businessID).
		Count(&count).Error
	return count, err
}

func (b *DefaultBookingRepository) CountDistinctCustomers(businessID string) (int64, error) {
	var count int64
	err := b.db.Model(&entity.Booking{}).
		Where("business_id = ?", businessID).
		Distinct("customer_name").
		Count(&count).Error
	return count, err
}

// UpdateStatus writes the status and updated_at fields only, guarded by the
// current status so a concurrent transition cannot slip through.
func (b *DefaultBookingRepository) UpdateStatus(id, businessID string, from, to entity.BookingStatus, updatedAt int64) (bool, error) {
	res := b.db.Model(&entity.Booking{}).
		Where("id = ?", id).
		Where("business_id = ?", businessID).
		Where("status = ?", from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (b *DefaultBookingRepository) Save(booking *entity.Booking) error {
	return b.db.Save(booking).Error
}
