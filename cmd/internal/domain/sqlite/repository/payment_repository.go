package repository

import (
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultPaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{db: db}
}

func (p *DefaultPaymentRepository) FindByBusinessID(businessID string) ([]*entity.Payment, error) {
	var payments []*entity.Payment
	err := p.db.Where("business_id = ?", businessID).
		Order("created_at desc").
		Find(&payments).Error
	return payments, err
}

// FindCompletedSince returns completed payments created at or after the
// given instant, oldest first. A zero bound means all time.
func (p *DefaultPaymentRepository) FindCompletedSince(businessID string, sinceMillis int64) ([]*entity.Payment, error) {
	var payments []*entity.Payment
	q := p.db.Where("business_id = ?", businessID).
		Where("status = ?", entity.PaymentStatusCompleted)
	if sinceMillis > 0 {
		q = q.Where("created_at >= ?", sinceMillis)
	}
	err := q.Order("created_at asc").Find(&payments).Error
	return payments, err
}

func (p *DefaultPaymentRepository) SumCompletedSince(businessID string, sinceMillis int64) (float64, error) {
	var total float64
	q := p.db.Model(&entity.Payment{}).
		Where("business_id = ?", businessID).
		Where("status = ?", entity.PaymentStatusCompleted)
	if sinceMillis > 0 {
		q = q.Where("created_at >= ?", sinceMillis)
	}
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (p *DefaultPaymentRepository) SumPending(businessID string) (float64, int64, error) {
	var pending []*entity.Payment
	err := p.db.Where("business_id = ?", businessID).
		Where("status = ?", entity.PaymentStatusPending).
		Find(&pending).Error
	if err != nil {
		return 0, 0, err
	}

	var sum float64
	for _, payment := range pending {
		sum += payment.Amount
	}
	return sum, int64(len(pending)), nil
}

// Record inserts a provider event exactly once; a replayed event id is a
// no-op rather than an error.
func (p *DefaultPaymentRepository) Record(payment *entity.Payment) (bool, error) {
	res := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider_event_id"}},
		DoNothing: true,
	}).Create(payment)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
