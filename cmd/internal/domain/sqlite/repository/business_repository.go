package repository

import (
	"errors"

	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultBusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *DefaultBusinessRepository {
	return &DefaultBusinessRepository{db: db}
}

func (b *DefaultBusinessRepository) FindByID(id string) (*entity.Business, error) {
	var business entity.Business
	err := b.db.First(&business, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &business, err
}

func (b *DefaultBusinessRepository) FindByUserID(userID string) (*entity.Business, error) {
	var business entity.Business
	err := b.db.First(&business, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &business, err
}

// Upsert replaces the whole profile row keyed on user_id. Submitting the
// same form twice must yield one stored record.
func (b *DefaultBusinessRepository) Upsert(business *entity.Business) error {
	return b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(business).Error
}

func (b *DefaultBusinessRepository) Save(business *entity.Business) error {
	return b.db.Save(business).Error
}
