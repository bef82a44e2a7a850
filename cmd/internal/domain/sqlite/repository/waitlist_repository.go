package repository

import (
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"gorm.io/gorm"
)

type DefaultWaitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) *DefaultWaitlistRepository {
	return &DefaultWaitlistRepository{db: db}
}

func (w *DefaultWaitlistRepository) Save(entry *entity.WaitlistEntry) error {
	return w.db.Save(entry).Error
}
