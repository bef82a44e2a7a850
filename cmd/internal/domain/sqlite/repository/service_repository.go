package repository

import (
	"errors"

	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"gorm.io/gorm"
)

type DefaultServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *DefaultServiceRepository {
	return &DefaultServiceRepository{db: db}
}

func (s *DefaultServiceRepository) FindByBusinessID(businessID string) ([]*entity.Service, error) {
	var services []*entity.Service
	err := s.db.Where("business_id = ?", businessID).
		Order("created_at asc").
		Find(&services).Error
	return services, err
}

func (s *DefaultServiceRepository) FindAvailableByBusinessID(businessID string) ([]*entity.Service, error) {
	var services []*entity.Service
	err := s.db.Where("business_id = ?", businessID).
		Where("available = ?", true).
		Order("created_at asc").
		Find(&services).Error
	return services, err
}

// FindByID is always scoped: a service belonging to another business is
// indistinguishable from a missing one.
func (s *DefaultServiceRepository) FindByID(id, businessID string) (*entity.Service, error) {
	var service entity.Service
	err := s.db.First(&service, "id = ? AND business_id = ?", id, businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (s *DefaultServiceRepository) CountAvailable(businessID string) (int64, error) {
	var count int64
	err := s.db.Model(&entity.Service{}).
		Where("business_id = ?", businessID).
		Where("available = ?", true).
		Count(&count).Error
	return count, err
}

func (s *DefaultServiceRepository) Save(service *entity.Service) error {
	return s.db.Save(service).Error
}

func (s *DefaultServiceRepository) Delete(service *entity.Service) error {
	return s.db.Delete(service).Error
}
