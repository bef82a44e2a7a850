package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type ServiceRepository interface {
	FindByBusinessID(businessID string) ([]*entity.Service, error)
	FindAvailableByBusinessID(businessID string) ([]*entity.Service, error)
	FindByID(id, businessID string) (*entity.Service, error)
	CountAvailable(businessID string) (int64, error)
	Save(service *entity.Service) error
	Delete(service *entity.Service) error
}

type ServiceRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"min=0"`
	DurationMin int     `json:"duration_min" validate:"min=0,max=1440"`
	Available   bool    `json:"available"`
}

type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
	Available   bool    `json:"available"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type DefaultCatalogService struct {
	ServiceRepo ServiceRepository
	Validate    *validator.Validate
}

func NewCatalogService(serviceRepo ServiceRepository, validate *validator.Validate) *DefaultCatalogService {
	return &DefaultCatalogService{ServiceRepo: serviceRepo, Validate: validate}
}

func (s *DefaultCatalogService) GetServices(scope *middleware.Scope) ([]*ServiceResponse, apierror.ErrorResponse) {
	if scope.BusinessID == "" {
		return []*ServiceResponse{}, nil
	}

	services, err := s.ServiceRepo.FindByBusinessID(scope.BusinessID)
	if err != nil {
		log.Errorf("failed to fetch services for business %s: %v", scope.BusinessID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*ServiceResponse, len(services))
	for i, svc := range services {
		resp[i] = toServiceResponse(svc)
	}
	return resp, nil
}

// GetPublicServices lists what customers can book: available services only.
func (s *DefaultCatalogService) GetPublicServices(businessID string) ([]*ServiceResponse, apierror.ErrorResponse) {
	services, err := s.ServiceRepo.FindAvailableByBusinessID(businessID)
	if err != nil {
		log.Errorf("failed to fetch public services for business %s: %v", businessID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*ServiceResponse, len(services))
	for i, svc := range services {
		resp[i] = toServiceResponse(svc)
	}
	return resp, nil
}

func (s *DefaultCatalogService) CreateService(req *ServiceRequest, scope *middleware.Scope) (*ServiceResponse, apierror.ErrorResponse) {
	if scope.BusinessID == "" {
		return nil, apierror.BusinessNotFoundError
	}

	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	now := utils.NowUTC()
	svc := &entity.Service{
		BusinessID:  scope.BusinessID,
		Name:        req.Name,
		Description: utils.NilIfEmpty(req.Description),
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Available:   req.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.ServiceRepo.Save(svc)
	if err != nil {
		log.Errorf("failed to create service for business %s: %v", scope.BusinessID, err)
		return nil, apierror.InternalServerError
	}
	return toServiceResponse(svc), nil
}

func (s *DefaultCatalogService) UpdateService(id string, req *ServiceRequest, scope *middleware.Scope) (*ServiceResponse, apierror.ErrorResponse) {
	if scope.BusinessID == "" {
		return nil, apierror.NotFoundError
	}

	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	svc, err := s.ServiceRepo.FindByID(id, scope.BusinessID)
	if err != nil {
		log.Errorf("failed to fetch service %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if svc == nil {
		return nil, apierror.NotFoundError
	}

	svc.Name = req.Name
	svc.Description = utils.NilIfEmpty(req.Description)
	svc.Price = req.Price
	svc.DurationMin = req.DurationMin
	svc.Available = req.Available
	svc.UpdatedAt = utils.NowUTC()

	err = s.ServiceRepo.Save(svc)
	if err != nil {
		log.Errorf("failed to update service %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toServiceResponse(svc), nil
}

func (s *DefaultCatalogService) DeleteService(id string, scope *middleware.Scope) apierror.ErrorResponse {
	if scope.BusinessID == "" {
		return apierror.NotFoundError
	}

	svc, err := s.ServiceRepo.FindByID(id, scope.BusinessID)
	if err != nil {
		log.Errorf("failed to fetch service %s: %v", id, err)
		return apierror.InternalServerError
	}
	if svc == nil {
		return apierror.NotFoundError
	}

	err = s.ServiceRepo.Delete(svc)
	if err != nil {
		log.Errorf("failed to delete service %s: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func toServiceResponse(svc *entity.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: utils.Deref(svc.Description),
		Price:       svc.Price,
		DurationMin: svc.DurationMin,
		Available:   svc.Available,
		CreatedAt:   utils.FormatEpoch(svc.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(svc.UpdatedAt),
	}
}
