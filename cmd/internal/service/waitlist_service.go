package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type WaitlistRepository interface {
	Save(entry *entity.WaitlistEntry) error
}

type WaitlistRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"max=120"`
	BusinessType string `json:"business_type" validate:"max=80"`
}

type DefaultWaitlistService struct {
	WaitlistRepo WaitlistRepository
	Validate     *validator.Validate
}

func NewWaitlistService(waitlistRepo WaitlistRepository, validate *validator.Validate) *DefaultWaitlistService {
	return &DefaultWaitlistService{WaitlistRepo: waitlistRepo, Validate: validate}
}

// Join records a landing-page signup. Write-only: nothing in this app ever
// reads the waitlist back.
func (w *DefaultWaitlistService) Join(req *WaitlistRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := w.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	entry := &entity.WaitlistEntry{
		Email:        req.Email,
		Name:         utils.NilIfEmpty(req.Name),
		BusinessType: utils.NilIfEmpty(req.BusinessType),
		CreatedAt:    utils.NowUTC(),
	}

	err := w.WaitlistRepo.Save(entry)
	if err != nil {
		log.Errorf("failed to save waitlist entry: %v", err)
		return apierror.InternalServerError
	}
	return nil
}
