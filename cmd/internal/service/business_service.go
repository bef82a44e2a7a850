package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	s3storage "github.com/luckys-lnz/book-and-payGH/cmd/internal/integration/aws/s3"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type BusinessRepository interface {
	FindByID(id string) (*entity.Business, error)
	FindByUserID(userID string) (*entity.Business, error)
	Upsert(business *entity.Business) error
	Save(business *entity.Business) error
}

// BusinessRequest carries the whole profile form. Deposit numbers arrive as
// strings and fall back to 0 when unparsable.
type BusinessRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=2,max=120"`
	Description  string `json:"description" validate:"max=2000"`
	Category     string `json:"category" validate:"max=80"`
	Phone        string `json:"phone" validate:"max=32"`
	Email        string `json:"email" validate:"omitempty,email"`
	Location     string `json:"location" validate:"max=200"`
	Currency     string `json:"currency" validate:"max=8"`
	Timezone     string `json:"timezone" validate:"max=64"`

	BookingPageEnabled     bool   `json:"booking_page_enabled"`
	BookingPageTitle       string `json:"booking_page_title" validate:"max=120"`
	BookingPageDescription string `json:"booking_page_description" validate:"max=2000"`

	RequireDeposit bool   `json:"require_deposit"`
	DepositAmount  string `json:"deposit_amount"`
	DepositPercent string `json:"deposit_percent"`
}

type BusinessResponse struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Location     string `json:"location"`
	LogoURL      string `json:"logo_url"`
	CoverURL     string `json:"cover_url"`
	Currency     string `json:"currency"`
	Timezone     string `json:"timezone"`

	BookingPageEnabled     bool   `json:"booking_page_enabled"`
	BookingPageTitle       string `json:"booking_page_title"`
	BookingPageDescription string `json:"booking_page_description"`

	RequireDeposit bool    `json:"require_deposit"`
	DepositAmount  float64 `json:"deposit_amount"`
	DepositPercent float64 `json:"deposit_percent"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type AssetUploadResponse struct {
	URL string `json:"url"`
}

type DefaultBusinessService struct {
	BusinessRepo BusinessRepository
	Storage      s3storage.StorageInterface
	Validate     *validator.Validate
}

func NewBusinessService(businessRepo BusinessRepository, storage s3storage.StorageInterface, validate *validator.Validate) *DefaultBusinessService {
	return &DefaultBusinessService{BusinessRepo: businessRepo, Storage: storage, Validate: validate}
}

func (b *DefaultBusinessService) GetBusiness(scope *middleware.Scope) (*BusinessResponse, apierror.ErrorResponse) {
	if scope.BusinessID == "" {
		return nil, apierror.BusinessNotFoundError
	}

	business, err := b.BusinessRepo.FindByID(scope.BusinessID)
	if err != nil {
		log.Errorf("failed to fetch business %s: %v", scope.BusinessID, err)
		return nil, apierror.InternalServerError
	}
	if business == nil {
		return nil, apierror.BusinessNotFoundError
	}
	return toBusinessResponse(business), nil
}

// UpsertBusiness replaces the whole profile record for the caller's account:
// insert when absent, full overwrite when present. Empty optional fields are
// stored as NULL, never as empty strings.
func (b *DefaultBusinessService) UpsertBusiness(req *BusinessRequest, scope *middleware.Scope) (*BusinessResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := b.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "GHS"
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = "Africa/Accra"
	}

	// Uploaded asset URLs live on the stored row, not the form; keep them
	// across overwrites.
	var logoURL, coverURL *string
	createdAt := utils.NowUTC()
	existing, err := b.BusinessRepo.FindByUserID(scope.UserID)
	if err != nil {
		log.Errorf("failed to fetch business for user %s: %v", scope.UserID, err)
		return nil, apierror.InternalServerError
	}
	if existing != nil {
		logoURL = existing.LogoURL
		coverURL = existing.CoverURL
		createdAt = existing.CreatedAt
	}

	business := &entity.Business{
		UserID:       scope.UserID,
		BusinessName: req.BusinessName,
		Description:  utils.NilIfEmpty(req.Description),
		Category:     utils.NilIfEmpty(req.Category),
		Phone:        utils.NilIfEmpty(req.Phone),
		Email:        utils.NilIfEmpty(req.Email),
		Location:     utils.NilIfEmpty(req.Location),
		LogoURL:      logoURL,
		CoverURL:     coverURL,
		Currency:     currency,
		Timezone:     timezone,

		BookingPageEnabled:     req.BookingPageEnabled,
		BookingPageTitle:       utils.NilIfEmpty(req.BookingPageTitle),
		BookingPageDescription: utils.NilIfEmpty(req.BookingPageDescription),

		RequireDeposit: req.RequireDeposit,
		DepositAmount:  parseAmount(req.DepositAmount),
		DepositPercent: parseAmount(req.DepositPercent),

		CreatedAt: createdAt,
		UpdatedAt: utils.NowUTC(),
	}

	err = b.BusinessRepo.Upsert(business)
	if err != nil {
		log.Errorf("failed to upsert business for user %s: %v", scope.UserID, err)
		return nil, apierror.InternalServerError
	}

	saved, err := b.BusinessRepo.FindByUserID(scope.UserID)
	if err != nil || saved == nil {
		log.Errorf("failed to reload business for user %s: %v", scope.UserID, err)
		return nil, apierror.InternalServerError
	}
	return toBusinessResponse(saved), nil
}

// UploadAsset stores a logo or cover image under a collision-free path and
// records its public URL on the profile.
func (b *DefaultBusinessService) UploadAsset(ctx context.Context, kind, filename, contentType string, body io.Reader, scope *middleware.Scope) (*AssetUploadResponse, apierror.ErrorResponse) {
	if kind != "logo" && kind != "cover" {
		return nil, apierror.NewInvalidParamTypeError("kind", "logo|cover")
	}
	if scope.BusinessID == "" {
		return nil, apierror.BusinessNotFoundError
	}

	business, err := b.BusinessRepo.FindByID(scope.BusinessID)
	if err != nil {
		log.Errorf("failed to fetch business %s: %v", scope.BusinessID, err)
		return nil, apierror.InternalServerError
	}
	if business == nil {
		return nil, apierror.BusinessNotFoundError
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("business-%ss/%s%s", kind, uuid.NewString(), ext)

	err = b.Storage.Upload(ctx, path, body, contentType)
	if err != nil {
		log.Errorf("failed to upload %s for business %s: %v", kind, scope.BusinessID, err)
		return nil, apierror.InternalServerError
	}

	url := b.Storage.PublicURL(path)
	if kind == "logo" {
		business.LogoURL = &url
	} else {
		business.CoverURL = &url
	}
	business.UpdatedAt = utils.NowUTC()

	err = b.BusinessRepo.Save(business)
	if err != nil {
		log.Errorf("failed to store %s url for business %s: %v", kind, scope.BusinessID, err)
		return nil, apierror.InternalServerError
	}
	return &AssetUploadResponse{URL: url}, nil
}

// BookingPageResponse is the public face of a business, shown to customers
// on its booking page.
type BookingPageResponse struct {
	ID             string  `json:"id"`
	BusinessName   string  `json:"business_name"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Location       string  `json:"location"`
	LogoURL        string  `json:"logo_url"`
	CoverURL       string  `json:"cover_url"`
	Currency       string  `json:"currency"`
	Timezone       string  `json:"timezone"`
	PageTitle      string  `json:"page_title"`
	PageDesc       string  `json:"page_description"`
	RequireDeposit bool    `json:"require_deposit"`
	DepositAmount  float64 `json:"deposit_amount"`
	DepositPercent float64 `json:"deposit_percent"`
}

// GetBookingPage serves the public booking page; businesses that disabled
// theirs are indistinguishable from missing ones.
func (b *DefaultBusinessService) GetBookingPage(businessID string) (*BookingPageResponse, apierror.ErrorResponse) {
	business, err := b.BusinessRepo.FindByID(businessID)
	if err != nil {
		log.Errorf("failed to fetch business %s: %v", businessID, err)
		return nil, apierror.InternalServerError
	}
	if business == nil || !business.BookingPageEnabled {
		return nil, apierror.BookingPageDisabledError
	}

	title := utils.Deref(business.BookingPageTitle)
	if title == "" {
		title = business.BusinessName
	}

	return &BookingPageResponse{
		ID:             business.ID,
		BusinessName:   business.BusinessName,
		Description:    utils.Deref(business.Description),
		Category:       utils.Deref(business.Category),
		Location:       utils.Deref(business.Location),
		LogoURL:        utils.Deref(business.LogoURL),
		CoverURL:       utils.Deref(business.CoverURL),
		Currency:       business.Currency,
		Timezone:       business.Timezone,
		PageTitle:      title,
		PageDesc:       utils.Deref(business.BookingPageDescription),
		RequireDeposit: business.RequireDeposit,
		DepositAmount:  business.DepositAmount,
		DepositPercent: business.DepositPercent,
	}, nil
}

func parseAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func toBusinessResponse(business *entity.Business) *BusinessResponse {
	return &BusinessResponse{
		ID:           business.ID,
		BusinessName: business.BusinessName,
		Description:  utils.Deref(business.Description),
		Category:     utils.Deref(business.Category),
		Phone:        utils.Deref(business.Phone),
		Email:        utils.Deref(business.Email),
		Location:     utils.Deref(business.Location),
		LogoURL:      utils.Deref(business.LogoURL),
		CoverURL:     utils.Deref(business.CoverURL),
		Currency:     business.Currency,
		Timezone:     business.Timezone,

		BookingPageEnabled:     business.BookingPageEnabled,
		BookingPageTitle:       utils.Deref(business.BookingPageTitle),
		BookingPageDescription: utils.Deref(business.BookingPageDescription),

		RequireDeposit: business.RequireDeposit,
		DepositAmount:  business.DepositAmount,
		DepositPercent: business.DepositPercent,

		CreatedAt: utils.FormatEpoch(business.CreatedAt),
		UpdatedAt: utils.FormatEpoch(business.UpdatedAt),
	}
}
