package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/integration/events"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type BookingRepository interface {
	FindByBusinessID(businessID string) ([]*entity.Booking, error)
	FindByID(id, businessID string) (*entity.Booking, error)
	CountByBusinessID(businessID string) (int64, error)
	CountDistinctCustomers(businessID string) (int64, error)
	UpdateStatus(id, businessID string, from, to entity.BookingStatus, updatedAt int64) (bool, error)
	Save(booking *entity.Booking) error
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,bookingstatus"`
}

type PublicBookingRequest struct {
	ServiceID      string `json:"service_id" validate:"required,uuid4"`
	CustomerName   string `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerPhone  string `json:"customer_phone" validate:"required,min=3,max=32"`
	CustomerEmail  string `json:"customer_email" validate:"required,email"`
	ScheduledStart string `json:"scheduled_start" validate:"required,iso8601"`
}

type BookingResponse struct {
	ID             string  `json:"id"`
	ServiceID      string  `json:"service_id"`
	ServiceName    string  `json:"service_name"`
	CustomerName   string  `json:"customer_name"`
	CustomerPhone  string  `json:"customer_phone"`
	CustomerEmail  string  `json:"customer_email"`
	ScheduledStart string  `json:"scheduled_start"`
	ScheduledEnd   string  `json:"scheduled_end"`
	Status         string  `json:"status"`
	PaymentStatus  string  `json:"payment_status"`
	TotalAmount    float64 `json:"total_amount"`
}

type PublicBookingResponse struct {
	Booking        *BookingResponse `json:"booking"`
	RequireDeposit bool             `json:"require_deposit"`
	DepositAmount  float64          `json:"deposit_amount"`
	DepositPercent float64          `json:"deposit_percent"`
	Currency       string           `json:"currency"`
}

type DefaultBookingService struct {
	BookingRepo  BookingRepository
	ServiceRepo  ServiceRepository
	BusinessRepo BusinessRepository
	Publisher    events.Publisher
	Validate     *validator.Validate
}

func NewBookingService(bookingRepo BookingRepository, serviceRepo ServiceRepository, businessRepo BusinessRepository, publisher events.Publisher, validate *validator.Validate) *DefaultBookingService {
	return &DefaultBookingService{
		BookingRepo:  bookingRepo,
		ServiceRepo:  serviceRepo,
		BusinessRepo: businessRepo,
		Publisher:    publisher,
		Validate:     validate,
	}
}

func (b *DefaultBookingService) GetBookings(scope *middleware.Scope) ([]*BookingResponse, apierror.ErrorResponse) {
	if scope.BusinessID == "" {
		return []*BookingResponse{}, nil
	}

	bookings, err := b.BookingRepo.FindByBusinessID(scope.BusinessID)
	if err != nil {
		log.Errorf("failed to fetch bookings for business %s: %v", scope.BusinessID, err)
		return nil, apierror.InternalServerError
	}

	names := b.serviceNames(scope.BusinessID)
	resp := make([]*BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp[i] = toBookingResponse(booking, names[booking.ServiceID])
	}
	return resp, nil
}

// UpdateStatus applies a lifecycle transition only when the transition table
// permits it, regardless of what the caller's UI offered. The write itself
// is guarded by the current status, so a stale caller cannot overwrite a
// concurrent transition; nothing but status and updated_at changes.
func (b *DefaultBookingService) UpdateStatus(id string, req *StatusUpdateRequest, scope *middleware.Scope) (*BookingResponse, apierror.ErrorResponse) {
	if scope.BusinessID == "" {
		return nil, apierror.NotFoundError
	}

	if err := b.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	target, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}

	booking, err := b.BookingRepo.FindByID(id, scope.BusinessID)
	if err != nil {
		log.Errorf("failed to fetch booking %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if booking == nil {
		return nil, apierror.NotFoundError
	}

	if !entity.CanTransition(booking.Status, target) {
		return nil, apierror.InvalidTransitionError
	}

	now := utils.NowUTC()
	applied, err := b.BookingRepo.UpdateStatus(id, scope.BusinessID, booking.Status, target, now)
	if err != nil {
		log.Errorf("failed to update booking %s status: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if !applied {
		// The row moved on under us; report the conflict, change nothing.
		return nil, apierror.InvalidTransitionError
	}

	b.Publisher.PublishBookingStatusChanged(context.Background(), &events.BookingStatusChanged{
		BookingID:  booking.ID,
		BusinessID: booking.BusinessID,
		FromStatus: string(booking.Status),
		ToStatus:   string(target),
		OccurredAt: utils.FormatEpoch(now),
	})

	booking.Status = target
	booking.UpdatedAt = now

	names := b.serviceNames(scope.BusinessID)
	return toBookingResponse(booking, names[booking.ServiceID]), nil
}

// CreateOnlineBooking is the public booking-page flow: a customer books an
// available service and the booking enters the lifecycle as pending.
func (b *DefaultBookingService) CreateOnlineBooking(businessID string, req *PublicBookingRequest) (*PublicBookingResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := b.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	business, err := b.BusinessRepo.FindByID(businessID)
	if err != nil {
		log.Errorf("failed to fetch business %s: %v", businessID, err)
		return nil, apierror.InternalServerError
	}
	if business == nil || !business.BookingPageEnabled {
		return nil, apierror.BookingPageDisabledError
	}

	svc, err := b.ServiceRepo.FindByID(req.ServiceID, businessID)
	if err != nil {
		log.Errorf("failed to fetch service %s: %v", req.ServiceID, err)
		return nil, apierror.InternalServerError
	}
	if svc == nil {
		return nil, apierror.NotFoundError
	}
	if !svc.Available {
		return nil, apierror.ServiceNotBookableError
	}

	start, err := utils.FromEpoch(req.ScheduledStart)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}
	end := start + int64(svc.DurationMin)*60_000

	now := utils.NowUTC()
	booking := &entity.Booking{
		BusinessID:     businessID,
		ServiceID:      svc.ID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		ScheduledStart: start,
		ScheduledEnd:   end,
		Status:         entity.BookingStatusPending,
		PaymentStatus:  string(entity.PaymentStatusPending),
		TotalAmount:    svc.Price,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = b.BookingRepo.Save(booking)
	if err != nil {
		log.Errorf("failed to save booking for business %s: %v", businessID, err)
		return nil, apierror.InternalServerError
	}

	return &PublicBookingResponse{
		Booking:        toBookingResponse(booking, svc.Name),
		RequireDeposit: business.RequireDeposit,
		DepositAmount:  business.DepositAmount,
		DepositPercent: business.DepositPercent,
		Currency:       business.Currency,
	}, nil
}

// serviceNames maps service ids to names for list rendering; a lookup
// failure degrades to unnamed services rather than failing the view.
func (b *DefaultBookingService) serviceNames(businessID string) map[string]string {
	services, err := b.ServiceRepo.FindByBusinessID(businessID)
	if err != nil {
		log.Errorf("failed to fetch service names for business %s: %v", businessID, err)
		return map[string]string{}
	}

	names := make(map[string]string, len(services))
	for _, svc := range services {
		names[svc.ID] = svc.Name
	}
	return names
}

func toBookingResponse(booking *entity.Booking, serviceName string) *BookingResponse {
	return &BookingResponse{
		ID:             booking.ID,
		ServiceID:      booking.ServiceID,
		ServiceName:    serviceName,
		CustomerName:   booking.CustomerName,
		CustomerPhone:  booking.CustomerPhone,
		CustomerEmail:  booking.CustomerEmail,
		ScheduledStart: utils.FormatEpoch(booking.ScheduledStart),
		ScheduledEnd:   utils.FormatEpoch(booking.ScheduledEnd),
		Status:         string(booking.Status),
		PaymentStatus:  booking.PaymentStatus,
		TotalAmount:    booking.TotalAmount,
	}
}
