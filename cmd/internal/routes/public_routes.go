package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/service"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type PublicBusinessService interface {
	GetBookingPage(businessID string) (*service.BookingPageResponse, apierror.ErrorResponse)
}

type PublicCatalogService interface {
	GetPublicServices(businessID string) ([]*service.ServiceResponse, apierror.ErrorResponse)
}

type PublicBookingService interface {
	CreateOnlineBooking(businessID string, req *service.PublicBookingRequest) (*service.PublicBookingResponse, apierror.ErrorResponse)
}

type WaitlistService interface {
	Join(req *service.WaitlistRequest) apierror.ErrorResponse
}

// DefaultPublicRoute serves everything a customer reaches without signing
// in: the landing-page waitlist and business booking pages.
type DefaultPublicRoute struct {
	BusinessService PublicBusinessService
	CatalogService  PublicCatalogService
	BookingService  PublicBookingService
	WaitlistService WaitlistService
}

func NewPublicDefault(businessService PublicBusinessService, catalogService PublicCatalogService, bookingService PublicBookingService, waitlistService WaitlistService) *DefaultPublicRoute {
	return &DefaultPublicRoute{
		BusinessService: businessService,
		CatalogService:  catalogService,
		BookingService:  bookingService,
		WaitlistService: waitlistService,
	}
}

func (p *DefaultPublicRoute) GetBookingPage(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	page, apierr := p.BusinessService.GetBookingPage(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, page)
}

func (p *DefaultPublicRoute) GetPublicServices(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	services, apierr := p.CatalogService.GetPublicServices(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"services": services}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPublicRoute) CreateBooking(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	var req service.PublicBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	booking, apierr := p.BookingService.CreateOnlineBooking(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (p *DefaultPublicRoute) JoinWaitlist(c echo.Context) error {
	var req service.WaitlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := p.WaitlistService.Join(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusCreated)
}
