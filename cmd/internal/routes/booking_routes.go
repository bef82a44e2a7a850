package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/service"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type BookingService interface {
	GetBookings(scope *middleware.Scope) ([]*service.BookingResponse, apierror.ErrorResponse)
	UpdateStatus(id string, req *service.StatusUpdateRequest, scope *middleware.Scope) (*service.BookingResponse, apierror.ErrorResponse)
}

type DefaultBookingRoute struct {
	BookingService BookingService
}

func NewBookingDefault(bookingService BookingService) *DefaultBookingRoute {
	return &DefaultBookingRoute{BookingService: bookingService}
}

func (b *DefaultBookingRoute) GetBookings(c echo.Context) error {
	scope := middleware.ScopeFromCtx(c)

	bookings, apierr := b.BookingService.GetBookings(scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"bookings": bookings}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookingRoute) UpdateStatus(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	var req service.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	scope := middleware.ScopeFromCtx(c)

	booking, apierr := b.BookingService.UpdateStatus(id, &req, scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, booking)
}
