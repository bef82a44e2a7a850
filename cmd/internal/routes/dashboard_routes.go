package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/service"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type DashboardService interface {
	GetStats(scope *middleware.Scope) (*service.DashboardStatsResponse, apierror.ErrorResponse)
	GetWeeklyRevenue(scope *middleware.Scope) (*service.WeeklyRevenueResponse, apierror.ErrorResponse)
}

type DefaultDashboardRoute struct {
	DashboardService DashboardService
}

func NewDashboardDefault(dashboardService DashboardService) *DefaultDashboardRoute {
	return &DefaultDashboardRoute{DashboardService: dashboardService}
}

func (d *DefaultDashboardRoute) GetStats(c echo.Context) error {
	scope := middleware.ScopeFromCtx(c)

	stats, apierr := d.DashboardService.GetStats(scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, stats)
}

func (d *DefaultDashboardRoute) GetWeeklyRevenue(c echo.Context) error {
	scope := middleware.ScopeFromCtx(c)

	revenue, apierr := d.DashboardService.GetWeeklyRevenue(scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, revenue)
}
