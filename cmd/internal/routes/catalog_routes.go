package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/service"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type CatalogService interface {
	GetServices(scope *middleware.Scope) ([]*service.ServiceResponse, apierror.ErrorResponse)
	CreateService(req *service.ServiceRequest, scope *middleware.Scope) (*service.ServiceResponse, apierror.ErrorResponse)
	UpdateService(id string, req *service.ServiceRequest, scope *middleware.Scope) (*service.ServiceResponse, apierror.ErrorResponse)
	DeleteService(id string, scope *middleware.Scope) apierror.ErrorResponse
}

type DefaultCatalogRoute struct {
	CatalogService CatalogService
}

func NewCatalogDefault(catalogService CatalogService) *DefaultCatalogRoute {
	return &DefaultCatalogRoute{CatalogService: catalogService}
}

func (r *DefaultCatalogRoute) GetServices(c echo.Context) error {
	scope := middleware.ScopeFromCtx(c)

	services, apierr := r.CatalogService.GetServices(scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"services": services}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultCatalogRoute) CreateService(c echo.Context) error {
	var req service.ServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	scope := middleware.ScopeFromCtx(c)

	svc, apierr := r.CatalogService.CreateService(&req, scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, svc)
}

func (r *DefaultCatalogRoute) UpdateService(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	var req service.ServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	scope := middleware.ScopeFromCtx(c)

	svc, apierr := r.CatalogService.UpdateService(id, &req, scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, svc)
}

func (r *DefaultCatalogRoute) DeleteService(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	scope := middleware.ScopeFromCtx(c)

	apierr := r.CatalogService.DeleteService(id, scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
