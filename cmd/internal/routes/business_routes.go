package routes

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/service"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type BusinessService interface {
	GetBusiness(scope *middleware.Scope) (*service.BusinessResponse, apierror.ErrorResponse)
	UpsertBusiness(req *service.BusinessRequest, scope *middleware.Scope) (*service.BusinessResponse, apierror.ErrorResponse)
	UploadAsset(ctx context.Context, kind, filename, contentType string, body io.Reader, scope *middleware.Scope) (*service.AssetUploadResponse, apierror.ErrorResponse)
}

type DefaultBusinessRoute struct {
	BusinessService BusinessService
}

func NewBusinessDefault(businessService BusinessService) *DefaultBusinessRoute {
	return &DefaultBusinessRoute{BusinessService: businessService}
}

func (b *DefaultBusinessRoute) GetBusiness(c echo.Context) error {
	scope := middleware.ScopeFromCtx(c)

	business, apierr := b.BusinessService.GetBusiness(scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, business)
}

func (b *DefaultBusinessRoute) UpsertBusiness(c echo.Context) error {
	var req service.BusinessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	scope := middleware.ScopeFromCtx(c)

	business, apierr := b.BusinessService.UpsertBusiness(&req, scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, business)
}

// UploadAsset accepts a multipart "file" field for the logo or cover slot.
func (b *DefaultBusinessRoute) UploadAsset(c echo.Context) error {
	kind := c.Param("kind")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("file"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}
	defer file.Close()

	scope := middleware.ScopeFromCtx(c)
	contentType := fileHeader.Header.Get(echo.HeaderContentType)

	resp, apierr := b.BusinessService.UploadAsset(c.Request().Context(), kind, fileHeader.Filename, contentType, file, scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
