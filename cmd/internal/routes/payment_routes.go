package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/service"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

type PaymentService interface {
	GetPayments(scope *middleware.Scope) ([]*service.PaymentResponse, apierror.ErrorResponse)
	GetSummary(scope *middleware.Scope) (*service.PaymentsSummaryResponse, apierror.ErrorResponse)
	RecordProviderEvent(evt *service.ProviderPaymentEvent) apierror.ErrorResponse
}

type DefaultPaymentRoute struct {
	PaymentService PaymentService
	WebhookSecret  string
}

func NewPaymentDefault(paymentService PaymentService) *DefaultPaymentRoute {
	return &DefaultPaymentRoute{
		PaymentService: paymentService,
		WebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}
}

func (p *DefaultPaymentRoute) GetPayments(c echo.Context) error {
	scope := middleware.ScopeFromCtx(c)

	payments, apierr := p.PaymentService.GetPayments(scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"payments": payments}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPaymentRoute) GetSummary(c echo.Context) error {
	scope := middleware.ScopeFromCtx(c)

	summary, apierr := p.PaymentService.GetSummary(scope)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, summary)
}

// HandleWebhook ingests provider payment events. There is no JWT here; the
// Stripe signature is the authentication.
func (p *DefaultPaymentRoute) HandleWebhook(c echo.Context) error {
	if strings.TrimSpace(p.WebhookSecret) == "" {
		return c.NoContent(http.StatusServiceUnavailable)
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")
	if strings.TrimSpace(sigHeader) == "" {
		return c.JSON(http.StatusBadRequest, apierror.InvalidWebhookPayloadError)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.InvalidWebhookPayloadError)
	}

	evt, err := webhook.ConstructEvent(body, sigHeader, p.WebhookSecret)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.InvalidWebhookPayloadError)
	}

	status, relevant := paymentStatusForEvent(evt.Type)
	if !relevant {
		return c.JSON(http.StatusOK, echo.Map{"status": "ignored"})
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(evt.Data.Raw, &intent); err != nil {
		log.Errorf("invalid payment intent payload on event %s: %v", evt.ID, err)
		return c.JSON(http.StatusBadRequest, apierror.InvalidWebhookPayloadError)
	}

	businessID := strings.TrimSpace(intent.Metadata["business_id"])
	if businessID == "" {
		// Not one of ours. Acknowledge so the provider stops retrying.
		log.Warnf("payment event %s carries no business_id metadata", evt.ID)
		return c.JSON(http.StatusOK, echo.Map{"status": "ignored"})
	}

	apierr := p.PaymentService.RecordProviderEvent(&service.ProviderPaymentEvent{
		EventID:    evt.ID,
		BusinessID: businessID,
		BookingID:  strings.TrimSpace(intent.Metadata["booking_id"]),
		Amount:     float64(intent.Amount) / 100,
		Status:     status,
		OccurredAt: evt.Created * 1000,
	})
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "recorded"})
}

func paymentStatusForEvent(eventType stripe.EventType) (entity.PaymentStatus, bool) {
	switch eventType {
	case "payment_intent.succeeded":
		return entity.PaymentStatusCompleted, true
	case "payment_intent.processing", "payment_intent.created":
		return entity.PaymentStatusPending, true
	case "payment_intent.payment_failed":
		return entity.PaymentStatusFailed, true
	default:
		return "", false
	}
}
