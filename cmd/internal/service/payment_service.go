package service

import (
	"github.com/labstack/gommon/log"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type PaymentResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id,omitempty"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

type PaymentsSummaryResponse struct {
	TotalRevenue   float64 `json:"total_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	PendingAmount  float64 `json:"pending_amount"`
	PendingCount   int64   `json:"pending_count"`
}

// ProviderPaymentEvent is a payment-provider webhook event after signature
// verification, reduced to what the ledger stores.
type ProviderPaymentEvent struct {
	EventID    string
	BusinessID string
	BookingID  string
	Amount     float64
	Status     entity.PaymentStatus
	OccurredAt int64
}

type DefaultPaymentService struct {
	PaymentRepo PaymentRepository

	now func() int64
}

func NewPaymentService(paymentRepo PaymentRepository) *DefaultPaymentService {
	return &DefaultPaymentService{PaymentRepo: paymentRepo, now: utils.NowUTC}
}

func (p *DefaultPaymentService) GetPayments(scope *middleware.Scope) ([]*PaymentResponse, apierror.ErrorResponse) {
	if scope.BusinessID == "" {
		return []*PaymentResponse{}, nil
	}

	payments, err := p.PaymentRepo.FindByBusinessID(scope.BusinessID)
	if err != nil {
		log.Errorf("failed to fetch payments for business %s: %v", scope.BusinessID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*PaymentResponse, len(payments))
	for i, payment := range payments {
		resp[i] = toPaymentResponse(payment)
	}
	return resp, nil
}

// GetSummary reports the all-time completed sum, the UTC month-to-date
// completed sum, and the pending backlog. The three reads are independent;
// a failing one degrades to zero.
func (p *DefaultPaymentService) GetSummary(scope *middleware.Scope) (*PaymentsSummaryResponse, apierror.ErrorResponse) {
	resp := &PaymentsSummaryResponse{}
	if scope.BusinessID == "" {
		return resp, nil
	}

	total, err := p.PaymentRepo.SumCompletedSince(scope.BusinessID, 0)
	if err != nil {
		log.Errorf("failed to sum total revenue for business %s: %v", scope.BusinessID, err)
	} else {
		resp.TotalRevenue = utils.Round2(total)
	}

	monthStart := utils.MonthStartUTC(p.now())
	monthly, err := p.PaymentRepo.SumCompletedSince(scope.BusinessID, monthStart.UnixMilli())
	if err != nil {
		log.Errorf("failed to sum monthly revenue for business %s: %v", scope.BusinessID, err)
	} else {
		resp.MonthlyRevenue = utils.Round2(monthly)
	}

	pendingSum, pendingCount, err := p.PaymentRepo.SumPending(scope.BusinessID)
	if err != nil {
		log.Errorf("failed to sum pending payments for business %s: %v", scope.BusinessID, err)
	} else {
		resp.PendingAmount = utils.Round2(pendingSum)
		resp.PendingCount = pendingCount
	}

	return resp, nil
}

// RecordProviderEvent writes one payment row per provider event id; replays
// are acknowledged without a second row.
func (p *DefaultPaymentService) RecordProviderEvent(evt *ProviderPaymentEvent) apierror.ErrorResponse {
	if evt.EventID == "" || evt.BusinessID == "" {
		return apierror.InvalidWebhookPayloadError
	}

	occurredAt := evt.OccurredAt
	if occurredAt == 0 {
		occurredAt = p.now()
	}

	payment := &entity.Payment{
		BusinessID:      evt.BusinessID,
		BookingID:       utils.NilIfEmpty(evt.BookingID),
		Amount:          evt.Amount,
		Status:          evt.Status,
		ProviderEventID: &evt.EventID,
		CreatedAt:       occurredAt,
	}

	inserted, err := p.PaymentRepo.Record(payment)
	if err != nil {
		log.Errorf("failed to record payment event %s: %v", evt.EventID, err)
		return apierror.InternalServerError
	}
	if !inserted {
		log.Infof("payment event %s already recorded, ignoring replay", evt.EventID)
	}
	return nil
}

func toPaymentResponse(payment *entity.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        payment.ID,
		BookingID: utils.Deref(payment.BookingID),
		Amount:    payment.Amount,
		Status:    string(payment.Status),
		CreatedAt: utils.FormatEpoch(payment.CreatedAt),
	}
}
