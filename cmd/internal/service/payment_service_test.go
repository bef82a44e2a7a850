package service

import (
	"testing"
	"time"

	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/sqlite/repository"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newPaymentService(t *testing.T) (*DefaultPaymentService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	return NewPaymentService(repository.NewPaymentRepository(db)), db
}

func TestGetSummary_MonthlyAndTotalRevenue(t *testing.T) {
	svc, db := newPaymentService(t)
	business, scope := seedBusiness(t, db, "Accra Cuts")

	now := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)
	svc.now = func() int64 { return now.UnixMilli() }

	thisMonth := time.Date(2026, 4, 5, 12, 0, 0, 0, time.UTC).UnixMilli()
	lastMonth := time.Date(2026, 3, 28, 12, 0, 0, 0, time.UTC).UnixMilli()

	seedPayment(t, db, business.ID, 100, entity.PaymentStatusCompleted, thisMonth)
	seedPayment(t, db, business.ID, 50, entity.PaymentStatusCompleted, thisMonth)
	seedPayment(t, db, business.ID, 30, entity.PaymentStatusCompleted, lastMonth)

	resp, apierr := svc.GetSummary(scope)

	assert.Nil(t, apierr)
	assert.InDelta(t, 150, resp.MonthlyRevenue, 0.001)
	assert.InDelta(t, 180, resp.TotalRevenue, 0.001)
	assert.InDelta(t, 0, resp.PendingAmount, 0.001)
	assert.Equal(t, int64(0), resp.PendingCount)
}

func TestGetSummary_PendingBacklog(t *testing.T) {
	svc, db := newPaymentService(t)
	business, scope := seedBusiness(t, db, "Accra Cuts")

	now := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)
	svc.now = func() int64 { return now.UnixMilli() }

	seedPayment(t, db, business.ID, 25.50, entity.PaymentStatusPending, now.UnixMilli())
	seedPayment(t, db, business.ID, 10, entity.PaymentStatusPending, now.UnixMilli())
	seedPayment(t, db, business.ID, 99, entity.PaymentStatusFailed, now.UnixMilli())

	resp, apierr := svc.GetSummary(scope)

	assert.Nil(t, apierr)
	assert.InDelta(t, 35.50, resp.PendingAmount, 0.001)
	assert.Equal(t, int64(2), resp.PendingCount)
	assert.InDelta(t, 0, resp.TotalRevenue, 0.001)
}

func TestGetSummary_ExcludesOtherBusinesses(t *testing.T) {
	svc, db := newPaymentService(t)
	business, scope := seedBusiness(t, db, "Accra Cuts")
	other, _ := seedBusiness(t, db, "Kumasi Spa")

	now := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)
	svc.now = func() int64 { return now.UnixMilli() }

	seedPayment(t, db, business.ID, 40, entity.PaymentStatusCompleted, now.UnixMilli())
	seedPayment(t, db, other.ID, 500, entity.PaymentStatusCompleted, now.UnixMilli())

	resp, apierr := svc.GetSummary(scope)

	assert.Nil(t, apierr)
	assert.InDelta(t, 40, resp.TotalRevenue, 0.001)
	assert.InDelta(t, 40, resp.MonthlyRevenue, 0.001)
}

func TestGetSummary_NoBusinessIsAllZero(t *testing.T) {
	svc, _ := newPaymentService(t)

	resp, apierr := svc.GetSummary(&middleware.Scope{UserID: "u", Sub: "s"})

	assert.Nil(t, apierr)
	assert.Zero(t, resp.TotalRevenue)
	assert.Zero(t, resp.MonthlyRevenue)
	assert.Zero(t, resp.PendingAmount)
	assert.Zero(t, resp.PendingCount)
}

func TestGetPayments_ScopedNewestFirst(t *testing.T) {
	svc, db := newPaymentService(t)
	business, scope := seedBusiness(t, db, "Accra Cuts")
	other, _ := seedBusiness(t, db, "Kumasi Spa")

	older := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC).UnixMilli()
	newer := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC).UnixMilli()

	first := seedPayment(t, db, business.ID, 20, entity.PaymentStatusCompleted, older)
	second := seedPayment(t, db, business.ID, 30, entity.PaymentStatusPending, newer)
	seedPayment(t, db, other.ID, 75, entity.PaymentStatusCompleted, newer)

	resp, apierr := svc.GetPayments(scope)

	assert.Nil(t, apierr)
	assert.Len(t, resp, 2)
	assert.Equal(t, second.ID, resp[0].ID)
	assert.Equal(t, first.ID, resp[1].ID)
	assert.Equal(t, string(entity.PaymentStatusPending), resp[0].Status)
	assert.Equal(t, "2026-04-01T08:00:00Z", resp[1].CreatedAt)
}

func TestGetPayments_NoBusinessRendersEmpty(t *testing.T) {
	svc, _ := newPaymentService(t)

	resp, apierr := svc.GetPayments(&middleware.Scope{UserID: "u", Sub: "s"})

	assert.Nil(t, apierr)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}

func TestRecordProviderEvent_IdempotentOnReplay(t *testing.T) {
	svc, db := newPaymentService(t)
	business, _ := seedBusiness(t, db, "Accra Cuts")

	evt := &ProviderPaymentEvent{
		EventID:    "evt_123",
		BusinessID: business.ID,
		Amount:     120,
		Status:     entity.PaymentStatusCompleted,
		OccurredAt: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC).UnixMilli(),
	}

	assert.Nil(t, svc.RecordProviderEvent(evt))
	assert.Nil(t, svc.RecordProviderEvent(evt))

	var count int64
	if err := db.Model(&entity.Payment{}).Where("business_id = ?", business.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count payments: %v", err)
	}
	assert.Equal(t, int64(1), count)

	var stored entity.Payment
	if err := db.Where("provider_event_id = ?", "evt_123").First(&stored).Error; err != nil {
		t.Fatalf("failed to load payment: %v", err)
	}
	assert.Equal(t, business.ID, stored.BusinessID)
	assert.InDelta(t, 120, stored.Amount, 0.001)
	assert.Equal(t, entity.PaymentStatusCompleted, stored.Status)
	assert.Equal(t, evt.OccurredAt, stored.CreatedAt)
}

func TestRecordProviderEvent_RejectsIncompletePayload(t *testing.T) {
	svc, _ := newPaymentService(t)

	apierr := svc.RecordProviderEvent(&ProviderPaymentEvent{EventID: "evt_1"})
	assert.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())

	apierr = svc.RecordProviderEvent(&ProviderPaymentEvent{BusinessID: "b"})
	assert.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}
