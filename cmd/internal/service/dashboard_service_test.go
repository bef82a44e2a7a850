package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/sqlite/repository"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardService(t *testing.T) (*DefaultDashboardService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	svc := NewDashboardService(
		repository.NewBookingRepository(db),
		repository.NewServiceRepository(db),
		repository.NewPaymentRepository(db),
	)
	return svc, db
}

func TestGetStats(t *testing.T) {
	svc, db := newDashboardService(t)
	business, scope := seedBusiness(t, db, "Braids by Ama")
	other, _ := seedBusiness(t, db, "Kumasi Cuts")

	braids := seedService(t, db, business.ID, "Box braids", 150, true)
	seedService(t, db, business.ID, "Perm", 80, false)
	seedService(t, db, other.ID, "Fade", 40, true)

	// Unique customers: A, B, A counts as 2.
	seedBooking(t, db, business.ID, braids.ID, "A", entity.BookingStatusPending)
	seedBooking(t, db, business.ID, braids.ID, "B", entity.BookingStatusConfirmed)
	seedBooking(t, db, business.ID, braids.ID, "A", entity.BookingStatusCompleted)

	now := time.Now().UTC().UnixMilli()
	seedPayment(t, db, business.ID, 100, entity.PaymentStatusCompleted, now)
	seedPayment(t, db, business.ID, 50.56, entity.PaymentStatusCompleted, now)
	seedPayment(t, db, business.ID, 25, entity.PaymentStatusPending, now)
	seedPayment(t, db, other.ID, 999, entity.PaymentStatusCompleted, now)

	stats, apierr := svc.GetStats(scope)
	require.Nil(t, apierr)
	assert.Equal(t, int64(3), stats.TotalBookings)
	assert.InDelta(t, 150.56, stats.TotalRevenue, 0.001)
	assert.Equal(t, int64(1), stats.ActiveServices)
	assert.Equal(t, int64(2), stats.TotalCustomers)
}

func TestGetStats_NoBusinessIsAllZero(t *testing.T) {
	svc, _ := newDashboardService(t)

	stats, apierr := svc.GetStats(&middleware.Scope{UserID: uuid.NewString()})
	require.Nil(t, apierr)
	assert.Equal(t, int64(0), stats.TotalBookings)
	assert.Equal(t, 0.0, stats.TotalRevenue)
	assert.Equal(t, int64(0), stats.ActiveServices)
	assert.Equal(t, int64(0), stats.TotalCustomers)
}

func TestGetWeeklyRevenue(t *testing.T) {
	svc, db := newDashboardService(t)
	business, scope := seedBusiness(t, db, "Braids by Ama")

	// Freeze the clock mid-day so day math is unambiguous.
	now := time.Date(2026, 3, 14, 13, 45, 0, 0, time.UTC)
	svc.now = func() int64 { return now.UnixMilli() }

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	seedPayment(t, db, business.ID, 40, entity.PaymentStatusCompleted, today.Add(2*time.Hour).UnixMilli())
	seedPayment(t, db, business.ID, 10.10, entity.PaymentStatusCompleted, today.Add(5*time.Hour).UnixMilli())
	seedPayment(t, db, business.ID, 25, entity.PaymentStatusCompleted, today.AddDate(0, 0, -3).UnixMilli())
	seedPayment(t, db, business.ID, 60, entity.PaymentStatusCompleted, today.AddDate(0, 0, -6).UnixMilli())
	// Outside the window and wrong status: both invisible.
	seedPayment(t, db, business.ID, 500, entity.PaymentStatusCompleted, today.AddDate(0, 0, -7).UnixMilli())
	seedPayment(t, db, business.ID, 77, entity.PaymentStatusPending, today.UnixMilli())

	resp, apierr := svc.GetWeeklyRevenue(scope)
	require.Nil(t, apierr)
	require.Len(t, resp.Days, 7)

	assert.Equal(t, "2026-03-08", resp.Days[0].Date)
	assert.Equal(t, "2026-03-14", resp.Days[6].Date)
	for i := 1; i < 7; i++ {
		assert.Less(t, resp.Days[i-1].Date, resp.Days[i].Date)
	}

	assert.Equal(t, 60.0, resp.Days[0].Revenue)
	assert.Equal(t, 25.0, resp.Days[3].Revenue)
	assert.InDelta(t, 50.10, resp.Days[6].Revenue, 0.001)
	assert.Equal(t, 0.0, resp.Days[1].Revenue)

	var sum float64
	for _, day := range resp.Days {
		sum += day.Revenue
	}
	assert.InDelta(t, 135.10, sum, 0.001)

	for i, day := range resp.Days {
		wantName := time.Date(2026, 3, 8+i, 0, 0, 0, 0, time.UTC).Format("Mon")
		assert.Equal(t, wantName, day.Name)
	}
}

func TestGetWeeklyRevenue_NoBusinessStillSevenZeroDays(t *testing.T) {
	svc, _ := newDashboardService(t)

	resp, apierr := svc.GetWeeklyRevenue(&middleware.Scope{UserID: uuid.NewString()})
	require.Nil(t, apierr)
	require.Len(t, resp.Days, 7)
	for _, day := range resp.Days {
		assert.Equal(t, 0.0, day.Revenue)
	}
}
