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

func newBookingService(t *testing.T) (*DefaultBookingService, *capturingPublisher, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	publisher := &capturingPublisher{}

	svc := NewBookingService(
		repository.NewBookingRepository(db),
		repository.NewServiceRepository(db),
		repository.NewBusinessRepository(db),
		publisher,
		testValidator(),
	)
	return svc, publisher, db
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	cases := []struct {
		from entity.BookingStatus
		to   entity.BookingStatus
	}{
		{entity.BookingStatusPending, entity.BookingStatusConfirmed},
		{entity.BookingStatusPending, entity.BookingStatusCancelled},
		{entity.BookingStatusConfirmed, entity.BookingStatusCompleted},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			svc, publisher, db := newBookingService(t)
			business, scope := seedBusiness(t, db, "Braids by Ama")
			cut := seedService(t, db, business.ID, "Box braids", 150, true)
			booking := seedBooking(t, db, business.ID, cut.ID, "Afia", tc.from)

			resp, apierr := svc.UpdateStatus(booking.ID, &StatusUpdateRequest{Status: string(tc.to)}, scope)
			require.Nil(t, apierr)
			assert.Equal(t, string(tc.to), resp.Status)

			var stored entity.Booking
			require.NoError(t, db.First(&stored, "id = ?", booking.ID).Error)
			assert.Equal(t, tc.to, stored.Status)

			// Nothing but status and updated_at may change.
			assert.Equal(t, booking.BusinessID, stored.BusinessID)
			assert.Equal(t, booking.ServiceID, stored.ServiceID)
			assert.Equal(t, booking.CustomerName, stored.CustomerName)
			assert.Equal(t, booking.CustomerPhone, stored.CustomerPhone)
			assert.Equal(t, booking.CustomerEmail, stored.CustomerEmail)
			assert.Equal(t, booking.ScheduledStart, stored.ScheduledStart)
			assert.Equal(t, booking.ScheduledEnd, stored.ScheduledEnd)
			assert.Equal(t, booking.PaymentStatus, stored.PaymentStatus)
			assert.Equal(t, booking.TotalAmount, stored.TotalAmount)
			assert.Equal(t, booking.CreatedAt, stored.CreatedAt)

			require.Len(t, publisher.published, 1)
			assert.Equal(t, booking.ID, publisher.published[0].BookingID)
			assert.Equal(t, string(tc.from), publisher.published[0].FromStatus)
			assert.Equal(t, string(tc.to), publisher.published[0].ToStatus)
		})
	}
}

func TestUpdateStatus_RejectedTransitions(t *testing.T) {
	cases := []struct {
		from entity.BookingStatus
		to   entity.BookingStatus
	}{
		{entity.BookingStatusCompleted, entity.BookingStatusPending},
		{entity.BookingStatusCancelled, entity.BookingStatusConfirmed},
		{entity.BookingStatusPending, entity.BookingStatusCompleted},
		{entity.BookingStatusConfirmed, entity.BookingStatusPending},
		{entity.BookingStatusConfirmed, entity.BookingStatusCancelled},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			svc, publisher, db := newBookingService(t)
			business, scope := seedBusiness(t, db, "Braids by Ama")
			cut := seedService(t, db, business.ID, "Box braids", 150, true)
			booking := seedBooking(t, db, business.ID, cut.ID, "Afia", tc.from)

			resp, apierr := svc.UpdateStatus(booking.ID, &StatusUpdateRequest{Status: string(tc.to)}, scope)
			assert.Nil(t, resp)
			require.NotNil(t, apierr)
			assert.Equal(t, 409, apierr.Code())

			var stored entity.Booking
			require.NoError(t, db.First(&stored, "id = ?", booking.ID).Error)
			assert.Equal(t, tc.from, stored.Status)
			assert.Empty(t, publisher.published)
		})
	}
}

func TestUpdateStatus_ForeignBusinessBookingIsInvisible(t *testing.T) {
	svc, _, db := newBookingService(t)
	mine, myScope := seedBusiness(t, db, "Braids by Ama")
	theirs, _ := seedBusiness(t, db, "Kumasi Cuts")
	_ = mine

	theirService := seedService(t, db, theirs.ID, "Fade", 40, true)
	theirBooking := seedBooking(t, db, theirs.ID, theirService.ID, "Kwame", entity.BookingStatusPending)

	resp, apierr := svc.UpdateStatus(theirBooking.ID, &StatusUpdateRequest{Status: "confirmed"}, myScope)
	assert.Nil(t, resp)
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())

	var stored entity.Booking
	require.NoError(t, db.First(&stored, "id = ?", theirBooking.ID).Error)
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
}

func TestGetBookings_ScopedWithServiceNames(t *testing.T) {
	svc, _, db := newBookingService(t)
	business, scope := seedBusiness(t, db, "Braids by Ama")
	other, _ := seedBusiness(t, db, "Kumasi Cuts")

	braids := seedService(t, db, business.ID, "Box braids", 150, true)
	foreign := seedService(t, db, other.ID, "Fade", 40, true)

	seedBooking(t, db, business.ID, braids.ID, "Afia", entity.BookingStatusPending)
	seedBooking(t, db, other.ID, foreign.ID, "Kwame", entity.BookingStatusPending)

	bookings, apierr := svc.GetBookings(scope)
	require.Nil(t, apierr)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Afia", bookings[0].CustomerName)
	assert.Equal(t, "Box braids", bookings[0].ServiceName)
}

func TestGetBookings_NoBusinessRendersEmpty(t *testing.T) {
	svc, _, _ := newBookingService(t)

	bookings, apierr := svc.GetBookings(&middleware.Scope{UserID: uuid.NewString()})
	require.Nil(t, apierr)
	assert.Empty(t, bookings)
}

func TestCreateOnlineBooking(t *testing.T) {
	svc, _, db := newBookingService(t)
	business, _ := seedBusiness(t, db, "Braids by Ama")
	braids := seedService(t, db, business.ID, "Box braids", 150, true)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	resp, apierr := svc.CreateOnlineBooking(business.ID, &PublicBookingRequest{
		ServiceID:      braids.ID,
		CustomerName:   "Afia",
		CustomerPhone:  "+233200000001",
		CustomerEmail:  "afia@example.com",
		ScheduledStart: start.Format(time.RFC3339),
	})
	require.Nil(t, apierr)
	assert.Equal(t, "pending", resp.Booking.Status)
	assert.Equal(t, 150.0, resp.Booking.TotalAmount)
	assert.Equal(t, "Box braids", resp.Booking.ServiceName)
	assert.Equal(t, "GHS", resp.Currency)

	var stored entity.Booking
	require.NoError(t, db.First(&stored, "id = ?", resp.Booking.ID).Error)
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
	assert.Equal(t, start.UnixMilli(), stored.ScheduledStart)
	assert.Equal(t, start.UnixMilli()+60*60_000, stored.ScheduledEnd)
}

func TestCreateOnlineBooking_PageDisabled(t *testing.T) {
	svc, _, db := newBookingService(t)
	business, _ := seedBusiness(t, db, "Braids by Ama")
	braids := seedService(t, db, business.ID, "Box braids", 150, true)

	require.NoError(t, db.Model(&entity.Business{}).
		Where("id = ?", business.ID).
		Update("booking_page_enabled", false).Error)

	_, apierr := svc.CreateOnlineBooking(business.ID, &PublicBookingRequest{
		ServiceID:      braids.ID,
		CustomerName:   "Afia",
		CustomerPhone:  "+233200000001",
		CustomerEmail:  "afia@example.com",
		ScheduledStart: time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())
}

func TestCreateOnlineBooking_UnavailableService(t *testing.T) {
	svc, _, db := newBookingService(t)
	business, _ := seedBusiness(t, db, "Braids by Ama")
	retired := seedService(t, db, business.ID, "Perm", 80, false)

	_, apierr := svc.CreateOnlineBooking(business.ID, &PublicBookingRequest{
		ServiceID:      retired.ID,
		CustomerName:   "Afia",
		CustomerPhone:  "+233200000001",
		CustomerEmail:  "afia@example.com",
		ScheduledStart: time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 409, apierr.Code())
}
