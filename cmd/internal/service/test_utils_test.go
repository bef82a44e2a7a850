package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/integration/events"
	sqlitedb "github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/sqlite"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/validators"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := sqlitedb.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
	_ = validate.RegisterValidation("bookingstatus", validators.IsBookingStatus)
	return validate
}

func seedBusiness(t *testing.T, db *gorm.DB, name string) (*entity.Business, *middleware.Scope) {
	t.Helper()

	now := utils.NowUTC()
	user := &entity.User{
		SubUUID:       name + "-sub",
		Username:      name + " owner",
		Email:         name + "@example.com",
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	business := &entity.Business{
		UserID:             user.ID,
		BusinessName:       name,
		Currency:           "GHS",
		Timezone:           "Africa/Accra",
		BookingPageEnabled: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := db.Create(business).Error; err != nil {
		t.Fatalf("failed to seed business: %v", err)
	}

	return business, &middleware.Scope{
		UserID:     user.ID,
		Sub:        user.SubUUID,
		BusinessID: business.ID,
	}
}

func seedService(t *testing.T, db *gorm.DB, businessID, name string, price float64, available bool) *entity.Service {
	t.Helper()

	now := utils.NowUTC()
	svc := &entity.Service{
		BusinessID:  businessID,
		Name:        name,
		Price:       price,
		DurationMin: 60,
		Available:   available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	return svc
}

func seedBooking(t *testing.T, db *gorm.DB, businessID, serviceID, customer string, status entity.BookingStatus) *entity.Booking {
	t.Helper()

	now := utils.NowUTC()
	booking := &entity.Booking{
		BusinessID:     businessID,
		ServiceID:      serviceID,
		CustomerName:   customer,
		CustomerPhone:  "+233200000000",
		CustomerEmail:  customer + "@example.com",
		ScheduledStart: now + 3_600_000,
		ScheduledEnd:   now + 7_200_000,
		Status:         status,
		PaymentStatus:  string(entity.PaymentStatusPending),
		TotalAmount:    100,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return booking
}

func seedPayment(t *testing.T, db *gorm.DB, businessID string, amount float64, status entity.PaymentStatus, createdAt int64) *entity.Payment {
	t.Helper()

	payment := &entity.Payment{
		BusinessID: businessID,
		Amount:     amount,
		Status:     status,
		CreatedAt:  createdAt,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to seed payment: %v", err)
	}
	return payment
}

// capturingPublisher records booking events emitted during a test.
type capturingPublisher struct {
	published []*events.BookingStatusChanged
}

func (p *capturingPublisher) PublishBookingStatusChanged(_ context.Context, evt *events.BookingStatusChanged) {
	p.published = append(p.published, evt)
}

func (p *capturingPublisher) Close() error { return nil }
