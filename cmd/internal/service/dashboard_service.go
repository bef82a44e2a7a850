package service

import (
	"github.com/labstack/gommon/log"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/apierror"
)

type PaymentRepository interface {
	FindByBusinessID(businessID string) ([]*entity.Payment, error)
	FindCompletedSince(businessID string, sinceMillis int64) ([]*entity.Payment, error)
	SumCompletedSince(businessID string, sinceMillis int64) (float64, error)
	SumPending(businessID string) (float64, int64, error)
	Record(payment *entity.Payment) (bool, error)
}

type DashboardStatsResponse struct {
	TotalBookings  int64   `json:"total_bookings"`
	TotalRevenue   float64 `json:"total_revenue"`
	ActiveServices int64   `json:"active_services"`
	TotalCustomers int64   `json:"total_customers"`
}

type RevenueDay struct {
	Name    string  `json:"name"`
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type WeeklyRevenueResponse struct {
	Days []*RevenueDay `json:"days"`
}

type DefaultDashboardService struct {
	BookingRepo BookingRepository
	ServiceRepo ServiceRepository
	PaymentRepo PaymentRepository

	// now is swappable for deterministic aggregation tests.
	now func() int64
}

func NewDashboardService(bookingRepo BookingRepository, serviceRepo ServiceRepository, paymentRepo PaymentRepository) *DefaultDashboardService {
	return &DefaultDashboardService{
		BookingRepo: bookingRepo,
		ServiceRepo: serviceRepo,
		PaymentRepo: paymentRepo,
		now:         utils.NowUTC,
	}
}

// GetStats recomputes the four headline numbers by scanning the scoped rows.
// Each read is independent; any one failing defaults its slice to zero, so
// the combined view is not an atomic snapshot.
func (d *DefaultDashboardService) GetStats(scope *middleware.Scope) (*DashboardStatsResponse, apierror.ErrorResponse) {
	resp := &DashboardStatsResponse{}
	if scope.BusinessID == "" {
		return resp, nil
	}

	bookings, err := d.BookingRepo.CountByBusinessID(scope.BusinessID)
	if err != nil {
		log.Errorf("failed to count bookings for business %s: %v", scope.BusinessID, err)
	} else {
		resp.TotalBookings = bookings
	}

	revenue, err := d.PaymentRepo.SumCompletedSince(scope.BusinessID, 0)
	if err != nil {
		log.Errorf("failed to sum revenue for business %s: %v", scope.BusinessID, err)
	} else {
		resp.TotalRevenue = utils.Round2(revenue)
	}

	services, err := d.ServiceRepo.CountAvailable(scope.BusinessID)
	if err != nil {
		log.Errorf("failed to count services for business %s: %v", scope.BusinessID, err)
	} else {
		resp.ActiveServices = services
	}

	customers, err := d.BookingRepo.CountDistinctCustomers(scope.BusinessID)
	if err != nil {
		log.Errorf("failed to count customers for business %s: %v", scope.BusinessID, err)
	} else {
		resp.TotalCustomers = customers
	}

	return resp, nil
}

// GetWeeklyRevenue buckets completed payments by UTC calendar day over the
// trailing 7 days including today. Always exactly 7 entries, chronological,
// zero-filled, rounded to 2 decimals.
func (d *DefaultDashboardService) GetWeeklyRevenue(scope *middleware.Scope) (*WeeklyRevenueResponse, apierror.ErrorResponse) {
	today := utils.DayStartUTC(d.now())
	windowStart := today.AddDate(0, 0, -6)

	byDay := make(map[string]float64, 7)
	days := make([]*RevenueDay, 7)
	for i := 0; i < 7; i++ {
		date := windowStart.AddDate(0, 0, i)
		key := date.Format("2006-01-02")
		byDay[key] = 0
		days[i] = &RevenueDay{
			Name: date.Format("Mon"),
			Date: key,
		}
	}

	if scope.BusinessID != "" {
		payments, err := d.PaymentRepo.FindCompletedSince(scope.BusinessID, windowStart.UnixMilli())
		if err != nil {
			log.Errorf("failed to fetch weekly payments for business %s: %v", scope.BusinessID, err)
		} else {
			for _, payment := range payments {
				key := utils.DayStartUTC(payment.CreatedAt).Format("2006-01-02")
				if _, ok := byDay[key]; ok {
					byDay[key] += payment.Amount
				}
			}
		}
	}

	for _, day := range days {
		day.Revenue = utils.Round2(byDay[day.Date])
	}
	return &WeeklyRevenueResponse{Days: days}, nil
}
