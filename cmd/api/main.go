package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/sqlite"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/sqlite/repository"
	cognitoclient "github.com/luckys-lnz/book-and-payGH/cmd/internal/integration/aws/cognito"
	s3storage "github.com/luckys-lnz/book-and-payGH/cmd/internal/integration/aws/s3"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/integration/events"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/middleware"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/routes"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/service"
	"github.com/luckys-lnz/book-and-payGH/cmd/internal/utils/validators"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	err := godotenv.Load()
	if err != nil {
		log.Fatal("failed to load .env file", err)
	}

	db, err := sqlite.Init()
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	cogClient, err := cognitoclient.InitCognitoClient()
	if err != nil {
		log.Fatal("failed to initialize cognito client", err)
	}

	storage, err := s3storage.InitStorage()
	if err != nil {
		log.Fatal("failed to initialize object storage", err)
	}

	publisher := events.InitPublisher()
	defer publisher.Close()

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, validate, cogClient)
	businessService := service.NewBusinessService(businessRepo, storage, validate)
	catalogService := service.NewCatalogService(serviceRepo, validate)
	bookingService := service.NewBookingService(bookingRepo, serviceRepo, businessRepo, publisher, validate)
	dashboardService := service.NewDashboardService(bookingRepo, serviceRepo, paymentRepo)
	paymentService := service.NewPaymentService(paymentRepo)
	waitlistService := service.NewWaitlistService(waitlistRepo, validate)

	// Getting routes
	userRoutes := routes.NewUserDefault(userService)
	businessRoutes := routes.NewBusinessDefault(businessService)
	catalogRoutes := routes.NewCatalogDefault(catalogService)
	bookingRoutes := routes.NewBookingDefault(bookingService)
	dashboardRoutes := routes.NewDashboardDefault(dashboardService)
	paymentRoutes := routes.NewPaymentDefault(paymentService)
	publicRoutes := routes.NewPublicDefault(businessService, catalogService, bookingService, waitlistService)

	jwks := cognitoclient.NewJWKSClient(jwksURL(), 15*time.Minute)
	auth := middleware.NewAuthenticator(jwks, userRepo, businessRepo)

	e := echo.New()
	e.Use(echomiddleware.CORS())

	// Auth
	e.POST("/api/users", userRoutes.CreateUser)
	e.POST("/api/users/login", userRoutes.CreateLogin)
	e.POST("/api/users/verify", userRoutes.VerifySignup)

	// Public booking pages and landing
	e.POST("/api/waitlist", publicRoutes.JoinWaitlist)
	e.GET("/api/public/businesses/:id", publicRoutes.GetBookingPage)
	e.GET("/api/public/businesses/:id/services", publicRoutes.GetPublicServices)
	e.POST("/api/public/businesses/:id/bookings", publicRoutes.CreateBooking)

	// Payment provider events
	e.POST("/api/webhooks/payments", paymentRoutes.HandleWebhook)

	// Everything below is scoped to the signed-in owner's business
	api := e.Group("/api", auth.RequireScope)

	api.GET("/users/@me", userRoutes.GetMe)

	api.GET("/business", businessRoutes.GetBusiness)
	api.PUT("/business", businessRoutes.UpsertBusiness)
	api.POST("/business/assets/:kind", businessRoutes.UploadAsset)

	api.GET("/services", catalogRoutes.GetServices)
	api.POST("/services", catalogRoutes.CreateService)
	api.PUT("/services/:id", catalogRoutes.UpdateService)
	api.DELETE("/services/:id", catalogRoutes.DeleteService)

	api.GET("/bookings", bookingRoutes.GetBookings)
	api.PATCH("/bookings/:id/status", bookingRoutes.UpdateStatus)

	api.GET("/dashboard/stats", dashboardRoutes.GetStats)
	api.GET("/dashboard/revenue", dashboardRoutes.GetWeeklyRevenue)

	api.GET("/payments", paymentRoutes.GetPayments)
	api.GET("/payments/summary", paymentRoutes.GetSummary)

	err = e.Start(":6060")
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func jwksURL() string {
	if url := os.Getenv("COGNITO_JWKS_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json",
		os.Getenv("AWS_REGION"), os.Getenv("COGNITO_USER_POOL_ID"))
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
	_ = validate.RegisterValidation("bookingstatus", validators.IsBookingStatus)
}
