package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/application"
	"github.com/avdeenkov/hotel_backend/internal/config"
	"github.com/avdeenkov/hotel_backend/internal/email"
	"github.com/avdeenkov/hotel_backend/internal/infrastructure/repository"
	handlers "github.com/avdeenkov/hotel_backend/internal/interfaces/http"
	"github.com/avdeenkov/hotel_backend/internal/obs"
	"github.com/avdeenkov/hotel_backend/internal/scheduler"
	services "github.com/avdeenkov/hotel_backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := obs.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	// Repositories
	roomRepo := repository.NewRoomRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Email client
	emailClient, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	)
	if err != nil {
		logger.Warn("email client initialization failed, confirmations disabled", "error", err)
		emailClient = nil
	}

	// Pricing engine
	priceTable := application.NewPriceTable(priceRepo, logger)
	discountPolicy := application.NewDiscountPolicy(discountRepo)
	calculator := application.NewQuoteCalculator(priceTable, discountPolicy)
	availability := application.NewAvailabilityChecker(bookingRepo)

	// Services
	bookingService := application.NewBookingService(bookingRepo, roomRepo, guestRepo, calculator, availability, emailClient, logger)
	roomService := application.NewRoomService(roomRepo)
	pricingAdminService := application.NewPricingAdminService(priceRepo, discountRepo)

	// Handlers
	quoteLimiter := application.NewRateLimiter(time.Minute, 30)
	quoteHandler := handlers.NewQuoteHandler(bookingService, quoteLimiter)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	roomHandler := handlers.NewRoomHandler(roomService)
	adminHandler := handlers.NewAdminHandler(pricingAdminService, bookingService)

	// S3 photo storage
	photoStorage, err := services.NewPhotoStorage(context.Background(), cfg.AWSRegion, cfg.S3BucketName)
	if err != nil {
		logger.Warn("photo storage initialization failed, uploads disabled", "error", err)
	}

	api := app.Group("/api")

	api.Get("/quote", quoteHandler.GetQuote)

	bookings := api.Group("/bookings")
	bookings.Post("/", bookingHandler.CreateBooking)
	bookings.Get("/", bookingHandler.GetAllBookings)
	bookings.Get("/:id", bookingHandler.GetBookingByID)
	bookings.Put("/:id", bookingHandler.UpdateBooking)
	bookings.Post("/:id/confirm", bookingHandler.ConfirmBooking)
	bookings.Post("/:id/check-in", bookingHandler.CheckInBooking)
	bookings.Post("/:id/check-out", bookingHandler.CheckOutBooking)
	bookings.Post("/:id/cancel", bookingHandler.CancelBooking)

	rooms := api.Group("/rooms")
	rooms.Get("/", roomHandler.GetAllRooms)
	rooms.Get("/types", roomHandler.GetRoomTypes)
	rooms.Get("/availability", roomHandler.GetAvailableRooms)
	rooms.Get("/:id", roomHandler.GetRoomByID)

	admin := api.Group("/admin")
	admin.Get("/prices", adminHandler.ListPrices)
	admin.Post("/prices", adminHandler.CreatePrice)
	admin.Put("/prices/:id", adminHandler.UpdatePrice)
	admin.Delete("/prices/:id", adminHandler.DeletePrice)
	admin.Get("/discounts", adminHandler.ListDiscounts)
	admin.Post("/discounts", adminHandler.CreateDiscount)
	admin.Put("/discounts/:id", adminHandler.UpdateDiscount)
	admin.Delete("/discounts/:id", adminHandler.DeleteDiscount)

	api.Get("/dashboard", adminHandler.GetDashboard)

	if photoStorage != nil {
		photoHandler := handlers.NewPhotoHandler(photoStorage, roomService)
		api.Post("/upload/photos", photoHandler.UploadRoomPhoto)
	}

	bookingScheduler := scheduler.NewBookingScheduler(bookingRepo, logger)
	bookingScheduler.Start()
	defer bookingScheduler.Stop()

	logger.Info("server starting", "port", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
