package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/encorehq/booking-platform/internal/booking"
	"github.com/encorehq/booking-platform/internal/config"
	"github.com/encorehq/booking-platform/internal/database"
	"github.com/encorehq/booking-platform/internal/handler"
	"github.com/encorehq/booking-platform/internal/logging"
	"github.com/encorehq/booking-platform/internal/middleware"
	"github.com/encorehq/booking-platform/internal/queue"
	"github.com/encorehq/booking-platform/internal/repository"
	"github.com/encorehq/booking-platform/internal/router"
	"github.com/encorehq/booking-platform/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	// Redis is optional: without it the cache and rate limiter become
	// pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	bookings := repository.NewBookingRepo(db)
	instruments := repository.NewInstrumentRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	contracts := repository.NewContractRepo(db)
	signatures := repository.NewSignatureRepo(db)
	rates := repository.NewRateRepo(db)
	discounts := repository.NewDiscountRepo(db)
	profiles := repository.NewProfileRepo(db)

	publisher := service.NewPublisher(logging.Component(log, "publisher"))

	orchestrator := booking.NewContractOrchestrator(db, users, bookings, contracts, signatures,
		booking.ParseSignPolicy(cfg.SignPolicy), publisher, logging.Component(log, "contracts"))
	negotiator := booking.NewRateNegotiator(users, bookings, rates, logging.Component(log, "rates"))
	resolver := booking.NewDiscountResolver(users, discounts, logging.Component(log, "discounts"))

	authH := handler.NewAuthHandler(cfg, users, tokens)
	bookingH := handler.NewBookingHandler(bookings, users, logging.Component(log, "bookings"))
	adminH := handler.NewAdminBookingHandler(bookings, users, publisher, logging.Component(log, "admin"))
	assignH := handler.NewAssignmentHandler(bookings, assignments, instruments, users, logging.Component(log, "assignments"))
	contractH := handler.NewContractHandler(orchestrator, contracts)
	rateH := handler.NewRateHandler(negotiator)
	discountH := handler.NewDiscountHandler(resolver)
	profileH := handler.NewProfileHandler(users, profiles, logging.Component(log, "profiles"))
	mgmtH := handler.NewManagementHandler(users, profiles, logging.Component(log, "management"))
	publicH := handler.NewPublicHandler(instruments, profiles)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e, publicH)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBooking(e, cfg.JWTSecret, bookingH, profileH, rateH, discountH)
	router.RegisterAdmin(e, cfg.JWTSecret, adminH, assignH, contractH, rateH, discountH, mgmtH)
	router.RegisterSigning(e, cfg.JWTSecret, contractH)

	// Audit consumer tails the workflow queues into logs/booking.log.
	go queue.StartConsumer(logging.Component(log, "consumer"))

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
