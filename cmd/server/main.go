package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-room-booking/internal/config"
	"github.com/iliyamo/hotel-room-booking/internal/database"
	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/router"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

func main() {
	// .env is optional; in containers the variables come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and the catalog response cache.
	// Both fail open, so a nil client just disables them.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	bookingSvc := service.NewBookingService(rooms, bookings, queue.NewPublisher(), cfg.AutoConfirm)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewRoomHandler(rooms), cache)
	router.RegisterGuest(e, handler.NewBookingHandler(bookingSvc), cfg.JWTSecret, limiter)
	router.RegisterAdmin(e,
		handler.NewAdminRoomHandler(rooms),
		handler.NewAdminBookingHandler(bookingSvc, bookings),
		handler.NewAdminDashboardHandler(bookings, rooms, users),
		cfg.JWTSecret)

	// Consumes booking events from RabbitMQ and appends them to the
	// audit log; reconnects on broker failure.
	go queue.StartBookingConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
