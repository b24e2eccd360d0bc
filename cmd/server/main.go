package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dineout-gr/dineout-api/internal/config"
	"github.com/dineout-gr/dineout-api/internal/database"
	"github.com/dineout-gr/dineout-api/internal/handler"
	"github.com/dineout-gr/dineout-api/internal/queue"
	"github.com/dineout-gr/dineout-api/internal/repository"
	"github.com/dineout-gr/dineout-api/internal/router"
	queue_publisher "github.com/dineout-gr/dineout-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := repository.NewUserRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	reservations := repository.NewReservationRepo(db)

	// Nil when Redis is unreachable; cache and limiter then pass through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, caching and rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.Register(e, router.Deps{
		Cfg:          cfg,
		Auth:         handler.NewAuthHandler(cfg, users),
		Restaurants:  handler.NewRestaurantHandler(restaurants),
		Reservations: handler.NewReservationHandler(reservations, restaurants, queue_publisher.New(), cfg.LockCancelled),
		Users:        handler.NewUserHandler(users, reservations),
		Redis:        rdb,
	})

	// Background audit trail for reservation events.
	go queue.StartReservationConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
