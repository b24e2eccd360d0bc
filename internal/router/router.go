package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dineout-gr/dineout-api/internal/config"
	"github.com/dineout-gr/dineout-api/internal/handler"
	"github.com/dineout-gr/dineout-api/internal/middleware"
	"github.com/dineout-gr/dineout-api/internal/model"
)

// Deps bundles everything the routes need.
type Deps struct {
	Cfg          config.Config
	Auth         *handler.AuthHandler
	Restaurants  *handler.RestaurantHandler
	Reservations *handler.ReservationHandler
	Users        *handler.UserHandler
	Redis        *redis.Client // nil disables caching and rate limiting
}

// Register wires the full HTTP surface onto the provided Echo instance.
// Public routes: health check, auth, restaurant catalog (the catalog GETs
// sit behind the Redis response cache). Everything touching reservations
// or the caller's profile goes through the JWT access gate first; the
// restaurant-scoped reservation listing additionally requires the admin
// role. The token-bucket limiter covers the whole /api group.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis))

	// Unauthenticated: account creation and login.
	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)

	// Unauthenticated: catalog browse/search, cached.
	catalog := api.Group("/restaurants")
	catalog.Use(middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis))
	catalog.GET("", d.Restaurants.List)
	catalog.GET("/:id", d.Restaurants.Get)

	// Authenticated: reservation lifecycle.
	reservations := api.Group("/reservations")
	reservations.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
	reservations.POST("", d.Reservations.Create)
	reservations.PUT("/:id", d.Reservations.Update)
	reservations.DELETE("/:id", d.Reservations.Cancel)
	reservations.GET("/restaurant/:restaurantId", d.Reservations.ListByRestaurant,
		middleware.RequireRole(model.RoleAdmin))

	// Authenticated: the caller's own profile and reservations.
	users := api.Group("/users")
	users.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
	users.GET("/profile", d.Users.Profile)
	users.PUT("/profile", d.Users.UpdateProfile)
	users.GET("/reservations", d.Users.Reservations)
}
