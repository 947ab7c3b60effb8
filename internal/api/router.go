package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tot/reservations-api/internal/api/handler"
	"github.com/tot/reservations-api/internal/core/domain"
	"github.com/tot/reservations-api/internal/core/service"
	mongodb "github.com/tot/reservations-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tot/reservations-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, settings domain.Settings, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("reservations"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	reservationRepo := mongodb.NewReservationRepository(db)
	locker := redisdb.NewDateLocker(rdb)

	userService := service.NewUserService(userRepo, log)
	reservationService := service.NewReservationService(reservationRepo, userService, locker, settings, log)

	userHandler := handler.NewUserHandler(userService)
	reservationHandler := handler.NewReservationHandler(reservationService)

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Reservation routes ---
	reservations := e.Group("/api/reservations")
	reservations.POST("", reservationHandler.Create)
	reservations.GET("", reservationHandler.List)
	reservations.GET("/:id", reservationHandler.Get)
	reservations.PUT("/:id", reservationHandler.Update)
	reservations.DELETE("/:id", reservationHandler.Delete)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
