package api

import (
	v1 "github.com/flexprice/rvpark/internal/api/v1"
	"github.com/flexprice/rvpark/internal/config"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/rest/middleware"
	sentryService "github.com/flexprice/rvpark/internal/sentry"
	"github.com/flexprice/rvpark/internal/service"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Auth    *v1.AuthHandler
	RvPark  *v1.RvParkHandler
	Spot    *v1.SpotHandler
	Person  *v1.PersonHandler
	Rental  *v1.RentalHandler
	Payment *v1.PaymentHandler
	Audit   *v1.AuditHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	sentry *sentryService.Service,
	authService service.AuthService,
) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger, sentry),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1Public := router.Group("/v1")
	v1Public.POST("/auth/login", middleware.LoginRateLimit(cfg), handlers.Auth.Login)

	v1Private := router.Group("/v1")
	v1Private.Use(middleware.AuthenticateMiddleware(authService, logger))
	adminOnly := middleware.RequireRole(types.UserRoleAdmin)
	staff := middleware.RequireRole(types.UserRoleAdmin, types.UserRoleOperator)

	auth := v1Private.Group("/auth")
	{
		auth.GET("/me", handlers.Auth.Me)
		auth.POST("/register", adminOnly, handlers.Auth.Register)
	}

	rvParks := v1Private.Group("/rv-parks", staff)
	{
		rvParks.POST("", adminOnly, handlers.RvPark.CreateRvPark)
		rvParks.GET("", handlers.RvPark.ListRvParks)
		rvParks.GET("/:id", handlers.RvPark.GetRvPark)
		rvParks.PUT("/:id", handlers.RvPark.UpdateRvPark)
		rvParks.DELETE("/:id", adminOnly, handlers.RvPark.DeleteRvPark)
	}

	spots := v1Private.Group("/spots", staff)
	{
		spots.POST("", adminOnly, handlers.Spot.CreateSpot)
		spots.GET("", handlers.Spot.ListSpots)
		spots.GET("/:id", handlers.Spot.GetSpot)
		spots.PUT("/:id", handlers.Spot.UpdateSpot)
		spots.DELETE("/:id", adminOnly, handlers.Spot.DeleteSpot)
	}

	persons := v1Private.Group("/persons", staff)
	{
		persons.POST("", handlers.Person.CreatePerson)
		persons.GET("", handlers.Person.ListPersons)
		persons.GET("/:id", handlers.Person.GetPerson)
		persons.PUT("/:id", handlers.Person.UpdatePerson)
		persons.DELETE("/:id", handlers.Person.DeletePerson)
	}

	rentals := v1Private.Group("/rentals", staff)
	{
		rentals.POST("", handlers.Rental.CreateRental)
		rentals.GET("", handlers.Rental.ListRentals)
		rentals.GET("/:id", handlers.Rental.GetRental)
		rentals.PUT("/:id", handlers.Rental.UpdateRental)
		rentals.DELETE("/:id", adminOnly, handlers.Rental.DeleteRental)
	}

	payments := v1Private.Group("/payments", staff)
	{
		payments.POST("", handlers.Payment.RegisterPayment)
		payments.GET("", handlers.Payment.ListPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
		payments.PUT("/:id", handlers.Payment.UpdatePayment)
		payments.DELETE("/:id", adminOnly, handlers.Payment.DeletePayment)
	}

	v1Private.GET("/audit-logs", adminOnly, handlers.Audit.ListAuditLogs)

	return router
}
