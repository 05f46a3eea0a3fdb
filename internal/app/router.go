package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"charter/internal/config"
	"charter/internal/domain"
	"charter/internal/handler"
	"charter/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	PricingHandler     *handler.PricingHandler
	DestinationHandler *handler.DestinationHandler
	BookingHandler     *handler.BookingHandler
	TransactionHandler *handler.TransactionHandler
	HelicopterHandler  *handler.HelicopterHandler
	PilotHandler       *handler.PilotHandler
	ExperienceHandler  *handler.ExperienceHandler
	MaintenanceHandler *handler.MaintenanceHandler
	JWTConfig          config.JWTConfig
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Public routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		v1.GET("/destinations", deps.DestinationHandler.GetAll)
		v1.GET("/experiences", deps.ExperienceHandler.GetActive)
		v1.POST("/pricing/quote", deps.PricingHandler.Quote)

		// Authenticated routes.
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(deps.JWTConfig))
		{
			// Current user.
			users := authed.Group("/users")
			{
				users.GET("/me", deps.UserHandler.Me)
				users.GET("/me/balance", deps.UserHandler.Balance)
			}

			// Bookings.
			bookings := authed.Group("/bookings")
			{
				bookings.POST("", deps.BookingHandler.Create)
				bookings.GET("", deps.BookingHandler.GetAll)
				bookings.GET("/:id", deps.BookingHandler.Get)
				bookings.POST("/:id/cancel", deps.BookingHandler.Cancel)
				bookings.POST("/:id/pay", deps.BookingHandler.Pay)
			}

			// Transactions.
			transactions := authed.Group("/transactions")
			{
				transactions.POST("/deposit", deps.TransactionHandler.Deposit)
				transactions.POST("/withdraw", deps.TransactionHandler.Withdraw)
				transactions.GET("", deps.TransactionHandler.GetMine)
			}

			// Fleet is readable by any signed-in user.
			authed.GET("/helicopters", deps.HelicopterHandler.GetAll)
			authed.GET("/helicopters/:id", deps.HelicopterHandler.Get)

			// Admin routes.
			admin := authed.Group("")
			admin.Use(middleware.RequireRole(domain.RoleAdmin))
			{
				admin.GET("/users", deps.UserHandler.GetAll)
				admin.POST("/bookings/:id/status", deps.BookingHandler.UpdateStatus)

				admin.GET("/transactions/pending", deps.TransactionHandler.GetPending)
				admin.POST("/transactions/:id/review", deps.TransactionHandler.Review)

				admin.POST("/helicopters", deps.HelicopterHandler.Create)
				admin.PUT("/helicopters/:id", deps.HelicopterHandler.Update)
				admin.GET("/helicopters/:id/maintenance", deps.MaintenanceHandler.GetForHelicopter)

				admin.POST("/pilots", deps.PilotHandler.Create)
				admin.GET("/pilots", deps.PilotHandler.GetAll)
				admin.GET("/pilots/:id", deps.PilotHandler.Get)
				admin.PUT("/pilots/:id", deps.PilotHandler.Update)

				admin.POST("/experiences", deps.ExperienceHandler.Create)
				admin.PUT("/experiences/:id", deps.ExperienceHandler.Update)

				admin.POST("/maintenance", deps.MaintenanceHandler.Create)
				admin.GET("/maintenance", deps.MaintenanceHandler.GetAll)
				admin.POST("/maintenance/:id/status", deps.MaintenanceHandler.UpdateStatus)
			}
		}
	}

	return router
}
