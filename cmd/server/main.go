package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"charter/internal/app"
	"charter/internal/config"
	"charter/internal/handler"
	internalRedis "charter/internal/redis"
	"charter/internal/repository/postgres"
	"charter/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	helicopterRepo := postgres.NewHelicopterRepository(db)
	pilotRepo := postgres.NewPilotRepository(db)
	experienceRepo := postgres.NewExperienceRepository(db)
	maintenanceRepo := postgres.NewMaintenanceRepository(db)
	atomic := postgres.NewAtomic(db)

	// Initialize services.
	notificationService := service.NewNotificationService()
	pricingService := service.NewPricingService(nil)
	ledgerService := service.NewLedgerService(atomic, userRepo, bookingRepo, transactionRepo, lockStore, notificationService)
	bookingService := service.NewBookingService(bookingRepo, helicopterRepo, experienceRepo, pricingService, ledgerService, cacheStore, notificationService)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(userRepo, cfg.JWT)
	userHandler := handler.NewUserHandler(userRepo)
	pricingHandler := handler.NewPricingHandler(pricingService)
	destinationHandler := handler.NewDestinationHandler()
	bookingHandler := handler.NewBookingHandler(bookingService, ledgerService)
	transactionHandler := handler.NewTransactionHandler(ledgerService, transactionRepo)
	helicopterHandler := handler.NewHelicopterHandler(helicopterRepo, cacheStore)
	pilotHandler := handler.NewPilotHandler(pilotRepo)
	experienceHandler := handler.NewExperienceHandler(experienceRepo, cacheStore)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceRepo, helicopterRepo)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		PricingHandler:     pricingHandler,
		DestinationHandler: destinationHandler,
		BookingHandler:     bookingHandler,
		TransactionHandler: transactionHandler,
		HelicopterHandler:  helicopterHandler,
		PilotHandler:       pilotHandler,
		ExperienceHandler:  experienceHandler,
		MaintenanceHandler: maintenanceHandler,
		JWTConfig:          cfg.JWT,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
