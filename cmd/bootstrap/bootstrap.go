package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beneficiary-registry/config"
	deliveryHttp "beneficiary-registry/internal/delivery/http"
	"beneficiary-registry/internal/delivery/http/handler"
	"beneficiary-registry/internal/delivery/http/middleware"
	"beneficiary-registry/internal/domain/entity"
	"beneficiary-registry/internal/infrastructure/cache"
	"beneficiary-registry/internal/infrastructure/database"
	"beneficiary-registry/internal/repository"
	"beneficiary-registry/internal/service"
	"beneficiary-registry/internal/usecase"
	"beneficiary-registry/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, logrus.GetLevel())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis; the lookup cache is optional, so the service starts
	// without it when Redis is unreachable.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logrus.Warnf("Redis unavailable, lookup cache disabled: %v", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	lookupRepo := repository.NewLookupRepository(log)
	personRepo := repository.NewPersonRepository()
	beneficiaryRepo := repository.NewBeneficiaryRepository()
	relatedPersonRepo := repository.NewRelatedPersonRepository()

	// Initialize services
	lookupCache := service.NewLookupCache(redisClient, cfg.Redis.LookupTTL, log)
	exporter := service.NewBeneficiaryExporter()

	// Lookup tables may have been edited while the service was down.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := lookupCache.Invalidate(ctx, entity.LookupTables...); err != nil {
		log.Warnf("Failed to reset lookup cache: %+v", err)
	}
	cancel()

	// Initialize usecases
	lookupUsecase := usecase.NewLookupUsecase(db, log, lookupRepo, lookupCache)
	beneficiaryUsecase := usecase.NewBeneficiaryUsecase(db, log, lookupRepo, personRepo, beneficiaryRepo, relatedPersonRepo, cfg.DB.SerializePersonIDs)

	// Initialize handlers
	lookupHandler := handler.NewLookupHandler(lookupUsecase)
	beneficiaryHandler := handler.NewBeneficiaryHandler(beneficiaryUsecase, customValidator, exporter)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.HTTP.AllowedOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst, cfg.HTTP.TrustProxyHeaders)

	// Initialize router
	router := deliveryHttp.NewRouter(db, lookupHandler, beneficiaryHandler, corsMiddleware, loggingMiddleware, rateLimitMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the database and redis connections
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
