package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rentkit/outreach-console/environments"
	"github.com/rentkit/outreach-console/handlers"
	"github.com/rentkit/outreach-console/internal/repository"
	"github.com/rentkit/outreach-console/internal/service"
	"github.com/rentkit/outreach-console/pkg/database"
	"github.com/rentkit/outreach-console/pkg/events"
	"github.com/rentkit/outreach-console/pkg/logger"
	"github.com/rentkit/outreach-console/pkg/redis"
	"github.com/rentkit/outreach-console/pkg/validator"
	"github.com/rentkit/outreach-console/routes"

	_ "github.com/rentkit/outreach-console/docs" // swagger docs
)

// @title Outreach Console API
// @version 1.0
// @description Admin backend for SMS and email outbound content management

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @schemes http https
func main() {
	logger.Init()

	// Load config
	cfg := environments.Load()

	// Hard-fail if required secrets are missing
	if cfg.Auth.AdminAPIKey == "" {
		logger.Fatalf("ADMIN_API_KEY is required but not set")
	}

	logger.Infof("Starting Outreach Console Service...")

	// Init DB
	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed data
	if os.Getenv("SEED_DATA") == "true" {
		if err := database.SeedTestData(db); err != nil {
			logger.Warnf("Failed to seed test data: %v", err)
		}
	}

	// Init cache
	var cacheClient *redis.Client
	cacheClient, err = redis.NewRedisClient(cfg.Cache)
	if err != nil {
		logger.Warnf("Cache not available, recent-send tracking disabled: %v", err)
		cacheClient = nil
	}

	// Initialize ops event client (disabled when no URL is configured)
	var eventsClient *events.Client
	if cfg.Events.WebhookURL != "" {
		eventsClient = events.NewClient(cfg.Events)
		logger.Infof("Ops webhook configured: %s", eventsClient.GetURL())
	} else {
		logger.Infof("Ops webhook not configured, mutation events disabled")
	}

	// Initialize repositories
	messageRepo := repository.NewMessageRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	funnelRepo := repository.NewFunnelRepository(db)

	// Initialize services
	messageService := newMessageService(messageRepo, eventsClient, cacheClient, cfg.Message)
	categoryService := service.NewCategoryService(categoryRepo)
	funnelService := service.NewFunnelService(funnelRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cacheClient)
	messageHandler := handlers.NewMessageHandler(messageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	funnelHandler := handlers.NewFunnelHandler(funnelService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"x-api-key",
		},
	}))

	// Setup routes
	routes.RegisterRoutes(e, healthHandler, messageHandler, categoryHandler, funnelHandler, cfg)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// Shutdown HTTP server (with timeout)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	// Close database connection
	logger.Infof("Closing database connection...")
	if err := db.Close(); err != nil {
		logger.Errorf("Error closing database: %v", err)
	}

	// Close cache connection
	if cacheClient != nil {
		logger.Infof("Closing cache connection...")
		if err := cacheClient.Close(); err != nil {
			logger.Errorf("Error closing cache: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
}

// newMessageService wires optional collaborators without handing the service
// a typed-nil interface.
func newMessageService(
	repo *repository.MessageRepository,
	eventsClient *events.Client,
	cacheClient *redis.Client,
	cfg environments.MessageConfig,
) *service.MessageService {
	var ev service.EventsClient
	if eventsClient != nil {
		ev = eventsClient
	}
	var ca service.CacheClient
	if cacheClient != nil {
		ca = cacheClient
	}
	return service.NewMessageService(repo, ev, ca, cfg)
}
