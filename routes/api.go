package routes

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/rentkit/outreach-console/environments"
	"github.com/rentkit/outreach-console/handlers"
	"github.com/rentkit/outreach-console/internal/middlewares"
)

// RegisterRoutes registers all API routes with middleware
func RegisterRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	messageHandler *handlers.MessageHandler,
	categoryHandler *handlers.CategoryHandler,
	funnelHandler *handlers.FunnelHandler,
	cfg *environments.Config,
) {
	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 base group, guarded by the admin API key
	v1 := e.Group("/api/v1", middlewares.APIKeyAuth(cfg.Auth.AdminAPIKey))

	messages := v1.Group("/messages")

	messages.GET("", messageHandler.List)
	messages.POST("", messageHandler.Create)
	messages.GET("/categories", messageHandler.Categories)
	messages.GET("/recent-sends", messageHandler.RecentSends)
	messages.GET("/stats", messageHandler.Stats)
	messages.PUT("/:id", messageHandler.Update)
	messages.DELETE("/:id", messageHandler.Delete)
	messages.POST("/:id/send", messageHandler.MarkSent)
	messages.POST("/:id/duplicate", messageHandler.Duplicate)

	categories := v1.Group("/categories")

	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	funnels := v1.Group("/funnels")

	funnels.GET("", funnelHandler.List)
	funnels.GET("/assignments", funnelHandler.Assignments)
}
