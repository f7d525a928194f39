package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	iauth "github.com/ghatak0982/fleetcare/internal/auth"
	"github.com/ghatak0982/fleetcare/internal/engine"
	"github.com/ghatak0982/fleetcare/internal/handlers"
	"github.com/ghatak0982/fleetcare/internal/middleware"
	"github.com/ghatak0982/fleetcare/internal/registry"
	"github.com/ghatak0982/fleetcare/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, reg registry.Client, scheduler *engine.Scheduler, loc *time.Location) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if reg == nil {
		return nil, fmt.Errorf("registry client must be provided")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("scheduler must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())

	// Public endpoints
	r.GET("/health", handlers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler, err := handlers.NewAuthHandler(db, jwt)
	if err != nil {
		return nil, err
	}

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	requireAuth := middleware.Auth(jwt)
	api := r.Group("/api")
	api.Use(requireAuth)

	api.GET("/auth/me", authHandler.Me)

	// Vehicles
	vehicleHandler, err := handlers.NewVehicleHandler(db, reg)
	if err != nil {
		return nil, err
	}
	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", vehicleHandler.List)
		vehicles.POST("", vehicleHandler.Create)
		vehicles.POST("/bulk", vehicleHandler.BulkCreate)
		vehicles.GET("/:id", vehicleHandler.Get)
		vehicles.POST("/:id/refresh", vehicleHandler.Refresh)
		vehicles.DELETE("/:id", vehicleHandler.Delete)
	}

	// Notifications
	notificationHandler, err := handlers.NewNotificationHandler(db)
	if err != nil {
		return nil, err
	}
	notifications := api.Group("/notifications")
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread_count", notificationHandler.UnreadCount)
		notifications.PATCH("/:id/read", notificationHandler.MarkRead)
		notifications.POST("/read_all", notificationHandler.MarkAllRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}

	// Notification settings
	preferenceHandler, err := handlers.NewPreferenceHandler(db)
	if err != nil {
		return nil, err
	}
	api.GET("/settings/notifications", preferenceHandler.Get)
	api.PUT("/settings/notifications", preferenceHandler.Update)

	// Dashboard
	vehicleService, err := services.NewVehicleService(db, reg)
	if err != nil {
		return nil, err
	}
	dashboardService, err := services.NewDashboardService(vehicleService, loc)
	if err != nil {
		return nil, err
	}
	dashboardHandler, err := handlers.NewDashboardHandler(dashboardService)
	if err != nil {
		return nil, err
	}
	api.GET("/dashboard/stats", dashboardHandler.Stats)

	// Admin
	evaluationHandler := handlers.NewEvaluationHandler(scheduler)
	api.POST("/admin/evaluations/run", evaluationHandler.Run)

	return r, nil
}
