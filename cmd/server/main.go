package main

import (
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"gym-service/internal/handler"
	"gym-service/internal/middleware"
	"gym-service/internal/model"
	"gym-service/pkg/config"
	"gym-service/pkg/database"
	"gym-service/pkg/jwtutil"
	"gym-service/pkg/logger"
	"gym-service/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "gym-service",
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting gym service", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if _, err := database.InitDB(&cfg.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to migrate database models", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	// Initialize JWT utility
	jwtutil.Initialize(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})

	// Initialize Prometheus metrics
	prometheus.InitMetrics()

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(cfg.IsProduction())

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	e.GET("/metrics", handler.MetricsHandler)
	e.GET("/api/health", handler.HealthCheck)

	adminOnly := middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin)
	superAdminOnly := middleware.RequireRole(model.RoleSuperAdmin)

	// Authentication routes
	auth := e.Group("/api/auth")
	auth.POST("/register", handler.Register, middleware.OptionalAuth, middleware.TenantScope)
	auth.POST("/login", handler.Login)
	auth.GET("/me", handler.GetMe, middleware.RequireAuth)
	auth.PUT("/update", handler.UpdateProfile, middleware.RequireAuth)
	auth.PUT("/change-password", handler.ChangePassword, middleware.RequireAuth)

	// Booking routes
	bookings := e.Group("/api/bookings")
	bookings.POST("", handler.CreateBooking, middleware.OptionalAuth, middleware.TenantScope)
	bookings.GET("/my-bookings", handler.MyBookings, middleware.RequireAuth, middleware.TenantScope)
	bookings.PUT("/:id/cancel", handler.CancelBooking, middleware.RequireAuth, middleware.TenantScope)
	bookings.GET("", handler.ListBookings, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	bookings.GET("/:id", handler.GetBookingByID, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	bookings.PUT("/:id/status", handler.UpdateBookingStatus, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	bookings.DELETE("/:id", handler.DeleteBooking, middleware.RequireAuth, middleware.TenantScope, adminOnly)

	// Coach routes - public reads require a tenant selection
	coaches := e.Group("/api/coaches")
	coaches.GET("", handler.ListCoaches, middleware.OptionalAuth, middleware.TenantScope, middleware.RequireTenantScope)
	coaches.GET("/:identifier", handler.GetCoach, middleware.OptionalAuth, middleware.TenantScope, middleware.RequireTenantScope)
	coaches.POST("", handler.CreateCoach, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	coaches.PUT("/:id", handler.UpdateCoach, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	coaches.DELETE("/:id", handler.DeleteCoach, middleware.RequireAuth, middleware.TenantScope, adminOnly)

	// FAQ routes - public reads require a tenant selection
	faqs := e.Group("/api/faqs")
	faqs.GET("", handler.ListFAQs, middleware.OptionalAuth, middleware.TenantScope, middleware.RequireTenantScope)
	faqs.GET("/:id", handler.GetFAQByID, middleware.OptionalAuth, middleware.TenantScope, middleware.RequireTenantScope)
	faqs.POST("", handler.CreateFAQ, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	faqs.PUT("/:id", handler.UpdateFAQ, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	faqs.DELETE("/:id", handler.DeleteFAQ, middleware.RequireAuth, middleware.TenantScope, adminOnly)

	// Contact routes
	contacts := e.Group("/api/contact")
	contacts.POST("", handler.CreateContact, middleware.OptionalAuth, middleware.TenantScope)
	contacts.GET("", handler.ListContacts, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	contacts.GET("/:id", handler.GetContactByID, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	contacts.PUT("/:id", handler.UpdateContact, middleware.RequireAuth, middleware.TenantScope, adminOnly)
	contacts.DELETE("/:id", handler.DeleteContact, middleware.RequireAuth, middleware.TenantScope, adminOnly)

	// Tenant directory - management routes operate tenant-globally
	tenants := e.Group("/api/tenants", middleware.RequireAuth, middleware.TenantScope)
	tenants.POST("", handler.CreateTenant, superAdminOnly)
	tenants.GET("", handler.ListTenants, superAdminOnly)
	tenants.GET("/:id", handler.GetTenantByID, adminOnly)
	tenants.PUT("/:id", handler.UpdateTenant, adminOnly)
	tenants.DELETE("/:id", handler.DeleteTenant, superAdminOnly)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
