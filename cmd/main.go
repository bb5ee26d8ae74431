package main

import (
	"carcrm/internal/handler"
	"carcrm/internal/middleware"
	"carcrm/pkg/config"
	"carcrm/pkg/database"
	"carcrm/pkg/jwtutil"
	"carcrm/pkg/logger"
	"carcrm/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables.
	// Load fails hard when a production deployment still carries the
	// insecure default session secret.
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting car CRM service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize session token utility and cookie name
	jwtutil.Initialize(&cfg.Session)
	middleware.SetCookieName(cfg.Session.CookieName)
	handler.InitHandlers(cfg)
	log.Info("Session utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout)
	auth.POST("/change-password", handler.ChangePassword, middleware.SessionAuth)

	// Admin profile
	admin := e.Group("/admin", middleware.SessionAuth)
	admin.GET("/me", handler.Me)

	// Buyers
	buyers := e.Group("/buyers", middleware.SessionAuth)
	buyers.GET("", handler.ListBuyers)
	buyers.POST("", handler.CreateBuyer)
	buyers.GET("/:id", handler.GetBuyer)
	buyers.PUT("/:id", handler.UpdateBuyer)
	buyers.DELETE("/:id", handler.DeleteBuyer)

	// Sellers
	sellers := e.Group("/sellers", middleware.SessionAuth)
	sellers.GET("", handler.ListSellers)
	sellers.POST("", handler.CreateSeller)
	sellers.GET("/:id", handler.GetSeller)
	sellers.PUT("/:id", handler.UpdateSeller)
	sellers.DELETE("/:id", handler.DeleteSeller)

	// Cars
	cars := e.Group("/cars", middleware.SessionAuth)
	cars.GET("", handler.ListCars)
	cars.POST("", handler.CreateCar)
	cars.GET("/:id", handler.GetCar)
	cars.PUT("/:id", handler.UpdateCar)
	cars.DELETE("/:id", handler.DeleteCar)

	// Leads
	leads := e.Group("/leads", middleware.SessionAuth)
	leads.GET("", handler.ListLeads)
	leads.POST("", handler.CreateLead)
	leads.GET("/:id", handler.GetLead)
	leads.PUT("/:id", handler.UpdateLead)
	leads.DELETE("/:id", handler.DeleteLead)

	// Follow-ups
	followups := e.Group("/followups", middleware.SessionAuth)
	followups.GET("", handler.ListFollowUps)
	followups.POST("", handler.CreateFollowUp)
	followups.GET("/:id", handler.GetFollowUp)
	followups.PUT("/:id", handler.UpdateFollowUp)
	followups.PUT("/:id/complete", handler.CompleteFollowUp)
	followups.DELETE("/:id", handler.DeleteFollowUp)

	// WhatsApp links
	messages := e.Group("/messages", middleware.SessionAuth)
	messages.POST("/wa-link", handler.CreateWaLink)

	// CSV export
	exports := e.Group("/export", middleware.SessionAuth)
	exports.GET("/csv", handler.ExportCSV)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
