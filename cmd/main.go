package main

import (
	"errors"

	"realestate-api/internal/handler"
	"realestate-api/internal/middleware"
	"realestate-api/internal/model"
	"realestate-api/pkg/config"
	"realestate-api/pkg/database"
	"realestate-api/pkg/jwtutil"
	"realestate-api/pkg/logger"
	"realestate-api/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingSigningKey) {
			panic("JWT_SIGNING_KEY must be set before starting the server")
		}
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting real estate service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if _, err := database.InitDB(&cfg.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.Company{},
		&model.User{},
		&model.Client{},
		&model.Property{},
		&model.Appointment{},
		&model.Contract{},
		&model.Lead{},
		&model.Negotiation{},
	); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database schema migrated")

	// Initialize JWT utility and handler collaborators
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)
	handler.Init(jwtUtil)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics()
	log.Info("Prometheus metrics initialized")

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes - these don't belong under /api since they're for getting access to the API
	auth := e.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/register-master", handler.RegisterMaster)

	// Public storefront lead intake
	e.POST("/leads/public", handler.CreateLead)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtUtil))

	api.GET("/auth/profile", handler.Profile)

	// Company management - master admins only
	companies := api.Group("/companies")
	companies.Use(middleware.RequireRoles(model.RoleMasterAdmin))
	companies.POST("", handler.CreateCompany)
	companies.GET("", handler.ListCompanies)
	companies.GET("/:id", handler.GetCompany)
	companies.PUT("/:id", handler.UpdateCompany)
	companies.DELETE("/:id", handler.DeleteCompany)

	// User management - managers and above
	users := api.Group("/users")
	users.Use(middleware.RequireRoles(model.RoleMasterAdmin, model.RoleManager))
	users.POST("", handler.CreateUser)
	users.GET("", handler.ListUsers)
	users.GET("/:id", handler.GetUser)
	users.PATCH("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)

	// Client portfolio - any staff role may read and write
	clients := api.Group("/clients")
	clients.POST("", handler.CreateClient)
	clients.GET("", handler.ListClients)
	clients.GET("/:id", handler.GetClient)
	clients.PATCH("/:id", handler.UpdateClient)
	clients.DELETE("/:id", handler.DeleteClient, middleware.RequireRoles(model.RoleMasterAdmin, model.RoleManager))

	// Property listings - deletion is restricted to managers and above
	properties := api.Group("/properties")
	properties.POST("", handler.CreateProperty)
	properties.GET("", handler.ListProperties)
	properties.GET("/:id", handler.GetProperty)
	properties.PATCH("/:id", handler.UpdateProperty)
	properties.DELETE("/:id", handler.DeleteProperty, middleware.RequireRoles(model.RoleMasterAdmin, model.RoleManager))

	// Viewing appointments
	appointments := api.Group("/appointments")
	appointments.POST("", handler.CreateAppointment)
	appointments.GET("", handler.ListAppointments)
	appointments.GET("/:id", handler.GetAppointment)
	appointments.PATCH("/:id", handler.UpdateAppointment)
	appointments.DELETE("/:id", handler.DeleteAppointment)

	// Contracts - deletion restricted to managers and above
	contracts := api.Group("/contracts")
	contracts.POST("", handler.CreateContract)
	contracts.GET("", handler.ListContracts)
	contracts.GET("/:id", handler.GetContract)
	contracts.PATCH("/:id", handler.UpdateContract)
	contracts.DELETE("/:id", handler.DeleteContract, middleware.RequireRoles(model.RoleMasterAdmin, model.RoleManager))

	// Lead triage - tenant-scoped reads and status updates
	leads := api.Group("/leads")
	leads.GET("", handler.ListLeads)
	leads.PATCH("/:id/status", handler.UpdateLeadStatus)

	// Negotiation pipeline
	negotiations := api.Group("/negotiations")
	negotiations.POST("", handler.CreateNegotiation)
	negotiations.GET("", handler.ListNegotiations)
	negotiations.GET("/:id", handler.GetNegotiation)
	negotiations.PATCH("/:id/status", handler.UpdateNegotiationStatus)
	negotiations.POST("/:id/history", handler.AddNegotiationHistory)

	// Get server port from configuration
	port := cfg.Server.Port

	// Start server
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
