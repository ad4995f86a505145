package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/citytransit/bus-reservation-backend/internal/config"
	"github.com/citytransit/bus-reservation-backend/internal/database"
	"github.com/citytransit/bus-reservation-backend/internal/handlers"
	"github.com/citytransit/bus-reservation-backend/internal/middleware"
	"github.com/citytransit/bus-reservation-backend/internal/services"
	"github.com/citytransit/bus-reservation-backend/pkg/jwt"
	"github.com/citytransit/bus-reservation-backend/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting CityTransit Reservation Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize repositories
	userRepository := database.NewUserRepository(db)
	profileRepository := database.NewProfileRepository(db)
	refreshTokenRepository := database.NewRefreshTokenRepository(db)
	busRepository := database.NewBusRepository(db)
	locationRepository := database.NewLocationRepository(db)
	routeRepository := database.NewRouteRepository(db)
	scheduleRepository := database.NewScheduleRepository(db)
	reservationRepository := database.NewReservationRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	credentialValidator := validator.NewCredentialValidator()
	profileService := services.NewProfileService(profileRepository, userRepository)
	authService := services.NewAuthService(
		db,
		userRepository,
		profileRepository,
		refreshTokenRepository,
		profileService,
		jwtService,
		credentialValidator,
		cfg.Security.BcryptCost,
		logger,
	)
	reservationService := services.NewReservationService(reservationRepository, scheduleRepository, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, profileService, userRepository, logger)
	profileHandler := handlers.NewProfileHandler(profileRepository, profileService, logger)
	busHandler := handlers.NewBusHandler(busRepository, logger)
	locationHandler := handlers.NewLocationHandler(locationRepository, logger)
	routeHandler := handlers.NewRouteHandler(routeRepository, logger)
	scheduleHandler := handlers.NewScheduleHandler(scheduleRepository, logger)
	reservationHandler := handlers.NewReservationHandler(reservationService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)

			// Protected routes (require JWT authentication)
			protected := auth.Group("")
			protected.Use(middleware.AuthMiddleware(jwtService))
			{
				protected.POST("/logout", authHandler.Logout)
				protected.GET("/user", authHandler.CurrentUser)
			}
		}

		// User profile routes (protected)
		users := v1.Group("/users")
		users.Use(middleware.AuthMiddleware(jwtService))
		{
			users.GET("/profile", profileHandler.GetProfile)
			users.PATCH("/profile", profileHandler.UpdateProfile)
		}

		// Bus routes (protected, writes admin only)
		buses := v1.Group("/buses")
		buses.Use(middleware.AuthMiddleware(jwtService))
		{
			buses.GET("", busHandler.GetAllBuses)
			buses.GET("/:id", busHandler.GetBusByID)
			buses.POST("", busHandler.CreateBus)
			buses.PUT("/:id", busHandler.UpdateBus)
			buses.DELETE("/:id", busHandler.DeleteBus)
		}

		// Location routes (protected, writes admin only)
		locations := v1.Group("/locations")
		locations.Use(middleware.AuthMiddleware(jwtService))
		{
			locations.GET("", locationHandler.GetAllLocations)
			locations.GET("/:id", locationHandler.GetLocationByID)
			locations.POST("", locationHandler.CreateLocation)
			locations.PUT("/:id", locationHandler.UpdateLocation)
			locations.DELETE("/:id", locationHandler.DeleteLocation)
		}

		// Route routes (protected, writes admin only)
		routes := v1.Group("/routes")
		routes.Use(middleware.AuthMiddleware(jwtService))
		{
			routes.GET("", routeHandler.GetAllRoutes)
			routes.GET("/:id", routeHandler.GetRouteByID)
			routes.POST("", routeHandler.CreateRoute)
			routes.PUT("/:id", routeHandler.UpdateRoute)
			routes.DELETE("/:id", routeHandler.DeleteRoute)
		}

		// Schedule routes (protected, writes admin only)
		schedules := v1.Group("/schedules")
		schedules.Use(middleware.AuthMiddleware(jwtService))
		{
			schedules.GET("", scheduleHandler.ListSchedules)
			schedules.GET("/:id", scheduleHandler.GetScheduleByID)
			schedules.POST("", scheduleHandler.CreateSchedule)
			schedules.PUT("/:id", scheduleHandler.UpdateSchedule)
			schedules.DELETE("/:id", scheduleHandler.DeleteSchedule)
		}

		// Reservation routes (all protected)
		reservations := v1.Group("/reservations")
		reservations.Use(middleware.AuthMiddleware(jwtService))
		{
			reservations.GET("", reservationHandler.ListReservations)
			reservations.GET("/user", reservationHandler.ListOwnReservations)
			reservations.POST("", reservationHandler.CreateReservation)
			reservations.GET("/:id", reservationHandler.GetReservationByID)
			reservations.POST("/:id/cancel", reservationHandler.CancelReservation)
			reservations.DELETE("/:id", middleware.RequireAdmin(), reservationHandler.DeleteReservation)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, ok := middleware.GetUserContext(c); ok {
			fields["user_id"] = userCtx.UserID
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else {
			status := c.Writer.Status()
			if status >= 500 {
				entry.Error("Request completed with server error")
			} else if status >= 400 {
				entry.Warn("Request completed with client error")
			} else {
				entry.Info("Request completed successfully")
			}
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
