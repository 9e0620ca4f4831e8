package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/campusride/carpool-backend/internal/config"
	"github.com/campusride/carpool-backend/internal/database"
	"github.com/campusride/carpool-backend/internal/handlers"
	"github.com/campusride/carpool-backend/internal/middleware"
	"github.com/campusride/carpool-backend/internal/observability"
	"github.com/campusride/carpool-backend/internal/services"
	"github.com/campusride/carpool-backend/pkg/jwt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
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

	logger.Info("Starting CampusRide Carpool Backend")
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
	logger.Info("Database connection established")

	// Initialize repositories
	userRepository := database.NewUserRepository(db)
	vehicleRepository := database.NewVehicleRepository(db)
	rideRepository := database.NewRideRepository(db)
	requestRepository := database.NewRideRequestRepository(db)
	sessionRepository := database.NewSessionRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	authService := services.NewAuthService(userRepository, sessionRepository, jwtService, cfg.Security.BcryptCost, logger)
	rideService := services.NewRideService(rideRepository, vehicleRepository, logger)
	matchingService := services.NewMatchingService(db, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleRepository)
	rideHandler := handlers.NewRideHandler(rideService)
	requestHandler := handlers.NewRequestHandler(matchingService, requestRepository)
	profileHandler := handlers.NewProfileHandler(userRepository, vehicleRepository, rideRepository, sessionRepository)

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

	// Health check and metrics endpoints
	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Vehicle routes (protected)
		vehicles := v1.Group("/vehicles")
		vehicles.Use(middleware.AuthMiddleware(jwtService))
		{
			vehicles.POST("", vehicleHandler.AddVehicle)
			vehicles.GET("", vehicleHandler.GetMyVehicles)
		}

		// Ride routes: search is public, the rest requires authentication
		rides := v1.Group("/rides")
		{
			rides.GET("", rideHandler.ListOpenRides)

			ridesProtected := rides.Group("")
			ridesProtected.Use(middleware.AuthMiddleware(jwtService))
			{
				ridesProtected.POST("", rideHandler.CreateRide)
				ridesProtected.GET("/mine", rideHandler.GetMyRides)
				ridesProtected.DELETE("/:id", rideHandler.DeleteRide)
			}
		}

		// Join request routes (all protected)
		requests := v1.Group("/requests")
		requests.Use(middleware.AuthMiddleware(jwtService))
		{
			requests.POST("", requestHandler.JoinRide)
			requests.GET("/pending", requestHandler.GetPendingRequests)
			requests.POST("/resolve", requestHandler.ResolveRequest)
		}

		// User routes (protected)
		user := v1.Group("/user")
		user.Use(middleware.AuthMiddleware(jwtService))
		{
			user.GET("/profile", profileHandler.GetProfile)
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

// requestLogger middleware logs HTTP requests and records the request metrics
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// Record with the route template, not the raw path, to keep
		// metric cardinality bounded.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		statusLabel := strconv.Itoa(status)
		observability.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, statusLabel).Inc()
		observability.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, statusLabel).Observe(latency.Seconds())

		fields := logrus.Fields{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		// Add user context if available
		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else if status >= 500 {
			entry.Error("Request completed with server error")
		} else if status >= 400 {
			entry.Warn("Request completed with client error")
		} else {
			entry.Info("Request completed successfully")
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
