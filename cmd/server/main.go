package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"github.com/dykeinvestments/estate-backend/internal/cache"
	"github.com/dykeinvestments/estate-backend/internal/config"
	"github.com/dykeinvestments/estate-backend/internal/database"
	"github.com/dykeinvestments/estate-backend/internal/handlers"
	"github.com/dykeinvestments/estate-backend/internal/middleware"
	"github.com/dykeinvestments/estate-backend/internal/services"
	"github.com/dykeinvestments/estate-backend/pkg/jwt"
	"github.com/dykeinvestments/estate-backend/pkg/notify"
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

	logger.Info("Starting Dyke Investments Estate Backend")
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

	// Run pending schema migrations
	// Migrations need the raw *sql.DB underneath the sqlx wrapper
	pg, ok := db.(*database.PostgresDB)
	if !ok {
		logger.Fatal("Failed to cast database connection to PostgresDB")
	}
	if cfg.Database.RunMigrations {
		if err := runMigrations(pg.DB.DB, cfg.Database.MigrationsPath); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Info("Database migrations up to date")
	}

	// Initialize listing cache (optional, disabled when REDIS_ADDR is unset)
	var listingCache services.ListingSnapshotCache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		listingCache = cache.NewListingCache(redisClient, cfg.Redis.TTL)
		logger.Info("Listing cache enabled")
	} else {
		logger.Info("Listing cache disabled, serving directly from database")
	}

	// Initialize notifier
	var notifier notify.Notifier
	if cfg.Notify.Mode == "production" {
		notifier = notify.NewWebhookNotifier(notify.WebhookConfig{
			WebhookURL: cfg.Notify.WebhookURL,
		})
		logger.Info("Webhook notifier initialized")
	} else {
		notifier = notify.NewDevNotifier()
		logger.Info("Notifier in development mode (no notifications will be sent)")
	}

	// Initialize repositories
	propertyRepository := database.NewPropertyRepository(db)
	buyerRequestRepository := database.NewBuyerRequestRepository(db)
	siteVisitRepository := database.NewSiteVisitRepository(db)
	userRepository := database.NewUserRepository(db)
	emailLogRepository := database.NewEmailLogRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	propertyService := services.NewPropertyService(
		propertyRepository,
		listingCache,
		notifier,
		emailLogRepository,
		cfg.Notify.AdminEmail,
		logger,
	)
	buyerRequestService := services.NewBuyerRequestService(
		buyerRequestRepository,
		notifier,
		emailLogRepository,
		cfg.Notify.AdminEmail,
		logger,
	)
	matchService := services.NewMatchService(
		buyerRequestRepository,
		propertyRepository,
		notifier,
		emailLogRepository,
		logger,
	)
	authService := services.NewAuthService(userRepository, jwtService)
	logger.Info("Services initialized")

	// Initialize handlers
	propertyHandler := handlers.NewPropertyHandler(propertyService, logger)
	buyerRequestHandler := handlers.NewBuyerRequestHandler(buyerRequestService, matchService, logger)
	siteVisitHandler := handlers.NewSiteVisitHandler(siteVisitRepository, logger)
	authHandler := handlers.NewAuthHandler(authService, logger)
	adminHandler := handlers.NewAdminHandler(propertyService, buyerRequestService, emailLogRepository, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

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
			auth.POST("/signup", authHandler.SignUp)
			auth.POST("/signin", authHandler.SignIn)
		}

		// Property routes (public: browse approved inventory, submit listings)
		properties := v1.Group("/properties")
		{
			properties.GET("", propertyHandler.List)
			properties.GET("/:id", propertyHandler.Get)
			properties.POST("", propertyHandler.Submit)
		}

		// Buyer request submission (public)
		v1.POST("/buyer-requests", buyerRequestHandler.Submit)

		// Site visit booking (public)
		v1.POST("/site-visits", siteVisitHandler.Create)

		// Admin routes (require admin JWT)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService))
		admin.Use(middleware.RequireAdmin())
		{
			// Property moderation
			admin.GET("/properties", propertyHandler.ListAll)
			admin.PUT("/properties/:id/status", propertyHandler.UpdateStatus)
			admin.PUT("/properties/:id", propertyHandler.Update)
			admin.DELETE("/properties/:id", propertyHandler.Delete)

			// Buyer request management and matching
			admin.GET("/buyer-requests", buyerRequestHandler.List)
			admin.GET("/buyer-requests/:id", buyerRequestHandler.Get)
			admin.PUT("/buyer-requests/:id/status", buyerRequestHandler.UpdateStatus)
			admin.GET("/buyer-requests/:id/matches", buyerRequestHandler.Matches)
			admin.POST("/buyer-requests/:id/notify-matches", buyerRequestHandler.NotifyMatches)

			// Site visit management
			admin.GET("/site-visits", siteVisitHandler.List)
			admin.PUT("/site-visits/:id/status", siteVisitHandler.UpdateStatus)

			// Dashboard
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/email-logs", adminHandler.EmailLogs)
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

// runMigrations applies pending migrations from migrationsPath
func runMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
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
