package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"taskdeck/internal/config"
	"taskdeck/internal/database"
	"taskdeck/internal/handlers"
	"taskdeck/internal/logger"
	"taskdeck/internal/middleware"
	"taskdeck/internal/services"
	"taskdeck/internal/validator"

	_ "taskdeck/internal/docs" // Import swagger docs
)

// @title           Taskdeck API
// @version         1.0
// @description     Taskdeck is a session-authenticated task manager: per-user tasks, categories, and preferences behind a cookie-based login.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name taskdeck_session
// @description Opaque session token issued at login.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validations on gin's binding validator
	validator.Register()

	// Error reporting is optional; a missing DSN just turns it off
	if appConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         appConfig.SentryDSN,
			Environment: appConfig.Env,
		}); err != nil {
			log.Errorw("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db, appConfig.SessionTTL)
	taskService := services.NewTaskService(db)
	categoryService := services.NewCategoryService(db)
	optionService := services.NewOptionService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessionService, appConfig)
	taskHandler := handlers.NewTaskHandler(taskService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	optionHandler := handlers.NewOptionHandler(optionService)
	userHandler := handlers.NewUserHandler(userService)

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(appConfig))
	if appConfig.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	// Wrong verbs on known paths answer 405, unknown paths 404, both in
	// the standard envelope.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"status": "error", "message": "Method Not Allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Not found"})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.RequireSession(sessionService, appConfig))

	protected.GET("/auth/me", authHandler.Me)

	// Task routes; mutations are POST verbs on action paths
	tasks := protected.Group("/tasks")
	tasks.GET("", taskHandler.List)
	tasks.POST("/create", taskHandler.Create)
	tasks.POST("/update", taskHandler.Update)
	tasks.POST("/delete", taskHandler.Delete)

	// Category routes
	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/detail", categoryHandler.Detail)
	categories.POST("/create", categoryHandler.Create)
	categories.POST("/update", categoryHandler.Update)
	categories.POST("/delete", categoryHandler.Delete)

	// Preference routes
	options := protected.Group("/options")
	options.GET("", optionHandler.Get)
	options.POST("/update", optionHandler.Update)

	// Profile routes
	users := protected.Group("/users")
	users.POST("/update", userHandler.Update)

	log.Infof("Starting Taskdeck backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
