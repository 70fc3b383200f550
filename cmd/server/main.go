package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/taskplatform/task-platform-api/internal/config"
	"github.com/taskplatform/task-platform-api/internal/database"
	"github.com/taskplatform/task-platform-api/internal/handlers"
	"github.com/taskplatform/task-platform-api/internal/logging"
	"github.com/taskplatform/task-platform-api/internal/middleware"
	"github.com/taskplatform/task-platform-api/internal/notify"
	"github.com/taskplatform/task-platform-api/internal/repository"
	"github.com/taskplatform/task-platform-api/internal/services"
	"github.com/taskplatform/task-platform-api/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.GinMode != "release")

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		slog.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	fileRepo := repository.NewFileRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	localStore, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		slog.Error("failed to prepare upload directory", "error", err)
		os.Exit(1)
	}
	var remoteStore storage.Store
	if cfg.CloudinaryConfigured() {
		cloudStore, err := storage.NewCloudinaryStore(cfg)
		if err != nil {
			slog.Error("failed to configure cloudinary", "error", err)
			os.Exit(1)
		}
		remoteStore = cloudStore
		slog.Info("file storage", "provider", "cloudinary")
	} else {
		slog.Info("file storage", "provider", "local", "dir", cfg.UploadDir)
	}

	var mailer notify.Mailer
	if cfg.EmailConfigured() {
		smtpMailer, err := notify.NewSMTPMailer(cfg)
		if err != nil {
			slog.Error("failed to configure mailer", "error", err)
			os.Exit(1)
		}
		mailer = smtpMailer
	} else {
		slog.Warn("email not configured, assignment notifications disabled")
	}
	queue := notify.NewQueue(mailer, 64)
	defer queue.Close()

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiresIn)
	taskService := services.NewTaskService(taskRepo, userRepo, queue)
	commentService := services.NewCommentService(commentRepo, taskRepo)
	fileService := services.NewFileService(fileRepo, taskRepo, localStore, remoteStore)
	userService := services.NewUserService(userRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)
	fileHandler := handlers.NewFileHandler(fileService)
	userHandler := handlers.NewUserHandler(userService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))
	r.Use(middleware.RateLimit(cfg.RateLimitWindow, cfg.RateLimitMax))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(cfg.JWTSecret), authHandler.Me)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			tasks := protected.Group("/tasks")
			{
				tasks.GET("", taskHandler.List)
				tasks.POST("", taskHandler.Create)
				tasks.POST("/bulk", taskHandler.BulkCreate)
				tasks.GET("/:id", taskHandler.Get)
				tasks.GET("/:id/full", taskHandler.GetFull)
				tasks.PUT("/:id", taskHandler.Update)
				tasks.DELETE("/:id", taskHandler.Delete)
			}

			comments := protected.Group("/comments")
			{
				comments.POST("", commentHandler.Create)
				comments.GET("/task/:taskId", commentHandler.ListByTask)
				comments.PUT("/:id", commentHandler.Update)
				comments.DELETE("/:id", commentHandler.Delete)
			}

			files := protected.Group("/files")
			{
				files.POST("/upload", fileHandler.Upload)
				files.GET("/task/:taskId", fileHandler.ListByTask)
				files.GET("/:id/url", fileHandler.GetURL)
				files.GET("/:id/download", fileHandler.Download)
				files.DELETE("/:id", fileHandler.Delete)
			}

			users := protected.Group("/users")
			{
				users.GET("", userHandler.List)
				users.PATCH("/:id/role", userHandler.UpdateRole)
			}

			analytics := protected.Group("/analytics")
			{
				analytics.GET("/summary", analyticsHandler.Summary)
				analytics.GET("/trends", analyticsHandler.Trends)
				analytics.GET("/export", analyticsHandler.Export)
			}
		}
	}

	slog.Info("server listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
