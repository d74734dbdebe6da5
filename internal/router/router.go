package router

import (
	"log"
	"net/http"

	"github.com/inko-social/backend/internal/handlers"
	"github.com/inko-social/backend/internal/middleware"
	"github.com/inko-social/backend/internal/models"
	"github.com/inko-social/backend/internal/repositories"
	"github.com/inko-social/backend/internal/services"
	"github.com/inko-social/backend/internal/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, store storage.ObjectStorage, storageType, jwtSecret string) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Story{},
		&models.StoryView{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck(storageType))
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"name":    "INKO API",
			"version": "1.0",
			"status":  "running",
		})
	})

	// --- Initialize repositories and services ---
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	toggleService := services.NewToggleService(db)
	feedService := services.NewFeedService(db)
	storyService := services.NewStoryService(db, store)
	postService := services.NewPostService(db, store)
	commentService := services.NewCommentService(db)
	notificationService := services.NewNotificationService(db)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))

	userHandler := handlers.NewUserHandler(userRepo, followRepo, feedService, store)
	userHandler.RegisterProfileRoutes(api)

	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(api)

	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)

	followHandler := handlers.NewFollowHandler(toggleService)
	followHandler.RegisterFollowRoutes(api)

	likeHandler := handlers.NewLikeHandler(toggleService)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api)

	storyHandler := handlers.NewStoryHandler(storyService)
	storyHandler.RegisterStoryRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Println("All routes configured.")
}
