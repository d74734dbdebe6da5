package main

import (
	"context"
	"log"
	"time"

	"github.com/inko-social/backend/internal/middleware"
	"github.com/inko-social/backend/internal/router"
	"github.com/inko-social/backend/internal/storage"
	"github.com/inko-social/backend/internal/validators"
	"github.com/inko-social/backend/pkg/config"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize object storage
	ctx := context.Background()
	store, err := storage.NewStorageFromConfig(ctx, cfg.StorageType, storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		PublicURL: cfg.S3PublicURL,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Optional Redis-backed rate limiting
	if cfg.RedisAddr != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RedisAddr, cfg.RateLimit, time.Minute)
		if err != nil {
			log.Fatalf("Failed to initialize rate limiter: %v", err)
		}
		defer limiter.Close()
		e.Use(limiter.Middleware())
		log.Println("Rate limiting enabled.")
	}

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, store, cfg.StorageType, cfg.JWTSecret)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
