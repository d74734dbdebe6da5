package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	JWTSecret   string

	StorageType string // "s3" or "memory"
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PublicURL string
	S3AccessKey string
	S3SecretKey string

	RedisAddr string // empty disables the rate limiter
	RateLimit int    // requests per minute per client IP
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretjwtkey"),

		StorageType: getEnv("STORAGE_TYPE", "memory"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		RateLimit: getEnvInt("RATE_LIMIT", 300),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
