package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every configuration parameter of the application.
type Config struct {
	DatabaseURL string
	ServerPort  int

	JWTSecretKey  string
	JWTIssuer     string
	JWTAudience   string
	JWTExpiration time.Duration

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	expirationMinutes := 60
	if raw := os.Getenv("JWT_EXPIRATION_MINUTES"); raw != "" {
		expirationMinutes, err = strconv.Atoi(raw)
		if err != nil || expirationMinutes <= 0 {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES environment variable: %q", raw)
		}
	}

	cfg := &Config{
		DatabaseURL: dbURL,
		ServerPort:  port,

		JWTSecretKey:  jwtKey,
		JWTIssuer:     getEnvDefault("JWT_ISSUER", "torneolink"),
		JWTAudience:   getEnvDefault("JWT_AUDIENCE", "torneolink-clients"),
		JWTExpiration: time.Duration(expirationMinutes) * time.Minute,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
