// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig holds the token signing settings. SecretKey is mandatory.
type JWTConfig struct {
	SecretKey           string
	Issuer              string
	Audience            string
	ExpirationInMinutes int
}

// Config is the full service configuration. DatabaseURL and JWT.SecretKey
// have no defaults; Load fails when either is unset.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	JWT         JWTConfig
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	expiration := 15
	if raw := os.Getenv("JWT_EXPIRATION_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("JWT_EXPIRATION_MINUTES must be a positive integer, got %q", raw)
		}
		expiration = parsed
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: databaseURL,
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		JWT: JWTConfig{
			SecretKey:           secret,
			Issuer:              getEnv("JWT_ISSUER", "invoicing-api"),
			Audience:            getEnv("JWT_AUDIENCE", "invoicing-api"),
			ExpirationInMinutes: expiration,
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
