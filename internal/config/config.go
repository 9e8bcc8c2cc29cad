// Package config loads the process configuration once at startup. Values are
// read from the environment (optionally seeded from a .env file) and are
// immutable afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full server configuration. The token secret and TTL feed the
// token codec and must be valid before the server accepts any request.
type Config struct {
	Addr          string
	DatabaseURL   string
	MigrationsDir string
	RedisAddr     string
	TokenSecret   []byte
	TokenTTL      time.Duration
	LoginAttempts int
	LoginCooldown time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:          ":" + getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		TokenSecret:   []byte(os.Getenv("TOKEN_SECRET")),
	}

	if len(cfg.TokenSecret) == 0 {
		return Config{}, errors.New("TOKEN_SECRET is required")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, errors.New("TOKEN_TTL must be positive")
	}
	cfg.TokenTTL = ttl

	attempts, err := getEnvInt("LOGIN_MAX_ATTEMPTS", 5)
	if err != nil {
		return Config{}, err
	}
	cfg.LoginAttempts = attempts

	cooldown, err := time.ParseDuration(getEnv("LOGIN_COOLDOWN", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOGIN_COOLDOWN: %w", err)
	}
	if cooldown <= 0 {
		return Config{}, errors.New("LOGIN_COOLDOWN must be positive")
	}
	cfg.LoginCooldown = cooldown

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
