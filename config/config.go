// Package config loads application settings from the environment.
// File: config/config.go
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"go-con-board/logger"
)

// Config holds everything the application reads from its environment.
type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string // "sqlite" or "postgres"
	SessionSecret  string
	AdminToken     string
	ApplicationURL string
	Env            string // "development", "staging", "production"
}

// Load reads a .env file if one is present, then resolves every setting
// from environment variables. Secrets have no defaults: a missing
// SESSION_SECRET or ADMIN_TOKEN is a hard error, never a fallback value.
func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		logger.Debug.Printf("config: no .env file loaded: %v", err)
	}

	var cfg Config

	cfg.Port = 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL required")
	}

	cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	cfg.AdminToken = os.Getenv("ADMIN_TOKEN")
	if cfg.AdminToken == "" {
		return Config{}, errors.New("ADMIN_TOKEN required")
	}

	cfg.ApplicationURL = os.Getenv("APPLICATION_URL")
	if cfg.ApplicationURL == "" {
		cfg.ApplicationURL = "http://localhost:8080"
	}

	cfg.Env = os.Getenv("ENV")
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	return cfg, nil
}

// DriverName maps the configured database type to its database/sql driver.
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}
