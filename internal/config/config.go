package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration, populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Library  LibraryConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Database      string
	SSLMode       string
	MaxConns      int
	MinConns      int
	MigrateOnBoot bool
}

// LibraryConfig tunes the library listing scan.
type LibraryConfig struct {
	// PageSize is the number of joined rows fetched per round trip by FindAll.
	PageSize int
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnvInt("DB_PORT", 5432),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", ""),
			Database:      getEnv("DB_NAME", "library"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			MaxConns:      getEnvInt("DB_MAX_CONNS", 25),
			MinConns:      getEnvInt("DB_MIN_CONNS", 5),
			MigrateOnBoot: getEnvBool("DB_MIGRATE", true),
		},
		Library: LibraryConfig{
			PageSize: getEnvInt("LIBRARY_PAGE_SIZE", 500),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the application cannot run with.
func (c *Config) Validate() error {
	if c.Library.PageSize <= 0 {
		return fmt.Errorf("LIBRARY_PAGE_SIZE must be positive, got %d", c.Library.PageSize)
	}
	if c.App.Environment == "production" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
