package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	Port           string `validate:"required,numeric"`
	StoreDriver    string `validate:"oneof=badger postgres memory"`
	DataDir        string `validate:"required"`
	Database       DatabaseConfig
	SaveDebounce   time.Duration `validate:"gte=0"`
	ReportDir      string        `validate:"required"`
	ReportSink     string        `validate:"oneof=file pdf browser"`
	ChromeBin      string
	DefaultCompany string
	Verbose        bool
}

// DatabaseConfig holds database configuration for the postgres driver.
// Without a password on localhost an embedded server is started in DataPath.
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	DataPath string
	Verbose  bool
}

var validate = validator.New()

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	debounceMS, err := strconv.Atoi(getEnv("SAVE_DEBOUNCE_MS", "400"))
	if err != nil {
		return nil, fmt.Errorf("SAVE_DEBOUNCE_MS: %w", err)
	}

	dataDir := getEnv("DATA_DIR", "./data")
	verbose := getEnv("VERBOSE", "false") == "true"

	cfg := &Config{
		Port:        getEnv("PORT", "3210"),
		StoreDriver: getEnv("STORE_DRIVER", DriverBadger),
		DataDir:     dataDir,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "ploegwissel"),
			DataPath: filepath.Join(dataDir, "pg"),
			Verbose:  verbose,
		},
		SaveDebounce:   time.Duration(debounceMS) * time.Millisecond,
		ReportDir:      getEnv("REPORT_DIR", "./reports"),
		ReportSink:     getEnv("REPORT_SINK", "file"),
		ChromeBin:      os.Getenv("CHROME_BIN"),
		DefaultCompany: os.Getenv("DEFAULT_COMPANY"),
		Verbose:        verbose,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks driver and sink names and required paths
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// BadgerPath is where the badger driver keeps its files
func (c *Config) BadgerPath() string {
	return filepath.Join(c.DataDir, "badger")
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
