package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Logger   LoggerConfig
	Server   ServerConfig
	Database DatabaseConfig
	Matching MatchingConfig
	Input    InputConfig
	Scan     ScanConfig
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // Default: "info" (trace, debug, info, warn, error, fatal, panic)
	Environment string // production|development|staging|test (affects format)
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        // Default: "127.0.0.1"
	Port            int           // Default: 8080
	ShutdownTimeout time.Duration // Default: 30s
}

// DatabaseConfig holds settings for the optional Postgres contact source
type DatabaseConfig struct {
	URL               string // Optional; required for --source postgres
	Table             string // Default: "contacts"
	MaxConns          int32
	MinConns          int32
	MaxConnIdleTime   time.Duration
	MaxConnLifetime   time.Duration
	HealthCheckPeriod time.Duration
	HealthTimeout     time.Duration // Default: 5s
}

// MatchingConfig holds engine execution settings. Weights and thresholds are
// fixed and intentionally absent here.
type MatchingConfig struct {
	Workers int // Default: 1 (sequential scan)
}

// InputConfig holds contact input settings
type InputConfig struct {
	Path           string // Default file for `dedupe scan`
	MaxUploadBytes int64  // Default: 10 MiB
	MaxContacts    int    // Default: 20000, per request
}

// ScanConfig holds settings for scheduled scans in `dedupe serve`
type ScanConfig struct {
	Schedule string // cron spec with seconds, e.g. "@every 1h"; empty disables
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Constants for default values
const (
	DefaultServerHost         = "127.0.0.1"
	DefaultServerPort         = 8080
	DefaultShutdownTimeout    = 30 * time.Second
	DefaultHealthCheckTimeout = 5 * time.Second
	DefaultLogLevel           = "info"
	DefaultEnvironment        = "development"
	DefaultContactsTable      = "contacts"
	DefaultWorkers            = 1
	DefaultMaxUploadBytes     = 10 << 20
	DefaultMaxContacts        = 20000
	DefaultInputPath          = "Code Assessment - Find Duplicates Input.xlsx"
)

// Load reads configuration from environment variables, after loading a .env
// file from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", DefaultLogLevel),
			Environment: getEnv("APP_ENV", DefaultEnvironment),
		},
		Server: ServerConfig{
			Host:            getEnv("HOST", DefaultServerHost),
			Port:            getEnvAsInt("PORT", DefaultServerPort),
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Database: DatabaseConfig{
			URL:               getEnv("DATABASE_URL", ""),
			Table:             getEnv("CONTACTS_TABLE", DefaultContactsTable),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 4)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 0)),
			MaxConnIdleTime:   5 * time.Minute,
			MaxConnLifetime:   30 * time.Minute,
			HealthCheckPeriod: time.Minute,
			HealthTimeout:     DefaultHealthCheckTimeout,
		},
		Matching: MatchingConfig{
			Workers: getEnvAsInt("MATCH_WORKERS", DefaultWorkers),
		},
		Input: InputConfig{
			Path:           getEnv("INPUT_PATH", DefaultInputPath),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
			MaxContacts:    getEnvAsInt("MAX_CONTACTS", DefaultMaxContacts),
		},
		Scan: ScanConfig{
			Schedule: getEnv("SCAN_SCHEDULE", ""),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration for errors
func (c *Config) Validate() error {
	var errors ValidationErrors

	// Server port range
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "PORT",
			Message: fmt.Sprintf("port must be between 0 and 65535, got %d", c.Server.Port),
		})
	}

	// Log level validation
	validLogLevels := []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	if !contains(validLogLevels, strings.ToLower(c.Logger.Level)) {
		errors = append(errors, ValidationError{
			Field:   "LOG_LEVEL",
			Message: fmt.Sprintf("invalid log level %q, must be one of: %v", c.Logger.Level, validLogLevels),
		})
	}

	// Environment validation
	validEnvs := []string{"production", "development", "staging", "test"}
	if !contains(validEnvs, c.Logger.Environment) {
		errors = append(errors, ValidationError{
			Field:   "APP_ENV",
			Message: fmt.Sprintf("invalid environment %q, must be one of: %v", c.Logger.Environment, validEnvs),
		})
	}

	if c.Matching.Workers < 1 {
		errors = append(errors, ValidationError{
			Field:   "MATCH_WORKERS",
			Message: fmt.Sprintf("workers must be at least 1, got %d", c.Matching.Workers),
		})
	}

	if c.Input.MaxUploadBytes <= 0 {
		errors = append(errors, ValidationError{
			Field:   "MAX_UPLOAD_BYTES",
			Message: "max upload size must be positive",
		})
	}

	if c.Input.MaxContacts <= 0 {
		errors = append(errors, ValidationError{
			Field:   "MAX_CONTACTS",
			Message: "max contacts must be positive",
		})
	}

	// Pool sizing only matters when a database is configured
	if c.Database.URL != "" && c.Database.MinConns > c.Database.MaxConns {
		errors = append(errors, ValidationError{
			Field:   "DB_MIN_CONNS",
			Message: fmt.Sprintf("min conns (%d) exceeds max conns (%d)", c.Database.MinConns, c.Database.MaxConns),
		})
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Logger.Environment == "production"
}

// GetBindAddress returns the server bind address in format "host:port"
func (c *Config) GetBindAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Helper functions for parsing environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
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

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// TestConfig creates a test configuration with sensible defaults for testing
func TestConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:       "debug",
			Environment: "test",
		},
		Server: ServerConfig{
			Host:            DefaultServerHost,
			Port:            0, // Random port for tests
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Table:         DefaultContactsTable,
			MaxConns:      2,
			HealthTimeout: DefaultHealthCheckTimeout,
		},
		Matching: MatchingConfig{
			Workers: 1,
		},
		Input: InputConfig{
			Path:           "contacts.xlsx",
			MaxUploadBytes: 1 << 20,
			MaxContacts:    1000,
		},
	}
}
