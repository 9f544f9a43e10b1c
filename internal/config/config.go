package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"lifeos/internal/errors"

	"github.com/robfig/cron/v3"
)

// Supported storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Insights InsightsConfig
	Digest   DigestConfig
	Export   ExportConfig
	LogLevel string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver string
	URL    string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	UIPort          string
	GinMode         string
	ShutdownTimeout time.Duration
}

// InsightsConfig tunes the pattern engine
type InsightsConfig struct {
	Timezone        string
	Location        *time.Location
	ClampToQuitDate bool
	DedupeInsights  bool
	HistoryDays     int
}

// DigestConfig controls the weekly digest job
type DigestConfig struct {
	Enabled  bool
	Schedule string
}

// ExportConfig holds export file settings
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	loc, err := loadLocation(getEnvOrDefault("TIMEZONE", "Local"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
			URL:    getEnvOrDefault("DATABASE_URL", "lifeos.db"),
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			UIPort:          getEnvOrDefault("UI_PORT", "8081"),
			GinMode:         getEnvOrDefault("GIN_MODE", "release"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Insights: InsightsConfig{
			Timezone:        getEnvOrDefault("TIMEZONE", "Local"),
			Location:        loc,
			ClampToQuitDate: getEnvBoolOrDefault("CLAMP_TO_QUIT_DATE", false),
			DedupeInsights:  getEnvBoolOrDefault("DEDUPE_INSIGHTS", false),
			HistoryDays:     getEnvIntOrDefault("HISTORY_DAYS", 365),
		},
		Digest: DigestConfig{
			Enabled:  getEnvBoolOrDefault("DIGEST_ENABLED", true),
			Schedule: getEnvOrDefault("DIGEST_SCHEDULE", "0 20 * * 0"),
		},
		Export: ExportConfig{
			Dir: getEnvOrDefault("EXPORT_DIR", "./exports"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks values that Load cannot default away
func Validate(config *Config) error {
	switch config.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return errors.ConfigInvalid("DATABASE_DRIVER must be sqlite or postgres")
	}
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Insights.HistoryDays < 30 {
		return errors.ConfigInvalid("HISTORY_DAYS must cover at least 30 days")
	}
	if config.Digest.Enabled {
		if _, err := cron.ParseStandard(config.Digest.Schedule); err != nil {
			return errors.Wrapf(errors.ConfigInvalid("DIGEST_SCHEDULE is not a valid cron expression"), "%v", err)
		}
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid("TIMEZONE is not a known IANA zone"), err.Error())
	}
	return loc, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
