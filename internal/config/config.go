package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stima/internal/forecast"
)

type Config struct {
	// HTTP Server
	Port string

	// Forecasting
	ForecastModel   string
	ForecastTimeout time.Duration

	// Audit database
	SQLiteDBPath   string
	AuditRetention time.Duration
	PruneInterval  time.Duration

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export (optional; enabled when a spreadsheet ID is set)
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		ForecastModel:   getEnv("FORECAST_MODEL", forecast.SeasonalNaive),
		ForecastTimeout: getEnvDuration("FORECAST_TIMEOUT", 5*time.Second),

		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/stima.db"),
		AuditRetention: getEnvDuration("AUDIT_RETENTION", 90*24*time.Hour),
		PruneInterval:  getEnvDuration("PRUNE_INTERVAL", time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "stima"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "estimate_audit"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate forecast model against the registered forecasters
	if _, err := forecast.GetForecaster(c.ForecastModel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid forecast model '%s': %v", c.ForecastModel, err))
	}

	if c.ForecastTimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid forecast timeout %v: must be at least 100ms", c.ForecastTimeout))
	} else if c.ForecastTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid forecast timeout %v: must be at most 1 minute", c.ForecastTimeout))
	}

	// Validate SQLite configuration if a path is set
	if c.SQLiteDBPath != "" {
		// Check if directory exists or can be created
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AuditRetention < 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid audit retention %v: must be at least 24 hours", c.AuditRetention))
	}
	if c.PruneInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid prune interval %v: must be at least 1 minute", c.PruneInterval))
	} else if c.PruneInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid prune interval %v: must be at most 24 hours", c.PruneInterval))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate Google Sheets export configuration if enabled
	if c.GoogleSpreadsheetID != "" {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when a spreadsheet ID is set")
		}

		hasCredentialsFile := c.GoogleServiceAccountFile != ""
		hasCredentialsJSON := c.GoogleServiceAccountJSON != ""
		if !hasCredentialsFile && !hasCredentialsJSON {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for the sheets export")
		}

		// Check if credentials file exists (if specified)
		if hasCredentialsFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SheetsExportEnabled reports whether the audit worker should mirror rows to
// Google Sheets.
func (c *Config) SheetsExportEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
