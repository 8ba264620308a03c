package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/core"
	"budget/internal/log"
)

type Config struct {
	// Ledger
	CSVPath      string
	DefaultLimit string

	// Logging
	LogLevel string

	// SQLite mirror, disabled when empty
	SQLiteDBPath string

	// AMQP save notifications, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror, disabled when GoogleSpreadsheetID is empty
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	MirrorTimeout time.Duration
}

func Load() *Config {
	return &Config{
		CSVPath:      getEnv("BUDGET_CSV_PATH", "budget_data.csv"),
		DefaultLimit: getEnv("BUDGET_DEFAULT_LIMIT", core.DefaultBudgetLimit.String()),

		LogLevel: getEnv("LOG_LEVEL", "warn"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "budget"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_saved"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Budget"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		MirrorTimeout: getEnvDuration("MIRROR_TIMEOUT", 30*time.Second),
	}
}

// BudgetLimit parses DefaultLimit. Call Validate first.
func (c *Config) BudgetLimit() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(c.DefaultLimit))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SQLiteEnabled, AMQPEnabled and SheetsEnabled report which optional
// adapters are configured.
func (c *Config) SQLiteEnabled() bool { return c.SQLiteDBPath != "" }

func (c *Config) AMQPEnabled() bool { return c.AMQPURL != "" }

func (c *Config) SheetsEnabled() bool { return c.GoogleSpreadsheetID != "" }

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.CSVPath) == "" {
		errors = append(errors, "ledger file path cannot be empty")
	} else if dir := filepath.Dir(c.CSVPath); dir != "." && dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("ledger file directory '%s' does not exist", dir))
		}
	}

	if d, err := decimal.NewFromString(strings.TrimSpace(c.DefaultLimit)); err != nil {
		errors = append(errors, fmt.Sprintf("invalid default budget limit '%s': must be a number", c.DefaultLimit))
	} else if d.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid default budget limit %s: must not be negative", d))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.AMQPEnabled() {
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

	if c.SheetsEnabled() {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when a spreadsheet ID is provided")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.MirrorTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid mirror timeout %v: must be at least 1 second", c.MirrorTimeout))
	} else if c.MirrorTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid mirror timeout %v: must be at most 10 minutes", c.MirrorTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
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
