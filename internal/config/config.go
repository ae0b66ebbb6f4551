// Package config resolves tool configuration from flags, environment
// variables, and .env files. Flags take precedence over environment
// variables, which take precedence over .env entries. Nothing outside
// this package reads process environment state.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jpbowler97/airtable-csv-sync/pkg/errors"
)

// Config holds the resolved configuration for one run.
type Config struct {
	// Compare inputs
	CSVPath string
	BaseID  string
	Table   string
	APIKey  string

	// BaseURL overrides the Airtable API root when set.
	BaseURL string

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// Load resolves configuration from the environment. Called once before
// command execution; flag values are layered on top by the command.
func Load() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for _, key := range []string{"AIRTABLE_API_KEY", "AIRTABLE_BASE_URL"} {
		if err := viper.BindEnv(key); err != nil {
			return nil, &errors.ConfigError{Component: "env", Message: "failed to bind " + key, Err: err}
		}
	}

	return &Config{
		APIKey:    viper.GetString("AIRTABLE_API_KEY"),
		BaseURL:   viper.GetString("AIRTABLE_BASE_URL"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
	}, nil
}

// UpdateFromFlags layers parsed flag values over the environment-derived
// configuration. Empty flag values leave the resolved values in place.
func (c *Config) UpdateFromFlags(csvPath, baseID, table, apiKey string) {
	if csvPath != "" {
		c.CSVPath = csvPath
	}
	if baseID != "" {
		c.BaseID = baseID
	}
	if table != "" {
		c.Table = table
	}
	if apiKey != "" {
		c.APIKey = apiKey
	}
}

// Validate checks that everything a compare run needs is present.
func (c *Config) Validate() error {
	if c.CSVPath == "" {
		return &errors.ValidationError{Field: "csv", Message: "path to CSV file is required"}
	}
	if c.BaseID == "" {
		return &errors.ValidationError{Field: "base", Message: "Airtable base ID is required"}
	}
	if c.Table == "" {
		return &errors.ValidationError{Field: "table", Message: "Airtable table name is required"}
	}
	if c.APIKey == "" {
		return &errors.ConfigError{
			Component: "airtable",
			Message:   "API key not provided; use --api-key or set AIRTABLE_API_KEY",
			Err:       errors.ErrAPIKeyRequired,
		}
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns an environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
