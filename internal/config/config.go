package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"mandatpro/internal/datev"
	"mandatpro/internal/logger"
)

// Config holds the settings read from the environment.
type Config struct {
	// DATEV header configuration
	AdvisorNumber   string
	ClientNumber    string
	BatchLabel      string
	DiktatCode      string
	FiscalYearStart string

	// Export output
	OutputDir string

	// Record source: file path, "sheets", sqlite://path or postgres://...
	RecordSource string

	// Google Sheets Configuration
	GoogleSheetURL       string
	GoogleSheetWorksheet string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	config := &Config{
		AdvisorNumber:        getEnv("DATEV_ADVISOR_NUMBER", ""),
		ClientNumber:         getEnv("DATEV_CLIENT_NUMBER", ""),
		BatchLabel:           getEnv("DATEV_BATCH_LABEL", ""),
		DiktatCode:           getEnv("DATEV_DIKTAT_CODE", ""),
		FiscalYearStart:      getEnv("DATEV_FISCAL_YEAR_START", ""),
		OutputDir:            getEnv("DATEV_OUTPUT_DIR", "."),
		RecordSource:         getEnv("RECORD_SOURCE", ""),
		GoogleSheetURL:       getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "DATEV_Vorschau"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:            getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.AdvisorNumber != "" && !isDigits(c.AdvisorNumber) {
		return fmt.Errorf("DATEV_ADVISOR_NUMBER must be numeric, got %q", c.AdvisorNumber)
	}
	if c.ClientNumber != "" && !isDigits(c.ClientNumber) {
		return fmt.Errorf("DATEV_CLIENT_NUMBER must be numeric, got %q", c.ClientNumber)
	}
	if c.FiscalYearStart != "" {
		if _, err := ParseDay(c.FiscalYearStart); err != nil {
			return fmt.Errorf("DATEV_FISCAL_YEAR_START: %w", err)
		}
	}
	if c.RecordSource == "sheets" && c.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is required when RECORD_SOURCE is sheets")
	}
	return nil
}

// HeaderSettings returns the configured DATEV header overrides.
func (c *Config) HeaderSettings() datev.HeaderSettings {
	s := datev.HeaderSettings{
		AdvisorNumber: c.AdvisorNumber,
		ClientNumber:  c.ClientNumber,
		BatchLabel:    c.BatchLabel,
		DiktatCode:    c.DiktatCode,
	}
	if t, err := ParseDay(c.FiscalYearStart); err == nil {
		s.FiscalYearStart = &t
	}
	return s
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// ParseDay reads a calendar day given as YYYY-MM-DD or YYYYMMDD.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
