package config

import (
	"os"

	"khaata/internal/logger"
)

// Fixed relative storage locations, matching the on-disk layout the ledger
// has always used. Overridable through the environment for tests.
const (
	defaultClientsFile  = "clients.json"
	defaultInvoicesFile = "invoices.json"
	defaultProfileFile  = "config.json"
	defaultInvoiceDir   = "invoices"
)

type Config struct {
	// Storage layout
	DataDir      string // directory holding the JSON collections
	ClientsFile  string
	InvoicesFile string
	ProfileFile  string
	InvoiceDir   string // directory PDF artifacts are written to

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load builds the configuration from the environment. Every key has a
// working default, so Load never fails.
func Load() *Config {
	return &Config{
		DataDir:       getEnv("KHAATA_DATA_DIR", "."),
		ClientsFile:   getEnv("KHAATA_CLIENTS_FILE", defaultClientsFile),
		InvoicesFile:  getEnv("KHAATA_INVOICES_FILE", defaultInvoicesFile),
		ProfileFile:   getEnv("KHAATA_PROFILE_FILE", defaultProfileFile),
		InvoiceDir:    getEnv("KHAATA_INVOICE_DIR", defaultInvoiceDir),
		LogLevel:      getEnv("LOG_LEVEL", "warn"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
