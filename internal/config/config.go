package config

import (
	"os"
	"strconv"

	"finboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Ops    OpsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds dataset loading settings
type DataConfig struct {
	File     string
	PageSize int
}

// OpsConfig holds the internal operations listener settings
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8090"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			File:     getEnvOrDefault("DATA_FILE", "data/df_top.csv"),
			PageSize: getEnvIntOrDefault("TABLE_PAGE_SIZE", 10),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("DATA_FILE must not be empty")
	}
	if config.Data.PageSize < 1 {
		return errors.ConfigInvalid("TABLE_PAGE_SIZE must be at least 1")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	return nil
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
