// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default iExec container mount points for protected input and result output.
const (
	DefaultInputDir  = "/iexec_in"
	DefaultOutputDir = "/iexec_out"
)

// Config holds application configuration read from the TEE host environment.
type Config struct {
	InputDir         string // IEXEC_IN: directory containing protected input data
	OutputDir        string // IEXEC_OUT: directory for result.json and computed.json
	InputFilesNumber int    // IEXEC_INPUT_FILES_NUMBER: count of plain input files
	InputFileName1   string // IEXEC_INPUT_FILE_NAME_1: first plain input file name
	AppSecretSet     bool   // IEXEC_APP_DEVELOPER_SECRET present (value never stored)
	AppSecretLen     int
	LogLevel         string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		InputDir:         getEnv("IEXEC_IN", DefaultInputDir),
		OutputDir:        getEnv("IEXEC_OUT", DefaultOutputDir),
		InputFilesNumber: getEnvAsInt("IEXEC_INPUT_FILES_NUMBER", 0),
		InputFileName1:   getEnv("IEXEC_INPUT_FILE_NAME_1", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	// The app developer secret is for downstream integrations; only its
	// presence is recorded so it can be logged without leaking the value.
	if secret := os.Getenv("IEXEC_APP_DEVELOPER_SECRET"); secret != "" {
		cfg.AppSecretSet = true
		cfg.AppSecretLen = len(secret)
	}

	return cfg, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
