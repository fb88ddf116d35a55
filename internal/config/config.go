// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"os"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	FingerprintAPIKey string
	ListenAddr        string
	DBPath            string
}

// Load reads configuration from environment variables and returns a validated
// Config. DEVICEGATE_FINGERPRINT_API_KEY is required; startup must fail fast
// without it. Optional variables with defaults: DEVICEGATE_LISTEN_ADDR
// (127.0.0.1:8080), DEVICEGATE_DB_PATH (devicegate.db).
func Load() (*Config, error) {
	apiKey := os.Getenv("DEVICEGATE_FINGERPRINT_API_KEY")
	if apiKey == "" {
		return nil, errors.New("DEVICEGATE_FINGERPRINT_API_KEY environment variable is required")
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("DEVICEGATE_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "devicegate.db"
	if v, ok := os.LookupEnv("DEVICEGATE_DB_PATH"); ok {
		dbPath = v
	}

	return &Config{
		FingerprintAPIKey: apiKey,
		ListenAddr:        listenAddr,
		DBPath:            dbPath,
	}, nil
}
