package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the console and the dev server
type Config struct {
	// API holds settings for the console's HTTP client
	API APIConfig

	// Server holds settings for the local dev server
	Server ServerConfig

	// Logging holds logging-related configuration
	Logging LoggingConfig
}

// APIConfig holds settings for the platform API the console talks to
type APIConfig struct {
	BaseURL string        // API base URL including the version prefix
	Timeout time.Duration // per-request timeout

	// CredentialBackend selects where credentials persist: "file" or
	// "keyring"
	CredentialBackend string

	// TLSSkipVerify accepts self-signed certificates, for dev servers
	// behind ad-hoc TLS
	TLSSkipVerify bool
}

// ServerConfig holds dev server configuration
type ServerConfig struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// DefaultTimeout is the request timeout applied when none is configured.
const DefaultTimeout = 10 * time.Second

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	baseURL := os.Getenv("CLUSTERVIEW_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9440/api/v1"
	}

	timeout := DefaultTimeout
	if raw := os.Getenv("CLUSTERVIEW_API_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CLUSTERVIEW_API_TIMEOUT %q: %w", raw, err)
		}
		timeout = parsed
	}

	credBackend := os.Getenv("CLUSTERVIEW_CRED_BACKEND")
	if credBackend == "" {
		credBackend = "file"
	}

	skipVerify := false
	if raw := os.Getenv("CLUSTERVIEW_TLS_SKIP_VERIFY"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CLUSTERVIEW_TLS_SKIP_VERIFY %q: %w", raw, err)
		}
		skipVerify = parsed
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "9440"
	}

	// Dev server database - default to a local sqlite file, allow override
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "clusterview.sqlite"
	}

	// Logging configuration - console output suits an interactive client
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		API: APIConfig{
			BaseURL:           baseURL,
			Timeout:           timeout,
			CredentialBackend: credBackend,
			TLSSkipVerify:     skipVerify,
		},
		Server: ServerConfig{
			Port:        port,
			DatabaseURL: dbURL,
			JWTSecret:   os.Getenv("JWT_SECRET"),
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
