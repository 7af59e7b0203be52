// Package config provides configuration management for the snsclone client.
// It loads and validates configuration values from environment variables, with
// support for required variables, default values, and collective error reporting:
// every problem is collected and returned in one error instead of failing on the first.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// APIConfig holds settings for talking to the backend REST API.
type APIConfig struct {
	BaseURL    string        // Base URL of the backend, always ends with "/"
	AuthScheme string        // Authorization header scheme, e.g. "JWT" or "Bearer"
	Timeout    time.Duration // Per-request timeout
	RateLimit  float64       // Requests per second, 0 means unlimited
	RateBurst  int           // Burst size for the rate limiter
}

// SessionConfig holds settings for the durable session token store.
type SessionConfig struct {
	DBPath  string        // SQLite file holding the session token
	Timeout time.Duration // Timeout for opening/pinging the store
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // console or json
}

// MockConfig holds settings for the in-memory reference backend (`snsclone serve`).
type MockConfig struct {
	Port                 string
	JWTSecret            string        // Secret key for signing JWTs
	AccessTokenDuration  time.Duration // Duration for access tokens
	RefreshTokenDuration time.Duration // Duration for refresh tokens
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	API     *APIConfig
	Session *SessionConfig
	Log     *LogConfig
	Mock    *MockConfig
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
// Uses defaultValue if not set or if parsing fails. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// Helper function to get an optional environment variable parsed as a float.
func getOptionalEnvFloat(key string, defaultValue float64, errors *[]string) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueFloat, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected number, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueFloat
}

// Helper function to get an optional environment variable parsed as time.Duration.
// `time.ParseDuration` expects a string like "15m", "1h30s".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// normalizeBaseURL checks that raw is an absolute http(s) URL and forces a trailing slash,
// so endpoint paths can be appended verbatim.
func normalizeBaseURL(raw string, errors *[]string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		*errors = append(*errors, fmt.Sprintf("invalid value for API_BASE_URL: expected absolute URL, got '%s'", raw))
		return raw
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		*errors = append(*errors, fmt.Sprintf("invalid value for API_BASE_URL: unsupported scheme '%s'", u.Scheme))
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".snsclone", "session.db")
	}
	return filepath.Join(home, ".snsclone", "session.db")
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
// The mock backend secret is not required here; see RequireMock.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// API Configuration
	apiConfig := &APIConfig{
		BaseURL:    normalizeBaseURL(getOptionalEnv("API_BASE_URL", "http://localhost:8000/"), &errors),
		AuthScheme: getOptionalEnv("API_AUTH_SCHEME", "JWT"),
		Timeout:    getOptionalEnvDuration("API_TIMEOUT", 30*time.Second, &errors),
		RateLimit:  getOptionalEnvFloat("API_RATE_LIMIT", 0, &errors),
		RateBurst:  getOptionalEnvInt("API_RATE_BURST", 1, &errors),
	}
	if apiConfig.RateLimit < 0 {
		errors = append(errors, fmt.Sprintf("API_RATE_LIMIT must not be negative, got %v", apiConfig.RateLimit))
	}
	if apiConfig.RateBurst < 1 {
		errors = append(errors, fmt.Sprintf("API_RATE_BURST must be at least 1, got %d", apiConfig.RateBurst))
	}

	// Session Configuration
	sessionConfig := &SessionConfig{
		DBPath:  getOptionalEnv("SESSION_DB_PATH", defaultSessionPath()),
		Timeout: getOptionalEnvDuration("SESSION_DB_TIMEOUT", 5*time.Second, &errors),
	}

	// Log Configuration
	logConfig := &LogConfig{
		Level:  strings.ToLower(getOptionalEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(getOptionalEnv("LOG_FORMAT", "console")),
	}
	switch logConfig.Level {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid value for LOG_LEVEL: '%s'", logConfig.Level))
	}
	if logConfig.Format != "console" && logConfig.Format != "json" {
		errors = append(errors, fmt.Sprintf("invalid value for LOG_FORMAT: '%s'", logConfig.Format))
	}

	// Mock backend Configuration
	mockConfig := &MockConfig{
		Port:                 getOptionalEnv("MOCK_PORT", "8000"),
		JWTSecret:            getOptionalEnv("MOCK_JWT_SECRET", ""),
		AccessTokenDuration:  getOptionalEnvDuration("MOCK_ACCESS_TOKEN_DURATION", 15*time.Minute, &errors),
		RefreshTokenDuration: getOptionalEnvDuration("MOCK_REFRESH_TOKEN_DURATION", 168*time.Hour, &errors), // 7 days
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		API:     apiConfig,
		Session: sessionConfig,
		Log:     logConfig,
		Mock:    mockConfig,
	}, nil
}

// RequireMock checks the variables only the mock backend needs.
func (c *AppConfig) RequireMock() error {
	var errors []string
	c.Mock.JWTSecret = getRequiredEnv("MOCK_JWT_SECRET", &errors)
	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}
