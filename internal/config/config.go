package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration (dev collaborator server)
	Server ServerConfig

	// Backend configuration (comment API collaborator)
	Backend BackendConfig

	// Moderation configuration (toxicity scoring service)
	Moderation ModerationConfig

	// Debounce configuration (live validation while typing)
	Debounce DebounceConfig

	// Clock configuration (relative timestamp refresh)
	Clock ClockConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings for the dev collaborator server
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// BackendConfig holds comment backend connection settings
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// ModerationConfig holds scoring service settings.
//
// FailOpen keeps comments flowing when the scoring service is down:
// an unreachable analyzer yields a valid verdict instead of blocking
// submission. This is a deliberate availability trade-off and stays
// configurable rather than hard-coded.
type ModerationConfig struct {
	AnalyzerURL        string
	RequestTimeout     time.Duration
	AttributeThreshold float64
	ReviewThreshold    float64
	FailOpen           bool
}

// DebounceConfig holds live-validation scheduling settings
type DebounceConfig struct {
	Interval time.Duration
}

// ClockConfig holds the shared relative-time ticker settings
type ClockConfig struct {
	TickInterval time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:8080"),
			RequestTimeout: getDurationEnv("BACKEND_REQUEST_TIMEOUT", 10*time.Second),
		},
		Moderation: ModerationConfig{
			AnalyzerURL:        getEnv("MODERATION_ANALYZER_URL", "http://localhost:8080/comment-analysis/analyze"),
			RequestTimeout:     getDurationEnv("MODERATION_REQUEST_TIMEOUT", 5*time.Second),
			AttributeThreshold: getFloatEnv("MODERATION_ATTRIBUTE_THRESHOLD", 0.7),
			ReviewThreshold:    getFloatEnv("MODERATION_REVIEW_THRESHOLD", 0.5),
			FailOpen:           getBoolEnv("MODERATION_FAIL_OPEN", true),
		},
		Debounce: DebounceConfig{
			Interval: getDurationEnv("DEBOUNCE_INTERVAL", 1000*time.Millisecond),
		},
		Clock: ClockConfig{
			TickInterval: getDurationEnv("CLOCK_TICK_INTERVAL", 1000*time.Millisecond),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Moderation.AnalyzerURL == "" {
		return fmt.Errorf("MODERATION_ANALYZER_URL is required")
	}
	if c.Moderation.AttributeThreshold < c.Moderation.ReviewThreshold {
		return fmt.Errorf("MODERATION_ATTRIBUTE_THRESHOLD must not be below MODERATION_REVIEW_THRESHOLD")
	}
	if c.Debounce.Interval <= 0 {
		return fmt.Errorf("DEBOUNCE_INTERVAL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
