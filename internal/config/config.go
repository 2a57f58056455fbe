package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// FetchConfig bounds outbound page retrieval.
type FetchConfig struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBytes    int64
	PhoneRegion string
}

// BackendConfig selects the reasoning backend. Provider "none" or an empty
// APIKey runs the pipeline in degraded mode.
type BackendConfig struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	MaxTokens int64
}

// LogConfig configures the global zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL      string
	JWTSecret        string
	Port             string
	RateLimitAnalyze RateLimitConfig
	TokenTTL         time.Duration
	Fetch            FetchConfig
	Backend          BackendConfig
	Log              LogConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Port:        getEnv("PORT", "8080"),
		TokenTTL:    parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		Fetch: FetchConfig{
			Timeout:     parseDuration(getEnv("FETCH_TIMEOUT", "15s"), 15*time.Second),
			UserAgent:   os.Getenv("FETCH_USER_AGENT"),
			PhoneRegion: strings.ToUpper(getEnv("PHONE_REGION", "US")),
		},
		Backend: BackendConfig{
			Provider: strings.ToLower(getEnv("BACKEND_PROVIDER", "gemini")),
			APIKey:   os.Getenv("BACKEND_API_KEY"),
			Model:    os.Getenv("BACKEND_MODEL"),
			BaseURL:  os.Getenv("BACKEND_BASE_URL"),
			Timeout:  parseDuration(getEnv("BACKEND_TIMEOUT", "30s"), 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_ANALYZE", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_ANALYZE value: %w", err)
	}
	cfg.RateLimitAnalyze = rl

	maxBytes, err := parsePositiveInt(getEnv("FETCH_MAX_BYTES", "5242880"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_MAX_BYTES value: %w", err)
	}
	cfg.Fetch.MaxBytes = maxBytes

	maxTokens, err := parsePositiveInt(getEnv("BACKEND_MAX_TOKENS", "2048"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_MAX_TOKENS value: %w", err)
	}
	cfg.Backend.MaxTokens = maxTokens

	return cfg, nil
}

// InitLogger builds the global zap logger. Format "console" selects the
// development encoder; anything else logs JSON.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func parsePositiveInt(value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
