// Package config loads server configuration from the environment.
//
// A .env file in the working directory is read first when present;
// variables already set in the environment take precedence over it.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config aggregates application configuration values.
type Config struct {
	// Env is the deployment environment; "production" requires SHARE_SECRET.
	Env     string
	HTTP    HTTPConfig
	Storage StorageConfig
	Share   ShareConfig
	Settle  SettleConfig
	Logging LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	DBPath string
}

// ShareConfig controls share link tokens.
type ShareConfig struct {
	Secret string
	TTL    time.Duration

	// SecretGenerated is set when no SHARE_SECRET was configured and a random
	// one was generated. Links then stop working after a restart.
	SecretGenerated bool
}

// SettleConfig tunes the settlement engine.
type SettleConfig struct {
	Tolerance decimal.Decimal
	Places    int32
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

const (
	envProduction = "production"

	defaultEnv             = "development"
	defaultPort            = 8080
	defaultDBPath          = "./data/tripsplit.db"
	defaultShareTTL        = 7 * 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
	defaultTolerance       = "0.01"
	defaultPlaces          = 2
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := Config{
		Env: valueOrDefault("APP_ENV", defaultEnv),
		HTTP: HTTPConfig{
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Storage: StorageConfig{
			DBPath: valueOrDefault("DB_PATH", defaultDBPath),
		},
		Share: ShareConfig{
			Secret: os.Getenv("SHARE_SECRET"),
			TTL:    defaultShareTTL,
		},
		Logging: LoggingConfig{
			Level:  valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format: valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
		},
	}

	port, err := parsePort("PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	if cfg.HTTP.MetricsEnabled, err = parseBool("METRICS_ENABLED", true); err != nil {
		return Config{}, err
	}

	if cfg.HTTP.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Share.TTL, err = parseDuration("SHARE_TTL", defaultShareTTL); err != nil {
		return Config{}, err
	}

	tolerance, err := decimal.NewFromString(valueOrDefault("SETTLE_TOLERANCE", defaultTolerance))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SETTLE_TOLERANCE: %w", err)
	}
	if tolerance.IsNegative() {
		return Config{}, fmt.Errorf("SETTLE_TOLERANCE must not be negative, got %s", tolerance)
	}
	cfg.Settle.Tolerance = tolerance

	places, err := parseInt("SETTLE_PLACES", defaultPlaces)
	if err != nil {
		return Config{}, err
	}
	if places < 0 || places > 8 {
		return Config{}, fmt.Errorf("SETTLE_PLACES must be between 0 and 8, got %d", places)
	}
	cfg.Settle.Places = int32(places)

	if cfg.Share.Secret == "" {
		if cfg.Env == envProduction {
			return Config{}, fmt.Errorf("SHARE_SECRET is required when APP_ENV=%s", envProduction)
		}
		cfg.Share.Secret = randomSecret()
		cfg.Share.SecretGenerated = true
	}

	return cfg, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate share secret: %v", err))
	}
	return hex.EncodeToString(b)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		return val, nil
	}
	return fallback, nil
}

func parseInt(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		return val, nil
	}
	return fallback, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return d, nil
	}
	return fallback, nil
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
