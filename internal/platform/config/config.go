package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Config struct {
	Addr          string
	JWTSigningKey string

	PostgresURL string
	RedisURL    string

	Screening ScreeningConfig
}

// ScreeningConfig holds credentials and tuning for the upstream screening provider.
// Empty Username/Password means the provider is unconfigured and the pipeline
// degrades to synthetic reports.
type ScreeningConfig struct {
	BaseURL      string
	Username     string
	Password     string
	CallTimeout  time.Duration
	LoginMargin  time.Duration
	WatchlistURL string
}

// ReportCacheTTL bounds how long a postgres/redis-backed screening report is reused.
var ReportCacheTTL = 30 * 24 * time.Hour

// FromEnv builds a Config from environment variables. A local .env file is
// loaded first when present; missing files are not an error.
func FromEnv() Config {
	_ = godotenv.Load()

	addr := os.Getenv("RENTLY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Config{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		PostgresURL:   os.Getenv("POSTGRES_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		Screening: ScreeningConfig{
			BaseURL:      os.Getenv("SCREENING_BASE_URL"),
			Username:     os.Getenv("SCREENING_USERNAME"),
			Password:     os.Getenv("SCREENING_PASSWORD"),
			CallTimeout:  durationEnv("SCREENING_CALL_TIMEOUT", 10*time.Second),
			LoginMargin:  durationEnv("SCREENING_LOGIN_MARGIN", 5*time.Minute),
			WatchlistURL: os.Getenv("SCREENING_WATCHLIST_URL"),
		},
	}
}

// Configured reports whether the upstream provider has usable credentials.
func (c ScreeningConfig) Configured() bool {
	return c.BaseURL != "" && c.Username != "" && c.Password != ""
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
