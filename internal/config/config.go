// Package config turns viper settings into the typed configuration used by the server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Host string
	Port int

	DatabaseURL string

	LogLevel  string
	LogFormat string

	ReadRPS        int
	WriteRPS       int
	MaxBodyBytes   int64
	AllowedOrigins []string

	JWTSecret     string
	JWTIssuer     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	// RedisURL is optional; without it shared collections are read straight from Postgres.
	RedisURL           string
	CollectionCacheTTL time.Duration
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SetDefaults registers the fallback value for every setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("RATE_LIMIT_READ_RPS", 100)
	v.SetDefault("RATE_LIMIT_WRITE_RPS", 20)
	v.SetDefault("MAX_REQUEST_BODY_BYTES", 1048576)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("JWT_ISSUER", "catalog-api")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("JWT_REFRESH_TTL", "168h")
	v.SetDefault("COLLECTION_CACHE_TTL", "10m")
}

// Load reads the configuration from v. DATABASE_URL and JWT_SECRET are required.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		Host:               v.GetString("HOST"),
		Port:               v.GetInt("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		ReadRPS:            v.GetInt("RATE_LIMIT_READ_RPS"),
		WriteRPS:           v.GetInt("RATE_LIMIT_WRITE_RPS"),
		MaxBodyBytes:       v.GetInt64("MAX_REQUEST_BODY_BYTES"),
		AllowedOrigins:     ParseAllowedOrigins(v.GetString("CORS_ALLOWED_ORIGINS")),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		JWTAccessTTL:       v.GetDuration("JWT_ACCESS_TTL"),
		JWTRefreshTTL:      v.GetDuration("JWT_REFRESH_TTL"),
		RedisURL:           v.GetString("REDIS_URL"),
		CollectionCacheTTL: v.GetDuration("COLLECTION_CACHE_TTL"),
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", cfg.Port))
	}
	if cfg.JWTAccessTTL <= 0 || cfg.JWTRefreshTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive durations"))
	}
	if cfg.ReadRPS <= 0 || cfg.WriteRPS <= 0 {
		errs = append(errs, errors.New("rate limits must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseAllowedOrigins splits a comma-separated origin list. An empty string allows every origin.
func ParseAllowedOrigins(s string) []string {
	if s == "" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
