package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("DATABASE_URL", "postgres://localhost/catalog")
	v.Set("JWT_SECRET", "secret")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.ReadRPS)
	assert.Equal(t, 20, cfg.WriteRPS)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshTTL)
	assert.Equal(t, 10*time.Minute, cfg.CollectionCacheTTL)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DATABASE_URL", "postgres://localhost/catalog")
	v.Set("JWT_SECRET", "secret")
	v.Set("PORT", 9090)
	v.Set("JWT_ACCESS_TTL", "5m")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	v.Set("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoad_InvalidPort(t *testing.T) {
	v := viper.New()
	v.Set("DATABASE_URL", "postgres://localhost/catalog")
	v.Set("JWT_SECRET", "secret")
	v.Set("PORT", 70000)

	_, err := Load(v)
	assert.ErrorContains(t, err, "PORT 70000 is out of range")
}
