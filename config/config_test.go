package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()
	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Confirm.TTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	t.Setenv("BACKEND_TIMEOUT", "45")
	t.Setenv("CONFIRM_TTL", "90s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://admin.example.com, https://ops.example.com,")

	cfg := LoadEnv()
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Confirm.TTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"https://admin.example.com", "https://ops.example.com"}, cfg.CORS.AllowOrigins)
}

func TestLoadEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "three")
	t.Setenv("SESSION_IDLE_TTL", "soon")
	t.Setenv("LOGGER_DISABLE_CALLER", "maybe")

	cfg := LoadEnv()
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.False(t, cfg.Logger.DisableCaller)
}
