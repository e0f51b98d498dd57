package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.Port)
	assert.False(t, cfg.SkipAuth)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "http://localhost:3000", cfg.Canvas.BaseURL)
	assert.Empty(t, cfg.Canvas.AccessToken)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9001")
	t.Setenv("SKIP_AUTH", "true")
	t.Setenv("CANVAS_BASE_URL", "https://canvas.example.edu")
	t.Setenv("CANVAS_CLIENT_ID", "10000000000001")
	t.Setenv("CANVAS_CLIENT_SECRET", "s3cret")
	t.Setenv("CANVAS_ACCESS_TOKEN", "tok-123")
	t.Setenv("REDIS_DB", "3")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9001, cfg.Port)
	assert.True(t, cfg.SkipAuth)
	assert.Equal(t, "https://canvas.example.edu", cfg.Canvas.BaseURL)
	assert.Equal(t, "10000000000001", cfg.Canvas.ClientID)
	assert.Equal(t, "s3cret", cfg.Canvas.ClientSecret)
	assert.Equal(t, "tok-123", cfg.Canvas.AccessToken)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.IsProd())
}

func TestNewConfigFromEnv_BadInt(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := NewConfigFromEnv()
	require.Error(t, err)
}

func TestNewConfigFromEnv_OptionsWin(t *testing.T) {
	t.Setenv("PORT", "9001")

	cfg, err := NewConfigFromEnv(WithPort(9100), WithSkipAuth())
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.True(t, cfg.SkipAuth)
}
