package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "auth_token", cfg.Session.TokenKey)
	assert.Equal(t, "refresh_token", cfg.Session.RefreshTokenKey)
	assert.Equal(t, "user", cfg.Session.UserKey)
	assert.Equal(t, 5*time.Minute, cfg.Cache.StaleAfter)
	assert.Equal(t, 10*time.Minute, cfg.Cache.EvictAfter)
	assert.Equal(t, 3, cfg.Cache.ReadRetries)
	assert.False(t, cfg.Features.Analytics)
	assert.False(t, cfg.Features.ErrorReporting)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("REGISTRO_API_URL", "https://api.example.com/api/v1")
	t.Setenv("REGISTRO_APP_ENV", "production")
	t.Setenv("REGISTRO_FEATURES_ANALYTICS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api/v1", cfg.API.URL)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Features.Analytics)
}

func TestLoadRejectsBadAPIURL(t *testing.T) {
	t.Setenv("REGISTRO_API_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.url")
}

func TestLoadRejectsInvertedWindows(t *testing.T) {
	t.Setenv("REGISTRO_CACHE_STALE_AFTER", "20m")
	t.Setenv("REGISTRO_CACHE_EVICT_AFTER", "10m")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stale_after")
}
