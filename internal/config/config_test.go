package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Mode)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:@localhost:5432/quotedesk?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_MODE", "local")
	t.Setenv("CACHE_PATH", "/tmp/cache.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://quotes.example.com")
	t.Setenv("SERVER_TIMEOUT", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageLocal, cfg.Storage.Mode)
	assert.Equal(t, "/tmp/cache.db", cfg.Storage.CachePath)
	assert.Equal(t, []string{"http://localhost:5173", "https://quotes.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
}

func TestLoad_InvalidStorageMode(t *testing.T) {
	t.Setenv("STORAGE_MODE", "s3")

	_, err := config.Load()
	require.Error(t, err)
}
