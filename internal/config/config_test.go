package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LIBRARY_PAGE_SIZE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 500, cfg.Library.PageSize)
	assert.True(t, cfg.Database.MigrateOnBoot)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LIBRARY_PAGE_SIZE", "50")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 50, cfg.Library.PageSize)
	assert.False(t, cfg.Database.MigrateOnBoot)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoad_InvalidPageSize(t *testing.T) {
	t.Setenv("LIBRARY_PAGE_SIZE", "-1")

	_, err := Load()
	assert.ErrorContains(t, err, "LIBRARY_PAGE_SIZE")
}

func TestLoad_ProductionRequiresPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PASSWORD")
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_NAME", "library_test")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, "library_test", cfg.DBName)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	t.Setenv("DB_CONNECT_TIMEOUT", "soon")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT")
}
