package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, 1.0, cfg.Search.MinRadiusKm)
	assert.Equal(t, 64.0, cfg.Search.MaxRadiusKm)
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, 100, cfg.Search.MaxLimit)
	assert.Equal(t, 5*time.Minute, cfg.Cache.NearbyCacheTTL)
	assert.Equal(t, "shop-cache-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 3, cfg.Worker.MaxRetries)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}

func TestLoadFile_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9090\nDB_HOST=db\nDB_PORT=5433\nDB_USER=arcade\nDB_PASSWORD=secret\nDB_NAME=arcades\n" +
		"SEARCH_MAX_RADIUS_KM=32\nCACHE_NEARBY_TTL=60\nWORKER_ENABLED=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 32.0, cfg.Search.MaxRadiusKm)
	assert.Equal(t, time.Minute, cfg.Cache.NearbyCacheTTL)
	assert.True(t, cfg.Worker.Enabled)
	assert.Equal(t, "host=db port=5433 user=arcade password=secret dbname=arcades sslmode=disable", cfg.GetDatabaseDSN())
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=info\n"), 0o600))
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile_InvalidRadiusRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SEARCH_MIN_RADIUS_KM=10\nSEARCH_MAX_RADIUS_KM=5\n"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
