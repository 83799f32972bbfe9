package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"HTTP_PORT", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL",
	"CATALOG_SOURCE", "CATALOG_PATH", "CATALOG_DSN", "MIGRATIONS_PATH",
	"STORAGE_BACKEND", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_TTL",
	"MONGO_URI", "MONGO_DB_NAME", "BREAKER_ENABLED",
	"KAFKA_BROKERS", "CHECKOUT_TOPIC", "KAFKA_GROUP_ID", "SEARCH_WORKERS",
	"CART_MAX_SESSIONS", "CART_IDLE_TTL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, CatalogJSON, cfg.CatalogSource)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.RedisTTL)
	assert.Equal(t, "checkout-completed", cfg.CheckoutTopic)
	assert.True(t, cfg.BreakerEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Zero(t, cfg.SearchWorkers)
	assert.Equal(t, 10000, cfg.CartMaxSessions)
	assert.Equal(t, 30*time.Minute, cfg.CartIdleTTL)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CATALOG_SOURCE", "SQLite")
	t.Setenv("CATALOG_DSN", "file:test.db")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_TTL", "15m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SEARCH_WORKERS", "4")
	t.Setenv("BREAKER_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, CatalogSQLite, cfg.CatalogSource)
	assert.Equal(t, StorageRedis, cfg.StorageBackend)
	assert.Equal(t, 15*time.Minute, cfg.RedisTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 4, cfg.SearchWorkers)
	assert.False(t, cfg.BreakerEnabled)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"CATALOG_SOURCE", "csv", "CATALOG_SOURCE"},
		{"STORAGE_BACKEND", "etcd", "STORAGE_BACKEND"},
		{"REQUEST_TIMEOUT", "soon", "REQUEST_TIMEOUT"},
		{"REQUEST_TIMEOUT", "-1s", "REQUEST_TIMEOUT must be positive"},
		{"SEARCH_WORKERS", "many", "SEARCH_WORKERS"},
		{"SEARCH_WORKERS", "-2", "SEARCH_WORKERS must not be negative"},
		{"BREAKER_ENABLED", "maybe", "BREAKER_ENABLED"},
		{"CART_MAX_SESSIONS", "0", "CART_MAX_SESSIONS must be positive"},
		{"CART_IDLE_TTL", "-5m", "CART_IDLE_TTL must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=7070\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	// godotenv does not override variables that are set, even to ""
	os.Unsetenv("HTTP_PORT")

	require.NoError(t, LoadEnv(path))
	t.Cleanup(func() { os.Unsetenv("HTTP_PORT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.HTTPPort)
	assert.Equal(t, "warn", cfg.LogLevel)

	assert.NoError(t, LoadEnv(filepath.Join(dir, "missing.env")))
}
