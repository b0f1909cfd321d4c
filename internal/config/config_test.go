package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Media.Enabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("STORAGE_PATH", "/tmp/feed.db")
	t.Setenv("ALLOWED_ORIGINS", "http://a,http://b")
	t.Setenv("MEDIA_ENDPOINT", "localhost:9000")
	t.Setenv("MEDIA_ACCESS_KEY", "key")
	t.Setenv("MEDIA_SECRET_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/feed.db", cfg.Storage.Path)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Media.Enabled())
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "etcd")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("PORT", "eighty")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
