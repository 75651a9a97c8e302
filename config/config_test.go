package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "APP_PORT=8080\nDB_HOST=db.internal\nDB_NAME=assistencia\nREDIS_LOOKUP_TTL=30s\nDB_SERIALIZE_PERSON_IDS=false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "assistencia", cfg.DB.Name)
	assert.Equal(t, 30*time.Second, cfg.Redis.LookupTTL)
	assert.False(t, cfg.DB.SerializePersonIDs)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, 100, cfg.DB.MaxOpenConns)
	assert.True(t, cfg.DB.SerializePersonIDs)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.LookupTTL)
	assert.Equal(t, "*", cfg.HTTP.AllowedOrigin)
	assert.False(t, cfg.HTTP.TrustProxyHeaders)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_USER=from_file\n"), 0o600))
	t.Setenv("DB_USER", "from_env")

	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.DB.User)
}
