package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5004, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "konnect_db.sqlite", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, "http://localhost:5004", cfg.Client.BaseURL)
	assert.Equal(t, float64(20), cfg.Client.RateLimit)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: 8080
  read_timeout: 3s
database:
  dsn: "file:test.db?_foreign_keys=on"
logger:
  level: debug
  format: json
seed:
  enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o644))
	t.Setenv("KONNECT_LOGGER_LEVEL", "warn")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "file:test.db?_foreign_keys=on", cfg.Database.DSN)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.False(t, cfg.Seed.Enabled)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server: [port"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
