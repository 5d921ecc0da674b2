package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

upload:
  max_bytes: 2048

log:
  level: debug
  format: console
  redact_names: false

report:
  title: "Returns Team"
  allowed_origins:
    - "https://tracker.example.com"

metrics:
  enabled: false
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, int64(2048), cfg.Upload.MaxBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Log.Redact())
	assert.Equal(t, "Returns Team", cfg.Report.Title)
	assert.Equal(t, []string{"https://tracker.example.com"}, cfg.Report.AllowedOrigins)
	assert.False(t, cfg.Metrics.IsEnabled())
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server: {}\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Log.Redact())
	assert.Equal(t, "Agent Performance Tracker", cfg.Report.Title)
	assert.True(t, cfg.Metrics.IsEnabled())
	assert.Equal(t, *Default(), *cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 9090\n"), 0644))

	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("UPLOAD_MAX_BYTES", "4096")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("REPORT_TITLE", "Claims")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, int64(4096), cfg.Upload.MaxBytes)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "Claims", cfg.Report.Title)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Report.AllowedOrigins)
	assert.False(t, cfg.Metrics.IsEnabled())
}

func TestLoadFromEnvMissingFile(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port, "invalid override ignored")
}
