package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "assetdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.Backend.DevURL)
	assert.Empty(t, cfg.Backend.ProdURL)
	assert.Equal(t, "3s", cfg.Backend.ProbeTimeout)
	assert.Empty(t, cfg.Session.Path)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
backend:
  dev_url: http://localhost:9000/api/v1
  prod_url: https://api.assetmart.example/api/v1
  probe_timeout: 5s
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api/v1", cfg.Backend.DevURL)
	assert.Equal(t, "https://api.assetmart.example/api/v1", cfg.Backend.ProdURL)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeoutDuration())
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
backend:
  prod_url: https://file.example/api/v1
`)
	t.Setenv("ASSETDESK_BACKEND_PROD_URL", "https://env.example/api/v1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example/api/v1", cfg.Backend.ProdURL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad scheme", "backend:\n  dev_url: ftp://example.com\n"},
		{"missing host", "backend:\n  prod_url: https://\n"},
		{"bad timeout", "backend:\n  probe_timeout: fast\n"},
		{"bad log level", "logging:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestCandidatesOrder(t *testing.T) {
	cfg := &Config{Backend: BackendConfig{
		DevURL:  "http://localhost:8000/api/v1",
		ProdURL: "https://api.assetmart.example/api/v1",
	}}

	candidates := cfg.Candidates()
	require.Len(t, candidates, 2)
	assert.Equal(t, "dev", candidates[0].Name)
	assert.Equal(t, "prod", candidates[1].Name)
}

func TestCandidatesSkipUnset(t *testing.T) {
	cfg := &Config{Backend: BackendConfig{
		ProdURL: "https://api.assetmart.example/api/v1",
	}}

	candidates := cfg.Candidates()
	require.Len(t, candidates, 1)
	assert.Equal(t, "prod", candidates[0].Name)

	cfg = &Config{}
	assert.Empty(t, cfg.Candidates())
}

func TestProbeTimeoutFallback(t *testing.T) {
	cfg := &Config{Backend: BackendConfig{ProbeTimeout: "nonsense"}}
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeoutDuration())
}

func TestSessionPath(t *testing.T) {
	cfg := &Config{Session: SessionConfig{Path: "/tmp/custom.db"}}
	path, err := cfg.SessionPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", path)

	cfg = &Config{}
	path, err = cfg.SessionPath()
	require.NoError(t, err)
	assert.Contains(t, path, filepath.Join(".assetdesk", "session.db"))
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &Config{Logging: LoggingConfig{Level: tt.level}}
		assert.Equal(t, tt.want, cfg.SlogLevel())
	}
}
