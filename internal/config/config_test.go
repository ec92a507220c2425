package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.HasDatabase())
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, DefaultMLBAPIBaseURL, cfg.MLBAPIBaseURL)
	assert.Equal(t, DefaultPagePrefixes, cfg.PagePrefixes)
	assert.Equal(t, 10*time.Minute, cfg.ContextTTL)
	assert.True(t, cfg.CacheEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/streamfinder")
	t.Setenv("API_PORT", "9090")
	t.Setenv("MLB_API_BASE_URL", "http://127.0.0.1:1234/api/v1/")
	t.Setenv("CORS_ALLOW_ORIGINS", "chrome-extension://abc, ,http://example.com")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.HasDatabase())
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, "http://127.0.0.1:1234/api/v1", cfg.MLBAPIBaseURL, "trailing slash should be trimmed")
	assert.Equal(t, []string{"chrome-extension://abc", "http://example.com"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.RateLimitEnabled)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_PORT")
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "streamfinder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_port: 7000
mlb_api_base_url: http://mlb.test/api/v1
page_prefixes:
  - example.com/roster/
context_ttl_seconds: 30
output_dir: /tmp/out
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("MLB_API_BASE_URL", "")
	t.Setenv("OUTPUT_DIR", "/srv/out")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.APIPort)
	assert.Equal(t, "http://mlb.test/api/v1", cfg.MLBAPIBaseURL)
	assert.Equal(t, []string{"example.com/roster/"}, cfg.PagePrefixes)
	assert.Equal(t, 30*time.Second, cfg.ContextTTL)
	assert.Equal(t, "/srv/out", cfg.OutputDir, "environment should win over the file")
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
