package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "session_key: secret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Listen)
	assert.Equal(t, "http://localhost:3000", cfg.Backend.URL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 0, cfg.SessionMaxAge)
	assert.Equal(t, 31536000, cfg.ThemeMaxAge)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
	assert.True(t, cfg.Views.CacheEnabled)
	assert.Equal(t, "0 * * * *", cfg.Views.CachePurgeSchedule)
	assert.False(t, cfg.Gravatar.Enabled)
}

func TestLoad_Sanitize(t *testing.T) {
	path := writeConfig(t, `
session_key: secret
backend:
  url: " http://backend:3000/ "
views:
  base_url: "http://cdn.local/app/"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:3000", cfg.Backend.URL)
	assert.Equal(t, "http://cdn.local/app", cfg.Views.BaseURL)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "session_key: secret\n")
	t.Setenv("CRUDNOTE_BACKEND_URL", "http://env-backend:4000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env-backend:4000", cfg.Backend.URL)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "missing session key",
			content: "listen: :8080\n",
			errMsg:  "session key is required",
		},
		{
			name:    "redis without url",
			content: "session_key: s\ncache:\n  type: redis\n",
			errMsg:  "Redis URL is required",
		},
		{
			name:    "unknown cache type",
			content: "session_key: s\ncache:\n  type: memcached\n",
			errMsg:  "unknown cache type",
		},
		{
			name:    "dir and base url",
			content: "session_key: s\nviews:\n  dir: ./web\n  base_url: http://x\n",
			errMsg:  "only one of views dir or views base URL",
		},
		{
			name:    "invalid cron",
			content: "session_key: s\nviews:\n  cache_purge_schedule: \"* *\"\n",
			errMsg:  "5 fields",
		},
		{
			name:    "gravatar size",
			content: "session_key: s\ngravatar:\n  enabled: true\n  size: 4096\n",
			errMsg:  "gravatar size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
