package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://api.geckoterminal.com/api/v2", cfg.Gecko.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.CacheTTL())
	assert.Equal(t, 90*time.Second, cfg.Server.RequestTimeoutDuration())
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9090
gecko:
  rps: 2
cache:
  ttl_secs: 60
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2.0, cfg.Gecko.RPS)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL())

	// Untouched values keep their defaults.
	assert.Equal(t, "https://api.geckoterminal.com/api/v2", cfg.Gecko.BaseURL)
}

func TestLoad_EnvPortOverride(t *testing.T) {
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_BadEnvPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty gecko url", func(c *Config) { c.Gecko.BaseURL = "" }},
		{"zero rps", func(c *Config) { c.Gecko.RPS = 0 }},
		{"zero cache ttl", func(c *Config) { c.Cache.TTLSecs = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
