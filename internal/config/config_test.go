package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	guideerrors "github.com/kapu/wildrift-guide-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guide.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "champions_clean", cfg.Data.Dir)
	assert.Equal(t, time.Hour, cfg.Cache.TTL())
	assert.Equal(t, "6.1f", cfg.Patch.Label)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadYAMLOverlayThenEnv(t *testing.T) {
	path := writeYAML(t, `
data:
  dir: /srv/data/champions
cache:
  ttl_minutes: 30
redis:
  enabled: true
  host: cache.internal
patch:
  label: "6.2b"
`)
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("REDIS_HOST", "redis.override")
	t.Setenv("CACHE_TTL_MINUTES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/data/champions", cfg.Data.Dir)
	assert.Equal(t, "items", cfg.Data.ItemsDir, "untouched keys keep defaults")
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL(), "unparsable env value is ignored")
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.override", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "6.2b", cfg.Patch.Label)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	t.Setenv(ConfigFileEnv, writeYAML(t, "data: [unclosed"))

	_, err := Load()
	var parseErr *guideerrors.ParseError
	require.True(t, stderrors.As(err, &parseErr))
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Config)
		field  string
	}{
		"ttl":       {func(c *Config) { c.Cache.TTLMinutes = 0 }, "CACHE_TTL_MINUTES"},
		"data dir":  {func(c *Config) { c.Data.Dir = " " }, "DATA_DIR"},
		"log level": {func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		"redis":     {func(c *Config) { c.Redis.Enabled = true; c.Redis.Port = 0 }, "REDIS_PORT"},
		"patch url": {func(c *Config) { c.Patch.FetchEnabled = true; c.Patch.SourceURL = "" }, "PATCH_SOURCE_URL"},
		"gin mode":  {func(c *Config) { c.Server.GinMode = "prod" }, "GIN_MODE"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			var vErr *guideerrors.ValidationError
			require.True(t, stderrors.As(cfg.Validate(), &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		})
	}

	assert.NoError(t, Default().Validate())
}
