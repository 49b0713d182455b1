package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnv(t *testing.T) {
	t.Setenv("FERROHUB_TEST_PORT", "8080")

	in := []byte("port: ${FERROHUB_TEST_PORT}\nhost: ${FERROHUB_TEST_HOST:0.0.0.0}\n")
	out := string(resolveEnv(in))
	assert.Equal(t, "port: 8080\nhost: 0.0.0.0\n", out)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apiserver.yaml")
	content := `
server:
  port: ${FERROHUB_PORT:5234}
database:
  type: sqlite
  dbname: ":memory:"
jwt:
  secret_key: "0123456789abcdef0123456789abcdef"
  duration: 1h
rate_limit:
  enabled: true
  rps: 50
  burst: 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, cfgPath, err := LoadConfig[APIServerConfig](path)
	require.NoError(t, err)
	assert.Equal(t, path, cfgPath)
	assert.Equal(t, 5234, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, time.Hour, cfg.JWT.Duration)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, _, err := LoadConfig[APIServerConfig](filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
