package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppDefaults(t *testing.T) {
	c, err := LoadApp(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 15*time.Second, c.Server.ReadTimeout)
	assert.False(t, c.Server.IsProduction())
	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.Equal(t, "configs/pricing", c.Pricing.PresetsDir)
	assert.Equal(t, 20.0, c.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, c.RateLimit.Burst)
	assert.Len(t, c.CORS.AllowedOrigins, 2)
	assert.Equal(t, 10*time.Minute, c.Cache.TTL)
	assert.Equal(t, 1024, c.Cache.MaxEntries)
}

func TestLoadAppFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  env: production
  read_timeout: 5s
database:
  driver: postgres
  dsn: postgres://localhost/solar
`), 0o644))

	t.Setenv("SOLAR_SERVER_PORT", "9100")

	c, err := LoadApp(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, c.Server.Port, "env overrides the file")
	assert.True(t, c.Server.IsProduction())
	assert.Equal(t, 5*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "postgres", c.Database.Driver)

	// A directory resolves config.yaml inside it.
	c, err = LoadApp(dir)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/solar", c.Database.DSN)
}

func TestLoadAppRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: mysql\n"), 0o644))
	_, err := LoadApp(path)
	assert.ErrorContains(t, err, "database.driver")

	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 70000\n"), 0o644))
	_, err = LoadApp(path)
	assert.ErrorContains(t, err, "server.port")
}

func TestNewLogger(t *testing.T) {
	l, err := LoggingConfig{Level: "debug", Format: "console"}.NewLogger()
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = LoggingConfig{Level: "loud"}.NewLogger()
	assert.Error(t, err)
}
