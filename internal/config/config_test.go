package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  env: local
  port: 9090

database:
  host: localhost
  port: 3306
  user: chms
  password: devpass
  name: chms

redis:
  host: localhost
  port: 6379
  db: 1
  pool_size: 5

jwt:
  secret: file-secret
  expires_in: 30m
  refresh_in: 72h

scheduler:
  api_key: file-key

cors:
  allow_origins: "https://a.example,https://b.example"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ParsesYAML(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.App.Env)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "devpass", cfg.Database.Password)
	assert.Equal(t, 30*time.Minute, cfg.JWT.ExpiresIn.Std())
	assert.Equal(t, 72*time.Hour, cfg.JWT.RefreshIn.Std())
	assert.Equal(t, "file-key", cfg.Scheduler.APIKey)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SCHEDULER_API_KEY", "env-key")
	t.Setenv("DATABASE_PASSWORD", "env-dbpass")

	cfg, err := Load(writeTestConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "env-key", cfg.Scheduler.APIKey)
	assert.Equal(t, "env-dbpass", cfg.Database.Password)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, "app:\n  env: production\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.ExpiresIn.Std())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load(writeTestConfig(t, "jwt:\n  expires_in: soon\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t,
		"chms:devpass@tcp(localhost:3306)/chms?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DSN())
}
