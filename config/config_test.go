package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, ".", "custom.yaml", `
driver: postgres
statement_cache_size: 32
log:
  level: debug
  format: json
connection:
  host: db.internal
  port: 5432
  database: shop
  username: app
  connect_timeout: 5s
  pool:
    max_open: 20
  params:
    application_name: querykit
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "db.internal", cfg.Connection.Host)
	assert.Equal(t, 5432, cfg.Connection.Port)
	assert.Equal(t, 5*time.Second, cfg.Connection.ConnectTimeout)
	assert.Equal(t, 20, cfg.Connection.Pool.MaxOpen)
	assert.Equal(t, "querykit", cfg.Connection.Params["application_name"])
	assert.Equal(t, 32, cfg.Connection.StatementCacheSize)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Driver)
	assert.Equal(t, 256, cfg.StatementCacheSize)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, ".", "querykit.yaml", "driver: mysql\nconnection:\n  host: from-file\n")
	t.Setenv("QUERYKIT_DRIVER", "sqlite")
	t.Setenv("QUERYKIT_CONNECTION_HOST", "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, "from-env", cfg.Connection.Host)
}

func TestLoadDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, ".", ".env", "QUERYKIT_CONNECTION_DATABASE=base\nQUERYKIT_DRIVER=pq\n")
	writeFile(t, ".", ".env.local", "QUERYKIT_CONNECTION_DATABASE=local\n")
	// godotenv writes to the process environment; register cleanup for both keys.
	t.Setenv("QUERYKIT_CONNECTION_DATABASE", "")
	t.Setenv("QUERYKIT_DRIVER", "")
	os.Unsetenv("QUERYKIT_CONNECTION_DATABASE")
	os.Unsetenv("QUERYKIT_DRIVER")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "pq", cfg.Driver)
	assert.Equal(t, "local", cfg.Connection.Database)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "exec_id", "01J")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "01J", entry["exec_id"])

	_, err = NewLogger(&buf, LogConfig{Format: "xml"})
	assert.Error(t, err)
	_, err = NewLogger(&buf, LogConfig{Level: "loud"})
	assert.Error(t, err)
}
