package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 30*time.Second, cfg.Server.Timeout)
	require.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	require.Equal(t, "gqlview", cfg.Otel.Service)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gqlview.yaml"), []byte(`
server:
  addr: ":9090"
  pretty: true
  timeout: 5s
  cors_origins: ["https://example.com"]
schema:
  introspection: testdata/todo.json
table:
  per_page: 20
`), 0o644))
	t.Setenv("GQLVIEW_LOG_LEVEL", "debug")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.True(t, cfg.Server.Pretty)
	require.Equal(t, 5*time.Second, cfg.Server.Timeout)
	require.Equal(t, []string{"https://example.com"}, cfg.Server.CORSOrigins)
	require.Equal(t, "testdata/todo.json", cfg.Schema.Introspection)
	require.Equal(t, 20, cfg.Table.PerPage)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadValidation(t *testing.T) {
	t.Chdir(t.TempDir())
	v := New()
	v.Set("log.level", "loud")
	_, err := Load(v, "")
	require.ErrorContains(t, err, "log.level")

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")
}
