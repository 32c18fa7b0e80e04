package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Executor: ExecutorConfig{MaxConcurrency: 256, Introspection: true},
		Tracing:  TracingConfig{Service: "gqlcore"},
	}, *cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
executor:
  max_concurrency: 8
  introspection: false
metrics:
  address: ":9090"
`), 0o644))
	t.Setenv("GQLCORE_EXECUTOR_SUBSCRIPTION_BUFFER", "16")
	t.Setenv("GQLCORE_TRACING_ENDPOINT", "localhost:4317")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Executor.MaxConcurrency)
	assert.Equal(t, 16, cfg.Executor.SubscriptionBuffer)
	assert.False(t, cfg.Executor.Introspection)
	assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gqlcore.yaml"), []byte("tracing:\n  service: api\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "api", cfg.Tracing.Service)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o644))
	_, err = Load(path)
	assert.EqualError(t, err, `config: log.format must be text or json, got "xml"`)
}
