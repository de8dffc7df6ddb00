package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NATS_URL", "METRICS_ADDRESS", "LOG_LEVEL", "ENV", "VISION_WORKERS", "VISION_SUGGESTIONS"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
nats:
  url: nats://file:4222
observability:
  metrics_address: ":9100"
  log_level: debug
pipeline:
  workers: 3
  suggestion_limit: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "nats://file:4222", cfg.NATS.URL)
	require.Equal(t, ":9100", cfg.Observability.MetricsAddress)
	require.Equal(t, "debug", cfg.Observability.LogLevel)
	require.Equal(t, "development", cfg.Observability.Environment)
	require.Equal(t, 3, cfg.Pipeline.Workers)
	require.Equal(t, 5, cfg.Pipeline.SuggestionLimit)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "nats:\n  url: nats://file:4222\npipeline:\n  workers: 3\n")
	t.Setenv("NATS_URL", "nats://env:4222")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("VISION_WORKERS", "8")
	t.Setenv("VISION_SUGGESTIONS", "-1")
	t.Setenv("ENV", "prod")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "nats://env:4222", cfg.NATS.URL)
	require.Equal(t, "warn", cfg.Observability.LogLevel)
	require.Equal(t, "prod", cfg.Observability.Environment)
	require.Equal(t, 8, cfg.Pipeline.Workers)
	require.Equal(t, -1, cfg.Pipeline.SuggestionLimit)
}

func TestLoadConfig_EnvFallback(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Observability.LogLevel)
	require.Equal(t, runtime.NumCPU(), cfg.Pipeline.Workers)
	require.Zero(t, cfg.Pipeline.SuggestionLimit)
	require.Error(t, cfg.Validate())
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(writeConfig(t, "pipeline: [\n"))
	require.ErrorContains(t, err, "failed to unmarshal config")

	t.Setenv("VISION_WORKERS", "many")
	_, err = LoadConfig(writeConfig(t, "nats:\n  url: x\n"))
	require.ErrorContains(t, err, "VISION_WORKERS")
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{NATS: NATSConfig{URL: "nats://x"}, Observability: ObservabilityConfig{LogLevel: "loud"}}
	require.ErrorContains(t, cfg.Validate(), "unknown log level")
}
