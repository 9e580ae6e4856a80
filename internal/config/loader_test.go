package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewLoader_WithoutConfigFile(t *testing.T) {
	loader, err := NewLoader("")
	require.NoError(t, err)

	cfg, err := loader.Get()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "dev", cfg.Version)
	assert.Equal(t, 0, cfg.DefaultOrder)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
	assert.Empty(t, cfg.Filters)
}

func TestNewLoader_WithEnvironmentVariables(t *testing.T) {
	t.Setenv("FILTERKIT_OBSERVABILITY__LOG_LEVEL", "debug")
	t.Setenv("FILTERKIT_DEFAULT_ORDER", "25")

	loader, err := NewLoader("")
	require.NoError(t, err)

	cfg, err := loader.Get()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, 25, cfg.DefaultOrder)
	// Other defaults still apply
	assert.Equal(t, "json", cfg.Observability.LogFormat)
}

func TestNewLoader_EventLogging(t *testing.T) {
	path := writeFile(t, "filterkit.yaml", `
observability:
  log_level: warn
  activation:
    log_level: debug
  resolution:
    enabled: false
`)

	loader, err := NewLoader(path)
	require.NoError(t, err)

	cfg, err := loader.Get()
	require.NoError(t, err)

	require.NotNil(t, cfg.Observability.Activation)
	assert.Equal(t, "debug", cfg.Observability.Activation.LogLevel)
	require.NotNil(t, cfg.Observability.Resolution)
	require.NotNil(t, cfg.Observability.Resolution.Enabled)
	assert.False(t, *cfg.Observability.Resolution.Enabled)
}

func TestNewLoader_YAMLFile(t *testing.T) {
	path := writeFile(t, "filterkit.yaml", `
version: 2.0.0
variables:
  env: prod
filters:
  - name: request_id
  - name: version_header
    kind: service
    order: -10
    reusable: true
  - name: noop
    when: vars.env == "dev"
`)

	loader, err := NewLoader(path)
	require.NoError(t, err)
	assert.Equal(t, path, loader.ConfigPath())

	cfg, err := loader.Get()
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", cfg.Version)
	assert.Equal(t, "prod", cfg.Variables["env"])
	require.Len(t, cfg.Filters, 3)

	assert.Equal(t, "request_id", cfg.Filters[0].Name)
	assert.Nil(t, cfg.Filters[0].Order)

	assert.Equal(t, KindService, cfg.Filters[1].Kind)
	require.NotNil(t, cfg.Filters[1].Order)
	assert.Equal(t, -10, *cfg.Filters[1].Order)
	assert.True(t, cfg.Filters[1].Reusable)

	assert.Equal(t, `vars.env == "dev"`, cfg.Filters[2].When)
}

func TestNewLoader_JSONAndTOMLFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    "filterkit.json",
			content: `{"version": "3.1.0", "filters": [{"name": "noop", "order": 4}]}`,
		},
		{
			name: "toml",
			file: "filterkit.toml",
			content: `version = "3.1.0"

[[filters]]
name = "noop"
order = 4
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := NewLoader(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			cfg, err := loader.Get()
			require.NoError(t, err)

			assert.Equal(t, "3.1.0", cfg.Version)
			require.Len(t, cfg.Filters, 1)
			require.NotNil(t, cfg.Filters[0].Order)
			assert.Equal(t, 4, *cfg.Filters[0].Order)
		})
	}
}

func TestNewLoader_UnsupportedFormat(t *testing.T) {
	_, err := NewLoader(writeFile(t, "filterkit.ini", "version=1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestNewLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLoaderWithFlags(t *testing.T) {
	t.Setenv("FILTERKIT_OBSERVABILITY__LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--log-level", "error", "--default-order", "7"}))

	loader, err := NewLoaderWithFlags("", flags)
	require.NoError(t, err)

	cfg, err := loader.Get()
	require.NoError(t, err)

	// Flags beat environment variables
	assert.Equal(t, "error", cfg.Observability.LogLevel)
	assert.Equal(t, 7, cfg.DefaultOrder)
	// Unset flags do not override defaults
	assert.Equal(t, "json", cfg.Observability.LogFormat)
	assert.Equal(t, "dev", cfg.Version)
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "observability.log_level", envTransform("FILTERKIT_OBSERVABILITY__LOG_LEVEL"))
	assert.Equal(t, "default_order", envTransform("FILTERKIT_DEFAULT_ORDER"))
}
