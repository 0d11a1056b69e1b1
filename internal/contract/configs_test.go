package contract

import (
	"os"
	"testing"
	"time"

	"github.com/huangsam/launchpad/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUpstream() UpstreamConfig {
	return UpstreamConfig{
		APIKey:       "secret",
		BaseURL:      "https://api.dune.com/api/v1",
		APIKeyHeader: "X-Dune-API-Key",
		TimeoutSec:   DefaultTimeoutSec,
		Timeout:      DefaultTimeoutSec * time.Second,
	}
}

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:      DefaultResultLimit,
		Output:     "markdown",
		Color:      "no",
		LogLevel:   "info",
		Transport:  "stdio",
		Addr:       DefaultAddr,
		ToolErrors: "flag",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput, *UpstreamConfig)
		expectError string
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput, *UpstreamConfig) {},
		},
		{
			name:        "zero limit",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.Limit = 0 },
			expectError: "limit must be greater than 0",
		},
		{
			name:        "limit too large",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.Limit = MaxResultLimit + 1 },
			expectError: "cannot exceed",
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.Output = "xml" },
			expectError: "invalid output format",
		},
		{
			name:        "parquet requires output file",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.Output = "parquet" },
			expectError: "--output-file is required",
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.Color = "purple" },
			expectError: "invalid --color value",
		},
		{
			name:        "invalid transport",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.Transport = "grpc" },
			expectError: "invalid transport",
		},
		{
			name: "http transport requires addr",
			mutate: func(in *ConfigRawInput, _ *UpstreamConfig) {
				in.Transport = "http"
				in.Addr = ""
			},
			expectError: "--addr is required",
		},
		{
			name:        "invalid tool errors",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.ToolErrors = "panic" },
			expectError: "invalid tool-errors",
		},
		{
			name:        "invalid log level",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.LogLevel = "trace" },
			expectError: "invalid log level",
		},
		{
			name:        "invalid history backend",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.HistoryBackend = "oracle" },
			expectError: "invalid history backend",
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput, _ *UpstreamConfig) { in.HistoryBackend = "mysql" },
			expectError: "history-db-connect is required",
		},
		{
			name:        "bad base url",
			mutate:      func(_ *ConfigRawInput, up *UpstreamConfig) { up.BaseURL = "ftp://example.com" },
			expectError: "must start with http",
		},
		{
			name:        "bad timeout",
			mutate:      func(_ *ConfigRawInput, up *UpstreamConfig) { up.TimeoutSec = 0 },
			expectError: "DUNE_TIMEOUT_SEC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			upstream := validUpstream()
			tt.mutate(input, &upstream)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input, upstream)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
			assert.Equal(t, schema.MarkdownOut, cfg.Output)
			assert.Equal(t, schema.StdioTransport, cfg.Transport)
			assert.Equal(t, schema.FlagToolErrors, cfg.ToolErrors)
			assert.Equal(t, "secret", cfg.Upstream.APIKey)
			assert.Empty(t, cfg.HistoryBackend)
		})
	}
}

func TestProcessAndValidateNormalizesCase(t *testing.T) {
	input := validInput()
	input.Output = "JSON"
	input.Transport = "HTTP"
	input.HistoryBackend = "SQLite"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, validUpstream()))
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, schema.HTTPTransport, cfg.Transport)
	assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
}

// unsetEnv removes variables for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "") // registers restore on cleanup
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadUpstreamFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		unsetEnv(t, "DUNE_API_KEY", "DUNE_API_BASE_URL", "DUNE_API_KEY_HEADER", "DUNE_TIMEOUT_SEC")

		up, err := LoadUpstreamFromEnv()
		require.NoError(t, err)
		assert.Empty(t, up.APIKey)
		assert.Equal(t, "https://api.dune.com/api/v1", up.BaseURL)
		assert.Equal(t, "X-Dune-API-Key", up.APIKeyHeader)
		assert.Equal(t, 300*time.Second, up.Timeout)
		assert.NoError(t, up.Validate())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DUNE_API_KEY", "abc")
		t.Setenv("DUNE_API_BASE_URL", "http://localhost:9999/api/v1/")
		t.Setenv("DUNE_API_KEY_HEADER", "X-Api-Key")
		t.Setenv("DUNE_TIMEOUT_SEC", "5")

		up, err := LoadUpstreamFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "abc", up.APIKey)
		assert.Equal(t, "http://localhost:9999/api/v1", up.BaseURL)
		assert.Equal(t, "X-Api-Key", up.APIKeyHeader)
		assert.Equal(t, 5*time.Second, up.Timeout)
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("DUNE_TIMEOUT_SEC", "soon")
		_, err := LoadUpstreamFromEnv()
		assert.Error(t, err)
	})
}

func TestConfigWithLimit(t *testing.T) {
	cfg := &Config{ResultLimit: DefaultResultLimit}

	assert.Equal(t, 50, cfg.WithLimit(50).ResultLimit)
	assert.Equal(t, DefaultResultLimit, cfg.WithLimit(0).ResultLimit)
	assert.Equal(t, DefaultResultLimit, cfg.WithLimit(-3).ResultLimit)
	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit, "original must not change")
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "root:pw@tcp(localhost:3306)/launchpad"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "root:pw@localhost"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=launchpad"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "dbname=launchpad"))
}
