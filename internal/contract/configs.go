package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/huangsam/launchpad/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 1000
	MaxResultLimit     = 100000
	DefaultTimeoutSec  = 300
	DefaultAddr        = ":8080"
	DefaultLogLevel    = "info"
)

// UpstreamConfig holds the Dune Analytics API settings.
// These come from DUNE_* environment variables rather than flags so the API key
// never shows up in a shell history or config file.
type UpstreamConfig struct {
	APIKey       string `env:"DUNE_API_KEY"`
	BaseURL      string `env:"DUNE_API_BASE_URL" envDefault:"https://api.dune.com/api/v1"`
	APIKeyHeader string `env:"DUNE_API_KEY_HEADER" envDefault:"X-Dune-API-Key"`
	TimeoutSec   int    `env:"DUNE_TIMEOUT_SEC" envDefault:"300"`

	// Computed from TimeoutSec
	Timeout time.Duration `env:"-"`
}

// LoadUpstreamFromEnv loads the upstream configuration from environment variables.
func LoadUpstreamFromEnv() (UpstreamConfig, error) {
	var up UpstreamConfig
	if err := env.Parse(&up); err != nil {
		return up, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	up.BaseURL = strings.TrimRight(strings.TrimSpace(up.BaseURL), "/")
	up.Timeout = time.Duration(up.TimeoutSec) * time.Second
	return up, nil
}

// Validate validates the upstream configuration.
func (u UpstreamConfig) Validate() error {
	if u.BaseURL == "" {
		return fmt.Errorf("DUNE_API_BASE_URL cannot be empty")
	}
	if !strings.HasPrefix(u.BaseURL, "http://") && !strings.HasPrefix(u.BaseURL, "https://") {
		return fmt.Errorf("DUNE_API_BASE_URL must start with http:// or https:// (received %q)", u.BaseURL)
	}
	if u.APIKeyHeader == "" {
		return fmt.Errorf("DUNE_API_KEY_HEADER cannot be empty")
	}
	if u.TimeoutSec <= 0 {
		return fmt.Errorf("DUNE_TIMEOUT_SEC must be greater than 0 (received %d)", u.TimeoutSec)
	}
	return nil
}

// Config holds the runtime configuration.
// This struct is the "final, validated" config and is not mutated after setup.
type Config struct {
	Upstream UpstreamConfig

	ResultLimit int
	Percent     bool
	Output      schema.OutputMode
	OutputFile  string

	Transport  schema.Transport
	Addr       string
	ToolErrors schema.ToolErrorMode
	LogLevel   string

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseColors bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Limit            int    `mapstructure:"limit"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Color            string `mapstructure:"color"`
	LogLevel         string `mapstructure:"log-level"`

	// --- Fields from report command flags ---
	Percent bool `mapstructure:"percent"`

	// --- Fields from mcpCmd.Flags() ---
	Transport  string `mapstructure:"transport"`
	Addr       string `mapstructure:"addr"`
	ToolErrors string `mapstructure:"tool-errors"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// WithLimit returns a copy of the Config using the given row limit when it is positive.
func (c *Config) WithLimit(limit int) *Config {
	clone := c.Clone()
	if limit > 0 {
		clone.ResultLimit = limit
	}
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, upstream UpstreamConfig) error {
	if err := upstream.Validate(); err != nil {
		return err
	}
	cfg.Upstream = upstream

	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processServerInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// validateSimpleInputs processes and validates the report related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Percent = input.Percent

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be markdown, text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}
	return nil
}

// processServerInputs validates the MCP server fields.
func processServerInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Transport = schema.Transport(strings.ToLower(input.Transport))
	if _, ok := schema.ValidTransports[cfg.Transport]; !ok {
		return fmt.Errorf("invalid transport '%s'. must be stdio, http", input.Transport)
	}

	cfg.Addr = input.Addr
	if cfg.Transport == schema.HTTPTransport && cfg.Addr == "" {
		return fmt.Errorf("--addr is required for http transport")
	}

	cfg.ToolErrors = schema.ToolErrorMode(strings.ToLower(input.ToolErrors))
	if _, ok := schema.ValidToolErrorModes[cfg.ToolErrors]; !ok {
		return fmt.Errorf("invalid tool-errors '%s'. must be flag, text", input.ToolErrors)
	}

	level := strings.ToLower(input.LogLevel)
	switch level {
	case "debug", "info", "warn", "error":
		cfg.LogLevel = level
	default:
		return fmt.Errorf("invalid log level: %s", input.LogLevel)
	}
	return nil
}

// validateBackendConfig validates the history backend configuration.
// An empty backend disables history tracking.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend, "":
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
