package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/huangsam/launchpad/core"
	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/internal/dune"
	"github.com/huangsam/launchpad/internal/history"
	"github.com/huangsam/launchpad/internal/metrics"
	"github.com/huangsam/launchpad/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations. Execute cancels it on SIGINT or SIGTERM.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// appMetrics is shared by the runner and the HTTP transport.
var appMetrics = metrics.NewMetrics()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "launchpad",
	Short: "Report daily Solana launchpad activity from Dune Analytics.",
	Long: `Launchpad pivots Dune Analytics query results into per-platform daily tables
for memecoin launchpads: tokens deployed, graduates, graduation rate and active addresses.

Reports are available from the command line or to AI agents through an MCP server.
The Dune API key is read from DUNE_API_KEY (a .env file in the working directory works too).`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in .env, config file defaults and ENV variables if set.
func initConfig() {
	// .env never overrides variables that are already set
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		contract.LogWarn("Could not load .env file", err)
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("LAUNCHPAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("output", schema.MarkdownOut)
	viper.SetDefault("output-file", "")
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("percent", false)
	viper.SetDefault("transport", schema.StdioTransport)
	viper.SetDefault("addr", contract.DefaultAddr)
	viper.SetDefault("tool-errors", schema.FlagToolErrors)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".launchpad") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Upstream settings come from DUNE_* variables only.
	upstream, err := contract.LoadUpstreamFromEnv()
	if err != nil {
		return err
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input, upstream); err != nil {
		return err
	}
	contract.SetColorEnabled(cfg.UseColors)

	if cfg.Upstream.APIKey == "" {
		contract.LogWarn("DUNE_API_KEY is not set; upstream requests will likely be rejected", nil)
	}

	// 5. Initialize invocation history with validated config
	if err := history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// newRunner builds the report runner from the validated config.
func newRunner() *core.Runner {
	client := dune.NewClient(cfg.Upstream, dune.WithObserver(appMetrics.ObserveUpstream))
	opts := []core.RunnerOption{core.WithMetrics(appMetrics)}
	if store := history.Manager.GetHistoryStore(); store != nil {
		opts = append(opts, core.WithHistory(store))
	}
	return core.NewRunner(client, opts...)
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = ctx
	return rootCmd.ExecuteContext(ctx)
}
