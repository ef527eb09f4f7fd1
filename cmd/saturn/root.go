package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dealerscope/saturn/pkg/cli"
	"dealerscope/saturn/pkg/config"
	"dealerscope/saturn/pkg/telemetry"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "saturn",
	Short: "Saturn - prompt catalog hydration and cost governance",
	Long: `Saturn manages prompt template catalogs and the cost of dispatching
hydrated prompts to LLM providers.

It provides:
  - Catalog loading with structural and cross-reference validation
  - Template hydration with layered variable resolution
  - Token and cost estimation for hydrated prompts
  - Cost-optimal provider/model selection under constraints
  - Run-level budget enforcement with a persistent spend ledger`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig resolves the runtime configuration: the --config file when
// given, defaults otherwise. It also installs the configured logger,
// with --verbose forcing debug level.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		loaded, err := config.LoadConfig(cfgFile)
		if err != nil {
			return nil, cli.NewConfigError("", err.Error())
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if _, err := telemetry.SetupLogging(cfg.Telemetry.Logging, os.Stderr); err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return cfg, nil
}

// parseBindings converts repeated key=value flags into a map.
func parseBindings(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid binding %q (expected key=value)", pair)
		}
		out[key] = value
	}
	return out, nil
}
