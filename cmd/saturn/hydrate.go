package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dealerscope/saturn/pkg/catalog"
	"dealerscope/saturn/pkg/cli"
	"dealerscope/saturn/pkg/config"
	"dealerscope/saturn/pkg/hydrate"
)

var hydrateFlags struct {
	catalogPath string
	bindings    []string
	overrides   []string
	expand      bool
	format      string
}

var hydrateCmd = &cobra.Command{
	Use:   "hydrate <template-id>",
	Short: "Hydrate a single template",
	Long: `Substitute variable bindings into a template body.

Each placeholder resolves through the layered chain: per-call override,
then binding, then the configured default bindings, then the variable's
declared default. A required variable that nothing resolves renders as
a [MISSING:<name>] marker and is listed in the output.

Examples:
  # Hydrate with bindings
  saturn hydrate greeting --set name=Sam --set dealership_name="Valley Motors"

  # Force a value past every binding layer
  saturn hydrate greeting --set name=Sam --override name=Admin

  # Include sizing metadata and configured providers
  saturn hydrate greeting --set name=Sam --expand --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runHydrate,
}

func init() {
	rootCmd.AddCommand(hydrateCmd)

	hydrateCmd.Flags().StringVar(&hydrateFlags.catalogPath, "catalog", "", "catalog file (overrides config)")
	hydrateCmd.Flags().StringArrayVar(&hydrateFlags.bindings, "set", nil, "variable binding (key=value, repeatable)")
	hydrateCmd.Flags().StringArrayVar(&hydrateFlags.overrides, "override", nil, "per-call override (key=value, repeatable)")
	hydrateCmd.Flags().BoolVar(&hydrateFlags.expand, "expand", false, "include sizing metadata")
	hydrateCmd.Flags().StringVar(&hydrateFlags.format, "format", "text", "output format: text, json")
}

// newHydrator loads the catalog named by the flags or config and builds
// a hydrator over it.
func newHydrator(cfg *config.Config, catalogPath string) (*hydrate.Hydrator, error) {
	path := catalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}

	store := catalog.NewStore(cfg.Catalog.DefaultBindings)
	if err := store.LoadFile(path); err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}

	return hydrate.New(store, cfg.Catalog.DefaultBindings,
		hydrate.WithAverageUnitPrice(cfg.Pricing.AverageUnitPrice)), nil
}

func runHydrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bindings, err := parseBindings(hydrateFlags.bindings)
	if err != nil {
		return cli.NewCommandError("hydrate", err)
	}
	overrides, err := parseBindings(hydrateFlags.overrides)
	if err != nil {
		return cli.NewCommandError("hydrate", err)
	}

	hydrator, err := newHydrator(cfg, hydrateFlags.catalogPath)
	if err != nil {
		return cli.NewCommandError("hydrate", err)
	}

	if hydrateFlags.expand {
		if len(overrides) > 0 {
			return cli.NewCommandError("hydrate", fmt.Errorf("--override cannot be combined with --expand"))
		}
		expansion, err := hydrator.Expand(args[0], bindings)
		if err != nil {
			return cli.NewCommandError("hydrate", err)
		}
		return printExpansion(cmd, expansion)
	}

	prompt, err := hydrator.Hydrate(args[0], bindings, overrides)
	if err != nil {
		return cli.NewCommandError("hydrate", err)
	}
	return printPrompt(cmd, prompt)
}

func printPrompt(cmd *cobra.Command, prompt *hydrate.HydratedPrompt) error {
	if hydrateFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(cmd.OutOrStdout(), struct {
			TemplateID       string   `json:"template_id"`
			Text             string   `json:"text"`
			MissingVariables []string `json:"missing_variables,omitempty"`
			EstimatedUnits   int      `json:"estimated_units"`
			EstimatedCost    int64    `json:"estimated_cost"`
		}{
			TemplateID:       prompt.Template.ID,
			Text:             prompt.Text,
			MissingVariables: prompt.MissingVariables,
			EstimatedUnits:   prompt.EstimatedUnits,
			EstimatedCost:    prompt.EstimatedCost,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), prompt.Text)
	if len(prompt.MissingVariables) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "missing variables: %v\n", prompt.MissingVariables)
	}
	return nil
}

func printExpansion(cmd *cobra.Command, expansion *hydrate.Expansion) error {
	if hydrateFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(cmd.OutOrStdout(), struct {
			TemplateID          string   `json:"template_id"`
			Text                string   `json:"text"`
			MissingVariables    []string `json:"missing_variables,omitempty"`
			VariablesUsed       []string `json:"variables_used,omitempty"`
			EstimatedUnits      int      `json:"estimated_units"`
			EstimatedCost       int64    `json:"estimated_cost"`
			ConfiguredProviders []string `json:"configured_providers,omitempty"`
		}{
			TemplateID:          expansion.Prompt.Template.ID,
			Text:                expansion.Prompt.Text,
			MissingVariables:    expansion.Prompt.MissingVariables,
			VariablesUsed:       expansion.Metadata.VariablesUsed,
			EstimatedUnits:      expansion.Metadata.EstimatedUnits,
			EstimatedCost:       expansion.Metadata.EstimatedCost,
			ConfiguredProviders: expansion.Metadata.ConfiguredProviders,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), expansion.Prompt.Text)
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Estimated units: %d\n", expansion.Metadata.EstimatedUnits)
	fmt.Fprintf(cmd.OutOrStdout(), "Estimated cost:  %d\n", expansion.Metadata.EstimatedCost)
	if len(expansion.Metadata.VariablesUsed) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Variables used:  %v\n", expansion.Metadata.VariablesUsed)
	}
	if len(expansion.Prompt.MissingVariables) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Missing:         %v\n", expansion.Prompt.MissingVariables)
	}
	if len(expansion.Metadata.ConfiguredProviders) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Providers:       %v\n", expansion.Metadata.ConfiguredProviders)
	}
	return nil
}
