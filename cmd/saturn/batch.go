package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dealerscope/saturn/pkg/cli"
	"dealerscope/saturn/pkg/hydrate"
	"dealerscope/saturn/pkg/limits"
)

var batchFlags struct {
	catalogPath string
	bindings    []string
	intent      string
	language    string
	pace        bool
	format      string
}

var batchCmd = &cobra.Command{
	Use:   "batch <template-id>...",
	Short: "Hydrate several templates with shared bindings",
	Long: `Hydrate each requested template with the same binding set.

Ids with no catalog match and templates excluded by the intent or
language filters are dropped from the output; the summary reports how
many fell into each bucket so a shrinking result is never silent.

Examples:
  # Hydrate three templates with one binding set
  saturn batch greeting inventory-probe probe-es --set name=Sam

  # Keep only Spanish-language templates
  saturn batch greeting probe-es --language es --set name=Sam

  # Emit prompts at each template's declared rate (for piping to a dispatcher)
  saturn batch greeting greeting greeting --pace --set name=Sam`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchFlags.catalogPath, "catalog", "", "catalog file (overrides config)")
	batchCmd.Flags().StringArrayVar(&batchFlags.bindings, "set", nil, "variable binding (key=value, repeatable)")
	batchCmd.Flags().StringVar(&batchFlags.intent, "intent", "", "keep only templates with this intent")
	batchCmd.Flags().StringVar(&batchFlags.language, "language", "", "keep only templates with this language")
	batchCmd.Flags().BoolVar(&batchFlags.pace, "pace", false, "honor each template's min_delay_ms when emitting")
	batchCmd.Flags().StringVar(&batchFlags.format, "format", "text", "output format: text, json")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bindings, err := parseBindings(batchFlags.bindings)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}

	hydrator, err := newHydrator(cfg, batchFlags.catalogPath)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}

	result, err := hydrator.HydrateMany(args, bindings, hydrate.Filters{
		Intent:   batchFlags.intent,
		Language: batchFlags.language,
	})
	if err != nil {
		return cli.NewCommandError("batch", err)
	}

	if batchFlags.format == "json" {
		type promptOut struct {
			TemplateID       string   `json:"template_id"`
			Text             string   `json:"text"`
			MissingVariables []string `json:"missing_variables,omitempty"`
			EstimatedUnits   int      `json:"estimated_units"`
			EstimatedCost    int64    `json:"estimated_cost"`
		}
		prompts := make([]promptOut, 0, len(result.Prompts))
		for _, p := range result.Prompts {
			prompts = append(prompts, promptOut{
				TemplateID:       p.Template.ID,
				Text:             p.Text,
				MissingVariables: p.MissingVariables,
				EstimatedUnits:   p.EstimatedUnits,
				EstimatedCost:    p.EstimatedCost,
			})
		}
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(cmd.OutOrStdout(), struct {
			RunID       string      `json:"run_id"`
			Requested   int         `json:"requested"`
			Hydrated    int         `json:"hydrated"`
			NotFound    int         `json:"not_found"`
			FilteredOut int         `json:"filtered_out"`
			Prompts     []promptOut `json:"prompts"`
		}{
			RunID:       result.RunID,
			Requested:   result.Requested,
			Hydrated:    result.Hydrated(),
			NotFound:    result.NotFound,
			FilteredOut: result.FilteredOut,
			Prompts:     prompts,
		})
	}

	pacer := limits.NewPacer()
	for _, p := range result.Prompts {
		if batchFlags.pace {
			if err := pacer.Wait(cmd.Context(), p.Template); err != nil {
				return cli.NewCommandError("batch", err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "--- %s ---\n", p.Template.ID)
		fmt.Fprintln(cmd.OutOrStdout(), p.Text)
		if len(p.MissingVariables) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "(missing: %v)\n", p.MissingVariables)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d requested, %d hydrated, %d not found, %d filtered out\n",
		result.RunID, result.Requested, result.Hydrated(), result.NotFound, result.FilteredOut)
	return nil
}
