package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dealerscope/saturn/pkg/cli"
	"dealerscope/saturn/pkg/config"
	"dealerscope/saturn/pkg/pricing"
	"dealerscope/saturn/pkg/routing"
)

var selectFlags struct {
	catalogPath  string
	templateID   string
	bindings     []string
	inputTokens  int
	outputTokens int
	maxCost      int64
	minTier      string
	timeout      time.Duration
	format       string
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick the cheapest provider/model for a workload",
	Long: `Evaluate every provider/model pair in the pricing table against the
estimated workload and report the cheapest one that satisfies the
constraints.

The workload is given either directly as token counts, or as a template
id plus bindings, in which case the input size is estimated from the
hydrated text.

Examples:
  # Explicit token counts
  saturn select --input-tokens 2000 --output-tokens 500

  # Constrain cost and quality
  saturn select --input-tokens 2000 --output-tokens 500 --max-cost 300 --min-tier good

  # Size the workload from a hydrated template
  saturn select --template greeting --set name=Sam --output-tokens 400`,
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().StringVar(&selectFlags.catalogPath, "catalog", "", "catalog file (overrides config)")
	selectCmd.Flags().StringVar(&selectFlags.templateID, "template", "", "estimate input size from this template")
	selectCmd.Flags().StringArrayVar(&selectFlags.bindings, "set", nil, "variable binding (key=value, repeatable)")
	selectCmd.Flags().IntVar(&selectFlags.inputTokens, "input-tokens", 0, "input token count")
	selectCmd.Flags().IntVar(&selectFlags.outputTokens, "output-tokens", 0, "expected output token count")
	selectCmd.Flags().Int64Var(&selectFlags.maxCost, "max-cost", 0, "maximum cost in cents (0 = unlimited)")
	selectCmd.Flags().StringVar(&selectFlags.minTier, "min-tier", "basic", "minimum quality tier: basic, good, premium")
	selectCmd.Flags().DurationVar(&selectFlags.timeout, "timeout", 0, "dispatch timeout carried to the choice")
	selectCmd.Flags().StringVar(&selectFlags.format, "format", "text", "output format: text, json")
}

// pricingTable builds the table from configured entries, falling back
// to the built-in defaults when none are configured.
func pricingTable(cfg *config.Config) (*pricing.Table, error) {
	if len(cfg.Pricing.Entries) == 0 {
		return pricing.DefaultTable(), nil
	}
	return pricing.NewTable(cfg.Pricing.Entries)
}

func runSelect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	minTier, err := routing.ParseTier(selectFlags.minTier)
	if err != nil {
		return cli.NewCommandError("select", err)
	}

	tokens := pricing.TokenCounts{
		Input:  selectFlags.inputTokens,
		Output: selectFlags.outputTokens,
	}

	if selectFlags.templateID != "" {
		bindings, err := parseBindings(selectFlags.bindings)
		if err != nil {
			return cli.NewCommandError("select", err)
		}
		hydrator, err := newHydrator(cfg, selectFlags.catalogPath)
		if err != nil {
			return cli.NewCommandError("select", err)
		}
		prompt, err := hydrator.Hydrate(selectFlags.templateID, bindings, nil)
		if err != nil {
			return cli.NewCommandError("select", err)
		}
		tokens.Input = prompt.EstimatedUnits
	}

	if tokens.Input <= 0 && tokens.Output <= 0 {
		return cli.NewCommandError("select", fmt.Errorf("workload is empty: provide --input-tokens/--output-tokens or --template"))
	}

	table, err := pricingTable(cfg)
	if err != nil {
		return cli.NewCommandError("select", err)
	}

	selector := routing.NewSelector(pricing.NewCalculator(table))
	choice, err := selector.SelectOptimal(tokens, routing.Constraints{
		MaxCost: selectFlags.maxCost,
		MinTier: minTier,
		Timeout: selectFlags.timeout,
	})
	if err != nil {
		return cli.NewCommandError("select", err)
	}

	if selectFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(cmd.OutOrStdout(), struct {
			Provider     string `json:"provider"`
			Model        string `json:"model"`
			Tier         string `json:"tier"`
			InputTokens  int    `json:"input_tokens"`
			OutputTokens int    `json:"output_tokens"`
			Cost         int64  `json:"cost"`
			TimeoutMS    int64  `json:"timeout_ms,omitempty"`
		}{
			Provider:     choice.Provider,
			Model:        choice.Model,
			Tier:         choice.Tier.String(),
			InputTokens:  choice.Cost.InputTokens,
			OutputTokens: choice.Cost.OutputTokens,
			Cost:         choice.Cost.Cost,
			TimeoutMS:    choice.Timeout.Milliseconds(),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Provider: %s\n", choice.Provider)
	fmt.Fprintf(cmd.OutOrStdout(), "Model:    %s\n", choice.Model)
	fmt.Fprintf(cmd.OutOrStdout(), "Tier:     %s\n", choice.Tier)
	fmt.Fprintf(cmd.OutOrStdout(), "Tokens:   %d in / %d out\n", choice.Cost.InputTokens, choice.Cost.OutputTokens)
	fmt.Fprintf(cmd.OutOrStdout(), "Cost:     %d\n", choice.Cost.Cost)
	if choice.Timeout > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Timeout:  %s\n", choice.Timeout)
	}
	return nil
}
