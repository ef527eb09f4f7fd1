package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dealerscope/saturn/pkg/cli"
)

var budgetFlags struct {
	format  string
	records bool
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Inspect recorded spend in the ledger",
	Long: `Read the configured spend ledger and report the total recorded cost
against the configured ceiling.

Only a persistent ledger backend carries state between invocations; the
memory backend always reports zero spend here.

Examples:
  saturn budget --config saturn.yaml
  saturn budget --config saturn.yaml --records --format json`,
	RunE: runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)

	budgetCmd.Flags().StringVar(&budgetFlags.format, "format", "text", "output format: text, json")
	budgetCmd.Flags().BoolVar(&budgetFlags.records, "records", false, "list individual spend records")
}

func runBudget(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ledger, err := openLedger(cfg.Budget.Ledger)
	if err != nil {
		return cli.NewCommandError("budget", fmt.Errorf("opening ledger: %w", err))
	}
	defer ledger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := ledger.Total(ctx)
	if err != nil {
		return cli.NewCommandError("budget", fmt.Errorf("reading ledger total: %w", err))
	}
	records, err := ledger.List(ctx)
	if err != nil {
		return cli.NewCommandError("budget", fmt.Errorf("listing ledger records: %w", err))
	}

	remaining := cfg.Budget.CeilingCents - total
	if remaining < 0 {
		remaining = 0
	}

	if budgetFlags.format == "json" {
		out := struct {
			CeilingCents   int64 `json:"ceiling_cents"`
			SpentCents     int64 `json:"spent_cents"`
			RemainingCents int64 `json:"remaining_cents"`
			Records        int   `json:"records"`
			Detail         any   `json:"detail,omitempty"`
		}{
			CeilingCents:   cfg.Budget.CeilingCents,
			SpentCents:     total,
			RemainingCents: remaining,
			Records:        len(records),
		}
		if budgetFlags.records {
			out.Detail = records
		}
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(cmd.OutOrStdout(), out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ceiling:   %d cents\n", cfg.Budget.CeilingCents)
	fmt.Fprintf(cmd.OutOrStdout(), "Spent:     %d cents\n", total)
	fmt.Fprintf(cmd.OutOrStdout(), "Remaining: %d cents\n", remaining)
	fmt.Fprintf(cmd.OutOrStdout(), "Records:   %d\n", len(records))

	if budgetFlags.records {
		fmt.Fprintln(cmd.OutOrStdout())
		for _, r := range records {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s/%s  %d in / %d out  %d cents  %s\n",
				r.ID, r.Provider, r.Model, r.InputTokens, r.OutputTokens, r.Cost,
				r.RecordedAt.Format(time.RFC3339))
		}
	}
	return nil
}
