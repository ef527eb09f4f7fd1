package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dealerscope/saturn/pkg/catalog"
	"dealerscope/saturn/pkg/cli"
)

var validateFlags struct {
	catalogPath string
	format      string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a prompt catalog file",
	Long: `Load a catalog file and report every problem found.

Structural defects (unparsable JSON, missing version, duplicate or
incomplete templates) are fatal and reported as an error. Cross
reference findings (placeholders without declarations, unreferenced
variables, required variables without any default) are advisory: the
catalog still loads, and each finding is listed with its template and
field.

Examples:
  # Validate the catalog from the config file
  saturn validate --config saturn.yaml

  # Validate a specific file
  saturn validate --catalog prompts.json

  # Machine-readable findings
  saturn validate --catalog prompts.json --format json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.catalogPath, "catalog", "", "catalog file (overrides config)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := validateFlags.catalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cli.NewCommandError("validate", fmt.Errorf("reading catalog: %w", err))
	}

	cat, err := catalog.Load(raw, cfg.Catalog.DefaultBindings)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	findings := cat.ValidationErrors()

	if validateFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(cmd.OutOrStdout(), struct {
			Path      string                    `json:"path"`
			Templates int                       `json:"templates"`
			Findings  []catalog.ValidationError `json:"findings"`
		}{Path: path, Templates: cat.Len(), Findings: findings})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Catalog: %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Templates: %d\n", cat.Len())
	if len(findings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No validation findings.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Findings: %d\n\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s: %s\n", f.TemplateID, f.Field, f.Message)
	}
	return nil
}
