package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCatalog = `{
	"version": "1.0.0",
	"prompts": [
		{
			"id": "greeting",
			"title": "Greeting",
			"intent": "smalltalk",
			"language": "en",
			"body": "Hello {{name}} from {{city}}",
			"variables": [
				{"name": "name", "type": "string", "required": true},
				{"name": "city", "type": "string", "required": true, "default": "Unknown"}
			]
		},
		{
			"id": "probe-es",
			"title": "Probe ES",
			"intent": "visibility_probe",
			"language": "es",
			"body": "Mejores ofertas en {{city}}",
			"variables": [
				{"name": "city", "type": "string", "required": true, "default": "Unknown"}
			]
		}
	]
}`

func writeTestCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatalf("writing test catalog: %v", err)
	}
	return path
}

// resetFlags clears flag state left over from a previous Execute call.
// Repeatable flags accumulate across parses otherwise.
func resetFlags() {
	hydrateFlags.bindings = nil
	hydrateFlags.overrides = nil
	hydrateFlags.format = "text"
	hydrateFlags.expand = false
	hydrateFlags.catalogPath = ""
	batchFlags.bindings = nil
	batchFlags.intent = ""
	batchFlags.language = ""
	batchFlags.pace = false
	batchFlags.format = "text"
	batchFlags.catalogPath = ""
	selectFlags.bindings = nil
	selectFlags.templateID = ""
	selectFlags.format = "text"
	selectFlags.catalogPath = ""
	validateFlags.catalogPath = ""
	validateFlags.format = "text"
}

// execute runs the root command with args and returns captured stdout.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return buf.String()
}

func TestHydrateCommand(t *testing.T) {
	path := writeTestCatalog(t)

	out := execute(t, "hydrate", "greeting", "--catalog", path, "--set", "name=Sam")
	if !strings.Contains(out, "Hello Sam from Unknown") {
		t.Errorf("output = %q", out)
	}
}

func TestHydrateCommand_JSONReportsMissing(t *testing.T) {
	path := writeTestCatalog(t)

	out := execute(t, "hydrate", "greeting", "--catalog", path, "--set", "city=Reno", "--format", "json")

	var result struct {
		TemplateID       string   `json:"template_id"`
		Text             string   `json:"text"`
		MissingVariables []string `json:"missing_variables"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, out)
	}
	if result.Text != "Hello [MISSING:name] from Reno" {
		t.Errorf("text = %q", result.Text)
	}
	if len(result.MissingVariables) != 1 || result.MissingVariables[0] != "name" {
		t.Errorf("missing = %v", result.MissingVariables)
	}
}

func TestHydrateCommand_InvalidBinding(t *testing.T) {
	path := writeTestCatalog(t)

	resetFlags()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"hydrate", "greeting", "--catalog", path, "--set", "nonsense"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for malformed binding")
	}
}

func TestBatchCommand_FilterAndDropAccounting(t *testing.T) {
	path := writeTestCatalog(t)

	out := execute(t, "batch", "greeting", "probe-es", "ghost",
		"--catalog", path, "--language", "es", "--set", "city=Madrid", "--format", "json")

	var result struct {
		Requested   int `json:"requested"`
		Hydrated    int `json:"hydrated"`
		NotFound    int `json:"not_found"`
		FilteredOut int `json:"filtered_out"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, out)
	}
	if result.Requested != 3 || result.Hydrated != 1 || result.NotFound != 1 || result.FilteredOut != 1 {
		t.Errorf("accounting = %+v", result)
	}
}

func TestValidateCommand(t *testing.T) {
	path := writeTestCatalog(t)

	out := execute(t, "validate", "--catalog", path)
	if !strings.Contains(out, "Templates: 2") {
		t.Errorf("output = %q", out)
	}
	// "name" is required without a default anywhere, so it is a finding.
	if !strings.Contains(out, "greeting") {
		t.Errorf("expected finding for greeting: %q", out)
	}
}

func TestSelectCommand(t *testing.T) {
	out := execute(t, "select", "--input-tokens", "2000", "--output-tokens", "500", "--format", "json")

	var result struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
		Cost     int64  `json:"cost"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, out)
	}
	if result.Provider == "" || result.Model == "" {
		t.Errorf("selection = %+v", result)
	}
}

func TestSelectCommand_EmptyWorkload(t *testing.T) {
	resetFlags()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"select", "--input-tokens", "0", "--output-tokens", "0"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for empty workload")
	}
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	if !strings.Contains(out, "Saturn") {
		t.Errorf("output = %q", out)
	}
}
