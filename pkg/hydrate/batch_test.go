package hydrate

import (
	"testing"

	"dealerscope/saturn/pkg/catalog"
)

const batchCatalog = `{
	"version": "1.0.0",
	"prompts": [
		{
			"id": "a",
			"title": "A",
			"intent": "probe",
			"language": "en",
			"body": "A says {{word}}",
			"variables": [{"name": "word", "default": "hi"}]
		},
		{
			"id": "b",
			"title": "B",
			"intent": "probe",
			"language": "es",
			"body": "B dice {{word}}",
			"variables": [{"name": "word", "default": "hola"}]
		},
		{
			"id": "c",
			"title": "C",
			"intent": "report",
			"language": "en",
			"body": "C reports {{word}}",
			"variables": [{"name": "word", "default": "done"}]
		}
	]
}`

func newBatchHydrator(t *testing.T) *Hydrator {
	t.Helper()

	c, err := catalog.Load([]byte(batchCatalog), nil)
	if err != nil {
		t.Fatalf("catalog.Load failed: %v", err)
	}
	return New(Static(c), nil)
}

func TestHydrateMany_DropsUnknownIDs(t *testing.T) {
	h := newBatchHydrator(t)

	result, err := h.HydrateMany([]string{"a", "missing", "b"}, nil, Filters{})
	if err != nil {
		t.Fatalf("HydrateMany failed: %v", err)
	}

	if result.Requested != 3 {
		t.Errorf("Expected 3 requested, got %d", result.Requested)
	}
	if result.Hydrated() != 2 {
		t.Fatalf("Expected 2 hydrated prompts, got %d", result.Hydrated())
	}
	if result.Prompts[0].Template.ID != "a" || result.Prompts[1].Template.ID != "b" {
		t.Errorf("Expected request order a,b; got %s,%s",
			result.Prompts[0].Template.ID, result.Prompts[1].Template.ID)
	}
	if result.NotFound != 1 || result.FilteredOut != 0 {
		t.Errorf("Expected 1 not-found drop, got %+v", result)
	}
	if result.RunID == "" {
		t.Error("Expected a run id")
	}
}

func TestHydrateMany_Filters(t *testing.T) {
	h := newBatchHydrator(t)
	ids := []string{"a", "b", "c"}

	tests := []struct {
		name     string
		filters  Filters
		wantIDs  []string
		filtered int
	}{
		{"no filters", Filters{}, []string{"a", "b", "c"}, 0},
		{"by intent", Filters{Intent: "probe"}, []string{"a", "b"}, 1},
		{"by language", Filters{Language: "en"}, []string{"a", "c"}, 1},
		{"intent and language", Filters{Intent: "probe", Language: "en"}, []string{"a"}, 2},
		{"no matches", Filters{Intent: "nope"}, nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HydrateMany(ids, nil, tt.filters)
			if err != nil {
				t.Fatalf("HydrateMany failed: %v", err)
			}

			if result.Hydrated() != len(tt.wantIDs) {
				t.Fatalf("Expected %d prompts, got %d", len(tt.wantIDs), result.Hydrated())
			}
			for i, want := range tt.wantIDs {
				if result.Prompts[i].Template.ID != want {
					t.Errorf("Prompt %d: expected %s, got %s", i, want, result.Prompts[i].Template.ID)
				}
			}
			if result.FilteredOut != tt.filtered {
				t.Errorf("Expected %d filtered out, got %d", tt.filtered, result.FilteredOut)
			}
		})
	}
}

func TestHydrateMany_SharedBindings(t *testing.T) {
	h := newBatchHydrator(t)

	result, err := h.HydrateMany([]string{"a", "b"}, map[string]string{"word": "shared"}, Filters{})
	if err != nil {
		t.Fatalf("HydrateMany failed: %v", err)
	}

	if result.Prompts[0].Text != "A says shared" {
		t.Errorf("Unexpected text: %q", result.Prompts[0].Text)
	}
	if result.Prompts[1].Text != "B dice shared" {
		t.Errorf("Unexpected text: %q", result.Prompts[1].Text)
	}
}

func TestExpand(t *testing.T) {
	c, err := catalog.Load([]byte(testCatalog), nil)
	if err != nil {
		t.Fatalf("catalog.Load failed: %v", err)
	}
	h := New(Static(c), nil, WithAverageUnitPrice(1.0))

	exp, err := h.Expand("t1", map[string]string{"name": "Sam"})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	if exp.Prompt.Text != "Hello Sam from Unknown" {
		t.Errorf("Unexpected text: %q", exp.Prompt.Text)
	}
	// name resolved from bindings, city from its declared default.
	if len(exp.Metadata.VariablesUsed) != 2 {
		t.Errorf("Expected 2 variables used, got %v", exp.Metadata.VariablesUsed)
	}
	if exp.Metadata.EstimatedUnits != exp.Prompt.EstimatedUnits {
		t.Error("Metadata units must mirror the prompt")
	}
	if len(exp.Metadata.ConfiguredProviders) != 2 || exp.Metadata.ConfiguredProviders[0] != "openai" {
		t.Errorf("Expected configured providers, got %v", exp.Metadata.ConfiguredProviders)
	}

	if _, err := h.Expand("missing", nil); !IsNotFound(err) {
		t.Errorf("Expected not-found, got %v", err)
	}
}
