package hydrate

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"dealerscope/saturn/pkg/catalog"
)

const testCatalog = `{
	"version": "1.0.0",
	"prompts": [
		{
			"id": "t1",
			"title": "Greeting",
			"intent": "smalltalk",
			"language": "en",
			"body": "Hello {{name}} from {{city}}",
			"variables": [
				{"name": "name", "type": "string", "required": true},
				{"name": "city", "type": "string", "required": true, "default": "Unknown"}
			],
			"engine_defaults": {"providers": ["openai", "anthropic"]}
		},
		{
			"id": "optional",
			"title": "Optional suffix",
			"body": "Report{{suffix}} ready",
			"variables": [
				{"name": "suffix", "type": "string", "required": false}
			]
		},
		{
			"id": "undeclared",
			"title": "Undeclared placeholder",
			"body": "Value is {{mystery}}",
			"variables": []
		}
	]
}`

func newTestHydrator(t *testing.T, defaults map[string]string, opts ...Option) *Hydrator {
	t.Helper()

	c, err := catalog.Load([]byte(testCatalog), defaults)
	if err != nil {
		t.Fatalf("catalog.Load failed: %v", err)
	}
	return New(Static(c), defaults, opts...)
}

func TestHydrator_ResolvesFromBindingsAndDefaults(t *testing.T) {
	h := newTestHydrator(t, nil)

	prompt, err := h.Hydrate("t1", map[string]string{"name": "Sam"}, nil)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	if prompt.Text != "Hello Sam from Unknown" {
		t.Errorf("Expected %q, got %q", "Hello Sam from Unknown", prompt.Text)
	}
	if len(prompt.MissingVariables) != 0 {
		t.Errorf("Expected no missing variables, got %v", prompt.MissingVariables)
	}
}

func TestHydrator_MissingRequiredVariable(t *testing.T) {
	h := newTestHydrator(t, nil)

	prompt, err := h.Hydrate("t1", map[string]string{}, nil)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	if prompt.Text != "Hello [MISSING:name] from Unknown" {
		t.Errorf("Expected sentinel text, got %q", prompt.Text)
	}
	if !reflect.DeepEqual(prompt.MissingVariables, []string{"name"}) {
		t.Errorf("Expected missing [name], got %v", prompt.MissingVariables)
	}
	if !strings.Contains(prompt.Text, "[MISSING:name]") {
		t.Error("Sentinel must be visible inline in the produced text")
	}
}

func TestHydrator_ResolutionPriority(t *testing.T) {
	builtin := map[string]string{"name": "builtin", "city": "builtin-city"}
	h := newTestHydrator(t, builtin)

	tests := []struct {
		name      string
		bindings  map[string]string
		overrides map[string]string
		want      string
	}{
		{
			name: "override beats binding and builtin",
			bindings:  map[string]string{"name": "bound"},
			overrides: map[string]string{"name": "overridden"},
			want:      "Hello overridden from builtin-city",
		},
		{
			name:     "binding beats builtin",
			bindings: map[string]string{"name": "bound"},
			want:     "Hello bound from builtin-city",
		},
		{
			name: "builtin beats declared default",
			want: "Hello builtin from builtin-city",
		},
		{
			name:     "empty binding falls through",
			bindings: map[string]string{"name": ""},
			want:     "Hello builtin from builtin-city",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := h.Hydrate("t1", tt.bindings, tt.overrides)
			if err != nil {
				t.Fatalf("Hydrate failed: %v", err)
			}
			if prompt.Text != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, prompt.Text)
			}
		})
	}
}

func TestHydrator_DeclaredDefaultIsLastResort(t *testing.T) {
	h := newTestHydrator(t, nil)

	prompt, err := h.Hydrate("t1", map[string]string{"name": "Sam", "city": "Austin"}, nil)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if prompt.Text != "Hello Sam from Austin" {
		t.Errorf("Binding must beat declared default, got %q", prompt.Text)
	}
}

func TestHydrator_OptionalUnresolvedIsEmpty(t *testing.T) {
	h := newTestHydrator(t, nil)

	prompt, err := h.Hydrate("optional", nil, nil)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if prompt.Text != "Report ready" {
		t.Errorf("Expected empty substitution, got %q", prompt.Text)
	}
	if len(prompt.MissingVariables) != 0 {
		t.Errorf("Optional variables are never missing, got %v", prompt.MissingVariables)
	}
}

func TestHydrator_UndeclaredPlaceholderStaysVisible(t *testing.T) {
	h := newTestHydrator(t, nil)

	prompt, err := h.Hydrate("undeclared", nil, nil)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if prompt.Text != "Value is {{mystery}}" {
		t.Errorf("Undeclared placeholder should stay visible, got %q", prompt.Text)
	}

	// A binding for the undeclared name still substitutes.
	prompt, err = h.Hydrate("undeclared", map[string]string{"mystery": "42"}, nil)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if prompt.Text != "Value is 42" {
		t.Errorf("Expected binding to fill undeclared placeholder, got %q", prompt.Text)
	}
}

func TestHydrator_NotFound(t *testing.T) {
	h := newTestHydrator(t, nil)

	_, err := h.Hydrate("missing", nil, nil)
	if err == nil {
		t.Fatal("Expected error for unknown template")
	}
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Expected ErrTemplateNotFound, got %v", err)
	}

	var notFound *TemplateNotFoundError
	if !errors.As(err, &notFound) || notFound.ID != "missing" {
		t.Errorf("Expected typed error carrying the id, got %v", err)
	}
}

func TestHydrator_NoCatalog(t *testing.T) {
	h := New(Static(nil), nil)

	if _, err := h.Hydrate("t1", nil, nil); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("Expected ErrNoCatalog, got %v", err)
	}
	if _, err := h.HydrateMany([]string{"t1"}, nil, Filters{}); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("Expected ErrNoCatalog, got %v", err)
	}
}

func TestHydrator_Idempotent(t *testing.T) {
	h := newTestHydrator(t, map[string]string{"name": "builtin"})
	bindings := map[string]string{"name": "Sam"}

	first, err := h.Hydrate("t1", bindings, nil)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := h.Hydrate("t1", bindings, nil)
		if err != nil {
			t.Fatalf("Hydrate failed: %v", err)
		}
		if again.Text != first.Text {
			t.Fatalf("Output changed between calls: %q vs %q", first.Text, again.Text)
		}
		if again.EstimatedUnits != first.EstimatedUnits || again.EstimatedCost != first.EstimatedCost {
			t.Fatal("Estimates changed between calls")
		}
	}
}

func TestHydrator_DoesNotMutateInputs(t *testing.T) {
	h := newTestHydrator(t, nil)

	bindings := map[string]string{"name": "Sam"}
	overrides := map[string]string{"city": "Austin"}

	if _, err := h.Hydrate("t1", bindings, overrides); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	if len(bindings) != 1 || bindings["name"] != "Sam" {
		t.Errorf("Binding set mutated: %v", bindings)
	}
	if len(overrides) != 1 || overrides["city"] != "Austin" {
		t.Errorf("Overrides mutated: %v", overrides)
	}
}

func TestHydrator_Estimates(t *testing.T) {
	h := newTestHydrator(t, nil, WithAverageUnitPrice(1.0))

	prompt, err := h.Hydrate("t1", map[string]string{"name": "Sam", "city": "Austin"}, nil)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	// "Hello Sam from Austin" is 21 characters: ceil(21/4) = 6 units,
	// at 1 cent per unit = 6 cents.
	if prompt.EstimatedUnits != 6 {
		t.Errorf("Expected 6 estimated units, got %d", prompt.EstimatedUnits)
	}
	if prompt.EstimatedCost != 6 {
		t.Errorf("Expected estimated cost 6, got %d", prompt.EstimatedCost)
	}
}

func TestHydrator_EstimateUnitsBoundaries(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{0, 0}, {1, 1}, {3, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3},
	}

	for _, tt := range tests {
		got := estimateUnits(strings.Repeat("a", tt.length))
		if got != tt.want {
			t.Errorf("estimateUnits(len %d): expected %d, got %d", tt.length, tt.want, got)
		}
	}
}
