package catalog

import (
	"strings"
	"time"
)

// VariableType is the semantic type of a template variable. It documents
// authoring intent; bound values are always strings on the wire.
type VariableType string

const (
	// TypeString is a free-form string variable.
	TypeString VariableType = "string"
	// TypeNumber is a numeric variable.
	TypeNumber VariableType = "number"
	// TypeBoolean is a true/false variable.
	TypeBoolean VariableType = "boolean"
	// TypeArray is a list-valued variable.
	TypeArray VariableType = "array"
)

// Variable declares one template parameter.
type Variable struct {
	// Name is the placeholder name, unique within a template.
	Name string `json:"name"`

	// Type is the semantic type of the variable.
	Type VariableType `json:"type"`

	// Required marks variables that must resolve to a non-empty value.
	Required bool `json:"required"`

	// Default is the declared fallback value, used when no binding tier
	// resolves the variable. Empty means no default.
	Default string `json:"default,omitempty"`

	// Options enumerates allowed values, when the author constrained them.
	Options []string `json:"options,omitempty"`
}

// EngineDefaults carries the provider-dispatch defaults a template was
// authored for.
type EngineDefaults struct {
	// Providers lists the target providers in preference order.
	Providers []string `json:"providers,omitempty"`

	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature,omitempty"`

	// TopP is the nucleus-sampling parameter.
	TopP float64 `json:"top_p,omitempty"`

	// MaxTokens is the maximum output size in tokens.
	MaxTokens int `json:"max_tokens,omitempty"`

	// TimeoutSeconds is the dispatch timeout the author suggested.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// RateLimit is the per-template rate policy applied by dispatch layers.
type RateLimit struct {
	// MinDelayMillis is the minimum delay between runs of this template.
	MinDelayMillis int `json:"min_delay_ms,omitempty"`

	// RunBudget is the per-run spend budget in minor currency units.
	RunBudget int64 `json:"run_budget,omitempty"`
}

// Template is a named, parameterized text blueprint.
type Template struct {
	// ID uniquely identifies the template within its catalog.
	ID string `json:"id"`

	// Title is the human-readable template name.
	Title string `json:"title"`

	// Category groups related templates (e.g., "inventory", "service").
	Category string `json:"category,omitempty"`

	// Intent tags the template's purpose (e.g., "visibility_probe").
	Intent string `json:"intent,omitempty"`

	// Persona is the authoring voice the template assumes.
	Persona string `json:"persona,omitempty"`

	// Language is the template's language code (e.g., "en").
	Language string `json:"language,omitempty"`

	// Body is the template text with {{name}} placeholders.
	Body string `json:"body"`

	// Variables declares the template's parameters in author order.
	Variables []Variable `json:"variables,omitempty"`

	// Defaults carries provider-dispatch defaults.
	Defaults EngineDefaults `json:"engine_defaults,omitempty"`

	// RateLimit is the per-template rate policy.
	RateLimit RateLimit `json:"rate_limit,omitempty"`

	// SignalWeights are evaluation-signal weights consumed downstream;
	// opaque to this engine.
	SignalWeights map[string]float64 `json:"signal_weights,omitempty"`

	// OutputSchema is a free-form hint describing the expected output shape.
	OutputSchema string `json:"output_schema,omitempty"`

	// Tags are free-form labels.
	Tags []string `json:"tags,omitempty"`

	// program is the body compiled into literal/variable segments at load.
	program []segment

	// placeholders are the unique placeholder names in body order.
	placeholders []string
}

// Catalog is a loaded, validated collection of templates. It is immutable
// after Load.
type Catalog struct {
	version     string
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time

	templates []*Template
	byID      map[string]*Template

	validationErrors []ValidationError
}

// segment is one compiled piece of a template body: either a literal run
// of text or a variable reference.
type segment struct {
	literal  string
	variable string
}

// compileBody splits a body into literal and variable segments and
// collects the unique placeholder names in order of first appearance.
// Placeholder names are trimmed of surrounding whitespace; an unmatched
// "{{" is kept as literal text.
func compileBody(body string) ([]segment, []string) {
	var program []segment
	var names []string
	seen := make(map[string]bool)

	rest := body
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			break
		}
		close := strings.Index(rest[open+2:], "}}")
		if close < 0 {
			break
		}

		name := strings.TrimSpace(rest[open+2 : open+2+close])
		if name == "" {
			// "{{}}" is literal text, not a placeholder.
			program = append(program, segment{literal: rest[:open+2+close+2]})
			rest = rest[open+2+close+2:]
			continue
		}

		if open > 0 {
			program = append(program, segment{literal: rest[:open]})
		}
		program = append(program, segment{variable: name})

		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}

		rest = rest[open+2+close+2:]
	}

	if rest != "" {
		program = append(program, segment{literal: rest})
	}

	return program, names
}

// Placeholders returns the unique placeholder names found in the body,
// in order of first appearance.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// Substitute renders the template body, calling resolve once per variable
// occurrence. Substitution is literal whole-token replacement; the
// resolved value is spliced in verbatim with no further interpretation.
func (t *Template) Substitute(resolve func(name string) string) string {
	var b strings.Builder
	b.Grow(len(t.Body))

	for _, seg := range t.program {
		if seg.variable != "" {
			b.WriteString(resolve(seg.variable))
		} else {
			b.WriteString(seg.literal)
		}
	}
	return b.String()
}

// Variable returns the declaration for the named variable.
func (t *Template) Variable(name string) (Variable, bool) {
	for _, v := range t.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}
