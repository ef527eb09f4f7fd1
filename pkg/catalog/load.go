package catalog

import (
	"encoding/json"
	"fmt"
	"time"
)

// payload is the serialized catalog form.
type payload struct {
	Version     string      `json:"version"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Prompts     []*Template `json:"prompts"`
}

// Load parses raw JSON into a schema-checked Catalog and runs the
// cross-validation pass with the given built-in default bindings.
//
// Structural problems are fatal and return an error with no catalog.
// Cross-validation findings are non-fatal; the catalog loads and the
// findings are available from ValidationErrors.
func Load(raw []byte, builtinDefaults map[string]string) (*Catalog, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if p.Version == "" {
		return nil, fmt.Errorf("catalog is missing required field %q", "version")
	}
	if p.Prompts == nil {
		return nil, fmt.Errorf("catalog is missing required field %q", "prompts")
	}

	c := &Catalog{
		version:     p.Version,
		name:        p.Name,
		description: p.Description,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
		templates:   p.Prompts,
		byID:        make(map[string]*Template, len(p.Prompts)),
	}

	for i, tmpl := range p.Prompts {
		if tmpl == nil {
			return nil, fmt.Errorf("prompt %d is null", i)
		}
		if tmpl.ID == "" {
			return nil, fmt.Errorf("prompt %d is missing required field %q", i, "id")
		}
		if tmpl.Body == "" {
			return nil, fmt.Errorf("template %q is missing required field %q", tmpl.ID, "body")
		}
		if _, dup := c.byID[tmpl.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", tmpl.ID)
		}

		if err := validateVariables(tmpl); err != nil {
			return nil, err
		}

		tmpl.program, tmpl.placeholders = compileBody(tmpl.Body)
		c.byID[tmpl.ID] = tmpl
	}

	c.validationErrors = crossValidate(c, builtinDefaults)
	return c, nil
}

// validateVariables applies the structural rules for variable
// declarations: names must be present and unique within the template,
// and the type (when given) must be a known semantic type.
func validateVariables(tmpl *Template) error {
	seen := make(map[string]bool, len(tmpl.Variables))
	for _, v := range tmpl.Variables {
		if v.Name == "" {
			return fmt.Errorf("template %q declares a variable with no name", tmpl.ID)
		}
		if seen[v.Name] {
			return fmt.Errorf("template %q declares variable %q twice", tmpl.ID, v.Name)
		}
		seen[v.Name] = true

		switch v.Type {
		case "", TypeString, TypeNumber, TypeBoolean, TypeArray:
		default:
			return fmt.Errorf("template %q variable %q has unknown type %q", tmpl.ID, v.Name, v.Type)
		}
	}
	return nil
}
