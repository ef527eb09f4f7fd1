package catalog

import "fmt"

// ValidationError is one non-fatal cross-validation finding. The catalog
// loads regardless of these; callers inspect the list to decide whether
// to proceed.
type ValidationError struct {
	// TemplateID names the offending template.
	TemplateID string `json:"template_id"`

	// Field is the template field the finding concerns ("body" or
	// "variables").
	Field string `json:"field"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Error returns the formatted finding.
func (e ValidationError) Error() string {
	return fmt.Sprintf("template %q: %s: %s", e.TemplateID, e.Field, e.Message)
}

// crossValidate runs the non-fatal validation pass over every template:
//
//  1. a body placeholder with no matching declared variable
//  2. a declared variable never referenced in the body
//  3. a required variable with no declared default and no built-in
//     default binding
func crossValidate(c *Catalog, builtinDefaults map[string]string) []ValidationError {
	var errs []ValidationError

	for _, tmpl := range c.templates {
		declared := make(map[string]bool, len(tmpl.Variables))
		for _, v := range tmpl.Variables {
			declared[v.Name] = true
		}

		referenced := make(map[string]bool, len(tmpl.placeholders))
		for _, name := range tmpl.placeholders {
			referenced[name] = true
			if !declared[name] {
				errs = append(errs, ValidationError{
					TemplateID: tmpl.ID,
					Field:      "body",
					Message:    fmt.Sprintf("placeholder {{%s}} has no declared variable", name),
				})
			}
		}

		for _, v := range tmpl.Variables {
			if !referenced[v.Name] {
				errs = append(errs, ValidationError{
					TemplateID: tmpl.ID,
					Field:      "variables",
					Message:    fmt.Sprintf("variable %q is never referenced in the body", v.Name),
				})
			}

			if v.Required && v.Default == "" {
				if _, ok := builtinDefaults[v.Name]; !ok {
					errs = append(errs, ValidationError{
						TemplateID: tmpl.ID,
						Field:      "variables",
						Message:    fmt.Sprintf("required variable %q has no default and no built-in default binding", v.Name),
					})
				}
			}
		}
	}

	return errs
}
