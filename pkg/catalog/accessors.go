package catalog

import "time"

// Version returns the catalog version string.
func (c *Catalog) Version() string {
	return c.version
}

// Name returns the catalog's descriptive name.
func (c *Catalog) Name() string {
	return c.name
}

// Description returns the catalog's description.
func (c *Catalog) Description() string {
	return c.description
}

// CreatedAt returns the catalog creation timestamp.
func (c *Catalog) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the catalog update timestamp.
func (c *Catalog) UpdatedAt() time.Time {
	return c.updatedAt
}

// Len returns the number of templates in the catalog.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// ByID returns the template with the given id.
func (c *Catalog) ByID(id string) (*Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// List returns all templates in catalog order.
func (c *Catalog) List() []*Template {
	out := make([]*Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// ByCategory returns the templates whose Category matches exactly.
func (c *Catalog) ByCategory(category string) []*Template {
	return c.filter(func(t *Template) bool { return t.Category == category })
}

// ByIntent returns the templates whose Intent matches exactly.
func (c *Catalog) ByIntent(intent string) []*Template {
	return c.filter(func(t *Template) bool { return t.Intent == intent })
}

// ByLanguage returns the templates whose Language matches exactly.
func (c *Catalog) ByLanguage(language string) []*Template {
	return c.filter(func(t *Template) bool { return t.Language == language })
}

// ValidationErrors returns the cross-validation findings recorded at load.
func (c *Catalog) ValidationErrors() []ValidationError {
	out := make([]ValidationError, len(c.validationErrors))
	copy(out, c.validationErrors)
	return out
}

// filter returns the templates matching the predicate, in catalog order.
func (c *Catalog) filter(keep func(*Template) bool) []*Template {
	var out []*Template
	for _, t := range c.templates {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
