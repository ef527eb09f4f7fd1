package hydrate

import (
	"log/slog"
	"math"

	"dealerscope/saturn/pkg/catalog"
)

// MissingPrefix and MissingSuffix delimit the inline sentinel substituted
// for an unresolved required variable, e.g. "[MISSING:city]".
const (
	MissingPrefix = "[MISSING:"
	MissingSuffix = "]"
)

// DefaultAverageUnitPrice is the fixed average price per estimated unit,
// in minor currency units, used by the pre-flight sizing heuristic.
const DefaultAverageUnitPrice = 0.2

// Source yields the current catalog. catalog.Store satisfies Source, so
// a hydrator wired to a store picks up reloads automatically; each call
// works against one consistent catalog snapshot.
type Source interface {
	Current() *catalog.Catalog
}

// staticSource adapts a fixed catalog to the Source interface.
type staticSource struct {
	c *catalog.Catalog
}

func (s staticSource) Current() *catalog.Catalog { return s.c }

// Static wraps a fixed catalog as a Source, for tests and one-shot tools.
func Static(c *catalog.Catalog) Source {
	return staticSource{c: c}
}

// HydratedPrompt is a template plus its substituted body text and the
// sizing diagnostics a dispatch layer needs.
type HydratedPrompt struct {
	// Template is the hydrated template. Immutable; shared with the
	// catalog.
	Template *catalog.Template

	// Text is the final substituted body.
	Text string

	// MissingVariables lists the required variables that no binding tier
	// resolved, in declaration order.
	MissingVariables []string

	// EstimatedUnits is ceil(len(Text)/4), a character-count heuristic.
	// Not a real token count.
	EstimatedUnits int

	// EstimatedCost is the heuristic pre-flight cost in minor currency
	// units. Not the authoritative cost; see pkg/pricing.
	EstimatedCost int64
}

// Hydrator binds variable values into catalog templates. It is stateless
// apart from its immutable configuration and safe for concurrent use.
type Hydrator struct {
	source   Source
	defaults map[string]string
	avgPrice float64
	metrics  *Metrics
	logger   *slog.Logger
}

// Option customizes a Hydrator at construction time.
type Option func(*Hydrator)

// WithAverageUnitPrice overrides the fixed average unit price used by
// the sizing heuristic, in minor currency units per unit.
func WithAverageUnitPrice(price float64) Option {
	return func(h *Hydrator) {
		if price > 0 {
			h.avgPrice = price
		}
	}
}

// WithMetrics attaches Prometheus metrics to the hydrator.
func WithMetrics(metrics *Metrics) Option {
	return func(h *Hydrator) {
		h.metrics = metrics
	}
}

// New creates a Hydrator over the given catalog source. builtinDefaults
// is the catalog-wide default binding set; the map is copied.
func New(source Source, builtinDefaults map[string]string, opts ...Option) *Hydrator {
	defaults := make(map[string]string, len(builtinDefaults))
	for k, v := range builtinDefaults {
		defaults[k] = v
	}

	h := &Hydrator{
		source:   source,
		defaults: defaults,
		avgPrice: DefaultAverageUnitPrice,
		logger:   slog.Default().With("component", "hydrate"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hydrate binds the merged binding set into the identified template.
//
// bindings is the caller-supplied binding set; overrides are per-call
// values with the highest priority. Neither map is mutated. Returns a
// TemplateNotFoundError when the id has no exact match.
func (h *Hydrator) Hydrate(templateID string, bindings, overrides map[string]string) (*HydratedPrompt, error) {
	c := h.source.Current()
	if c == nil {
		return nil, ErrNoCatalog
	}

	tmpl, ok := c.ByID(templateID)
	if !ok {
		h.observeHydration("not_found")
		return nil, &TemplateNotFoundError{ID: templateID}
	}

	prompt := h.hydrateTemplate(tmpl, bindings, overrides)
	h.observeHydration("ok")
	return prompt, nil
}

// hydrateTemplate performs the substitution for one resolved template.
func (h *Hydrator) hydrateTemplate(tmpl *catalog.Template, bindings, overrides map[string]string) *HydratedPrompt {
	text := tmpl.Substitute(func(name string) string {
		return h.resolveOccurrence(tmpl, name, bindings, overrides)
	})

	// Missing variables are reported in declaration order, independent
	// of how often each appears in the body.
	var missing []string
	for _, v := range tmpl.Variables {
		if !v.Required {
			continue
		}
		if _, ok := h.resolve(v, bindings, overrides); !ok {
			missing = append(missing, v.Name)
		}
	}

	units := estimateUnits(text)
	prompt := &HydratedPrompt{
		Template:         tmpl,
		Text:             text,
		MissingVariables: missing,
		EstimatedUnits:   units,
		EstimatedCost:    int64(math.Ceil(float64(units) * h.avgPrice)),
	}

	if len(missing) > 0 {
		h.logger.Warn("hydration with missing required variables",
			"template", tmpl.ID,
			"missing", missing,
		)
		h.observeMissing(tmpl.ID, len(missing))
	}

	return prompt
}

// resolveOccurrence produces the substitution value for one placeholder
// occurrence in the body.
func (h *Hydrator) resolveOccurrence(tmpl *catalog.Template, name string, bindings, overrides map[string]string) string {
	decl, declared := tmpl.Variable(name)
	if !declared {
		// Undeclared placeholder: already flagged by catalog validation.
		// Substitute from the binding chain when a value happens to
		// exist, otherwise leave the placeholder visible in the text.
		if value, ok := lookupChain(name, overrides, bindings, h.defaults); ok {
			return value
		}
		return "{{" + name + "}}"
	}

	value, ok := h.resolve(decl, bindings, overrides)
	if ok {
		return value
	}
	if decl.Required {
		return MissingPrefix + decl.Name + MissingSuffix
	}
	return ""
}

// resolve walks the binding chain for a declared variable. A tier
// resolves only with a non-empty value; empty strings fall through.
func (h *Hydrator) resolve(decl catalog.Variable, bindings, overrides map[string]string) (string, bool) {
	if value, ok := lookupChain(decl.Name, overrides, bindings, h.defaults); ok {
		return value, true
	}
	if decl.Default != "" {
		return decl.Default, true
	}
	return "", false
}

// lookupChain returns the first non-empty value for name across the
// given maps, in order.
func lookupChain(name string, tiers ...map[string]string) (string, bool) {
	for _, tier := range tiers {
		if value, ok := tier[name]; ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// estimateUnits applies the character-count heuristic: one unit per four
// characters, rounded up.
func estimateUnits(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

func (h *Hydrator) observeHydration(result string) {
	if h.metrics != nil {
		h.metrics.ObserveHydration(result)
	}
}

func (h *Hydrator) observeMissing(templateID string, count int) {
	if h.metrics != nil {
		h.metrics.ObserveMissing(templateID, count)
	}
}

func (h *Hydrator) observeBatchDrop(reason string) {
	if h.metrics != nil {
		h.metrics.ObserveBatchDrop(reason)
	}
}
