package hydrate

// Metadata is the sizing and dispatch information an API layer reports
// alongside an expanded prompt.
type Metadata struct {
	// VariablesUsed lists the declared variables that resolved to a
	// value, in declaration order.
	VariablesUsed []string

	// EstimatedUnits mirrors the prompt's heuristic unit count.
	EstimatedUnits int

	// EstimatedCost mirrors the prompt's heuristic pre-flight cost in
	// minor currency units. Not the authoritative cost.
	EstimatedCost int64

	// ConfiguredProviders lists the template's target providers in
	// authored preference order.
	ConfiguredProviders []string
}

// Expansion is a hydrated prompt paired with its metadata.
type Expansion struct {
	Prompt   *HydratedPrompt
	Metadata Metadata
}

// Expand hydrates the identified template and assembles the metadata an
// API layer needs to report to its caller. It is a convenience
// composition of Hydrate plus sizing bookkeeping; no per-call overrides
// apply.
func (h *Hydrator) Expand(templateID string, bindings map[string]string) (*Expansion, error) {
	prompt, err := h.Hydrate(templateID, bindings, nil)
	if err != nil {
		return nil, err
	}

	var used []string
	for _, v := range prompt.Template.Variables {
		if _, ok := h.resolve(v, bindings, nil); ok {
			used = append(used, v.Name)
		}
	}

	providers := make([]string, len(prompt.Template.Defaults.Providers))
	copy(providers, prompt.Template.Defaults.Providers)

	return &Expansion{
		Prompt: prompt,
		Metadata: Metadata{
			VariablesUsed:       used,
			EstimatedUnits:      prompt.EstimatedUnits,
			EstimatedCost:       prompt.EstimatedCost,
			ConfiguredProviders: providers,
		},
	}, nil
}
