package hydrate

import (
	"errors"

	"github.com/google/uuid"
)

// Filters restricts batch hydration to templates matching the given
// fields. Empty fields match everything. Filters apply after lookup,
// against the resolved template's own fields.
type Filters struct {
	// Intent keeps only templates with this exact intent.
	Intent string

	// Language keeps only templates with this exact language.
	Language string
}

// BatchResult is the outcome of one batch hydration run.
//
// Ids that are not found and templates excluded by filters are dropped
// from Prompts without error; the drop tallies let callers that care
// distinguish the two without complicating the simple path.
type BatchResult struct {
	// RunID uniquely identifies this batch run.
	RunID string

	// Requested is the number of template ids asked for.
	Requested int

	// Prompts holds the hydrated prompts in request order.
	Prompts []*HydratedPrompt

	// NotFound counts requested ids with no catalog match.
	NotFound int

	// FilteredOut counts found templates excluded by Filters.
	FilteredOut int
}

// Hydrated returns the number of prompts produced.
func (r *BatchResult) Hydrated() int {
	return len(r.Prompts)
}

// HydrateMany hydrates each requested template with the same shared
// binding set. Unknown ids are silently dropped; filters exclude
// templates after lookup. Each template is hydrated independently and
// identically to Hydrate, so the batch is trivially parallelizable by
// the caller.
func (h *Hydrator) HydrateMany(templateIDs []string, bindings map[string]string, filters Filters) (*BatchResult, error) {
	c := h.source.Current()
	if c == nil {
		return nil, ErrNoCatalog
	}

	result := &BatchResult{
		RunID:     uuid.New().String(),
		Requested: len(templateIDs),
	}

	for _, id := range templateIDs {
		tmpl, ok := c.ByID(id)
		if !ok {
			result.NotFound++
			h.observeBatchDrop("not_found")
			continue
		}

		if filters.Intent != "" && tmpl.Intent != filters.Intent {
			result.FilteredOut++
			h.observeBatchDrop("filtered")
			continue
		}
		if filters.Language != "" && tmpl.Language != filters.Language {
			result.FilteredOut++
			h.observeBatchDrop("filtered")
			continue
		}

		result.Prompts = append(result.Prompts, h.hydrateTemplate(tmpl, bindings, nil))
		h.observeHydration("ok")
	}

	h.logger.Debug("batch hydration complete",
		"run_id", result.RunID,
		"requested", result.Requested,
		"hydrated", result.Hydrated(),
		"not_found", result.NotFound,
		"filtered_out", result.FilteredOut,
	)

	return result, nil
}

// IsNotFound reports whether err is a template-not-found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}
