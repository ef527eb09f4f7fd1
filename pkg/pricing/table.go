package pricing

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Table is an ordered collection of pricing entries. The order is fixed at
// construction time and never changes; Entries always returns entries in
// that order so selection tie-breaking is deterministic.
type Table struct {
	entries []Entry

	// index maps provider -> model -> position in entries for O(1) lookup.
	index map[string]map[string]int
}

// NewTable creates a Table from the given entries, preserving their order.
// A duplicate (provider, model) pair is an error.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]map[string]int),
	}

	for _, e := range entries {
		if e.Provider == "" || e.Model == "" {
			return nil, fmt.Errorf("pricing entry missing provider or model: %+v", e)
		}
		if e.InputPricePer1K < 0 || e.OutputPricePer1K < 0 {
			return nil, fmt.Errorf("pricing entry %s/%s has negative price", e.Provider, e.Model)
		}

		models, ok := t.index[e.Provider]
		if !ok {
			models = make(map[string]int)
			t.index[e.Provider] = models
		}
		if _, dup := models[e.Model]; dup {
			return nil, fmt.Errorf("duplicate pricing entry for %s/%s", e.Provider, e.Model)
		}

		models[e.Model] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	return t, nil
}

// LoadTable parses a YAML document containing a list of pricing entries
// and builds a Table from it. The document order becomes the table order.
func LoadTable(raw []byte) (*Table, error) {
	var entries []Entry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse pricing table: %w", err)
	}
	return NewTable(entries)
}

// DefaultTable returns the built-in price table. Prices are cents per
// 1000 tokens and reflect published list prices at the time of writing.
func DefaultTable() *Table {
	t, err := NewTable([]Entry{
		{Provider: "openai", Model: "gpt-4o", InputPricePer1K: 0.25, OutputPricePer1K: 1.0, TokenCeiling: 128000},
		{Provider: "openai", Model: "gpt-4o-mini", InputPricePer1K: 0.015, OutputPricePer1K: 0.06, TokenCeiling: 128000},
		{Provider: "anthropic", Model: "claude-sonnet-4", InputPricePer1K: 0.3, OutputPricePer1K: 1.5, TokenCeiling: 200000},
		{Provider: "anthropic", Model: "claude-haiku-3.5", InputPricePer1K: 0.08, OutputPricePer1K: 0.4, TokenCeiling: 200000},
		{Provider: "google", Model: "gemini-1.5-pro", InputPricePer1K: 0.125, OutputPricePer1K: 0.5, TokenCeiling: 1000000},
		{Provider: "google", Model: "gemini-1.5-flash", InputPricePer1K: 0.0075, OutputPricePer1K: 0.03, TokenCeiling: 1000000},
	})
	if err != nil {
		// The built-in table is a compile-time constant in all but syntax;
		// a construction failure is a programming error.
		panic(err)
	}
	return t
}

// Lookup returns the entry for the given provider and model.
func (t *Table) Lookup(provider, model string) (Entry, bool) {
	models, ok := t.index[provider]
	if !ok {
		return Entry{}, false
	}
	pos, ok := models[model]
	if !ok {
		return Entry{}, false
	}
	return t.entries[pos], true
}

// HasProvider reports whether the table contains any entry for the provider.
func (t *Table) HasProvider(provider string) bool {
	_, ok := t.index[provider]
	return ok
}

// Entries returns all entries in their fixed table order. The returned
// slice is a copy; mutating it does not affect the table.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}
