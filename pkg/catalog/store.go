package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

// Store holds the current catalog behind an atomic pointer. Load swaps
// the catalog in a single step on success and leaves the previous
// catalog untouched on failure, so in-flight readers never observe a
// partially updated catalog.
type Store struct {
	current atomic.Pointer[Catalog]

	// builtinDefaults is the catalog-wide default binding set, fixed at
	// store construction.
	builtinDefaults map[string]string

	logger *slog.Logger
}

// NewStore creates an empty store with the given built-in default
// bindings. The defaults map is copied.
func NewStore(builtinDefaults map[string]string) *Store {
	defaults := make(map[string]string, len(builtinDefaults))
	for k, v := range builtinDefaults {
		defaults[k] = v
	}

	return &Store{
		builtinDefaults: defaults,
		logger:          slog.Default().With("component", "catalog.store"),
	}
}

// Load parses raw catalog JSON and installs it atomically. On failure
// the previous catalog (if any) stays active.
func (s *Store) Load(raw []byte) error {
	c, err := Load(raw, s.builtinDefaults)
	if err != nil {
		return err
	}

	s.current.Store(c)

	if n := len(c.validationErrors); n > 0 {
		s.logger.Warn("catalog loaded with validation errors",
			"version", c.version,
			"templates", len(c.templates),
			"validation_errors", n,
		)
	} else {
		s.logger.Info("catalog loaded",
			"version", c.version,
			"templates", len(c.templates),
		)
	}
	return nil
}

// LoadFile reads and installs a catalog from a file path.
func (s *Store) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %q: %w", path, err)
	}
	return s.Load(raw)
}

// Current returns the installed catalog, or nil when nothing has been
// loaded yet. The returned catalog is immutable and remains valid even
// if the store reloads underneath the caller.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// BuiltinDefaults returns a copy of the catalog-wide default bindings.
func (s *Store) BuiltinDefaults() map[string]string {
	out := make(map[string]string, len(s.builtinDefaults))
	for k, v := range s.builtinDefaults {
		out[k] = v
	}
	return out
}
