package hydrate

import (
	"errors"
	"fmt"
)

// Common hydration errors that can be checked with errors.Is().
var (
	// ErrTemplateNotFound is returned when the requested template id is
	// not in the catalog.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNoCatalog is returned when no catalog has been loaded yet.
	ErrNoCatalog = errors.New("no catalog loaded")
)

// TemplateNotFoundError is returned when a template id has no exact
// match in the catalog.
type TemplateNotFoundError struct {
	// ID is the requested template id.
	ID string
}

// Error implements the error interface.
func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found in catalog", e.ID)
}

// Is implements error matching for errors.Is().
func (e *TemplateNotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}
