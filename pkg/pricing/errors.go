package pricing

import (
	"errors"
	"fmt"
)

// Common pricing errors that can be checked with errors.Is().
var (
	// ErrUnknownProvider is returned when the provider has no pricing entries.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnknownModel is returned when the provider is known but the model
	// has no pricing entry.
	ErrUnknownModel = errors.New("unknown model")
)

// UnknownProviderError is returned when a cost calculation names a provider
// that has no entries in the price table.
type UnknownProviderError struct {
	// Provider is the unrecognized provider name.
	Provider string
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q in price table", e.Provider)
}

// Is implements error matching for errors.Is().
func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}

// UnknownModelError is returned when a cost calculation names a model the
// provider does not price.
type UnknownModelError struct {
	// Provider is the provider name.
	Provider string

	// Model is the unrecognized model name.
	Model string
}

// Error implements the error interface.
func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model %q for provider %q in price table", e.Model, e.Provider)
}

// Is implements error matching for errors.Is().
func (e *UnknownModelError) Is(target error) bool {
	return target == ErrUnknownModel
}
