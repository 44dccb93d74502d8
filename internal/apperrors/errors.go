package apperrors

import "fmt"

// ProviderCallError represents a failure of a single provider operation.
// It is always recovered at the aggregator boundary: the provider's health
// record absorbs it and siblings keep their results.
type ProviderCallError struct {
	Provider string
	Op       string
	Err      error
}

// Error implements the error interface.
func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("provider %s: %s failed: %v", e.Provider, e.Op, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ProviderCallError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ProviderCallError) Is(target error) bool {
	_, ok := target.(*ProviderCallError)
	return ok
}

// NewProviderCallError creates a new ProviderCallError.
func NewProviderCallError(provider, op string, err error) *ProviderCallError {
	return &ProviderCallError{Provider: provider, Op: op, Err: err}
}

// RegistrationError is returned when a provider cannot be registered because
// required metadata is missing. The offending provider is excluded (marked
// Disabled); registration of the remaining providers continues.
type RegistrationError struct {
	Provider string
	Reason   string
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("provider %s rejected at registration: %s", e.Provider, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *RegistrationError) Is(target error) bool {
	_, ok := target.(*RegistrationError)
	return ok
}

// NewRegistrationError creates a new RegistrationError.
func NewRegistrationError(provider, reason string) *RegistrationError {
	return &RegistrationError{Provider: provider, Reason: reason}
}

// CatalogLookupError represents a failure of the external metadata catalog.
// It is caught at the pipeline boundary: the item is marked Failed (or left
// Pending) and processing continues.
type CatalogLookupError struct {
	Query string
	Kind  string
	Err   error
}

// Error implements the error interface.
func (e *CatalogLookupError) Error() string {
	return fmt.Sprintf("catalog lookup for %q (%s) failed: %v", e.Query, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *CatalogLookupError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *CatalogLookupError) Is(target error) bool {
	_, ok := target.(*CatalogLookupError)
	return ok
}

// NewCatalogLookupError creates a new CatalogLookupError.
func NewCatalogLookupError(query, kind string, err error) *CatalogLookupError {
	return &CatalogLookupError{Query: query, Kind: kind, Err: err}
}
