package domain

import "fmt"

// Tagged error types shared across components. Handlers map these onto
// HTTP statuses at the presentation boundary; internal code matches them
// with errors.As.

// ValidationError reports malformed input, e.g. an empty API key.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing agent, approval or credential. A decide
// call on an already-decided approval also reports NotFoundError: from the
// caller's view no pending entry with that id exists.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// UnknownProviderError reports a stored credential naming a provider the
// router has no adapter for. The router fails with this instead of silently
// falling back to local generation.
type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q: use gemini, openai or anthropic", e.Provider)
}

// UnsupportedKindError reports an approval whose kind has no registered
// executor. Raised at decision time so drafts are never silently dropped.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("no executor registered for kind %q", e.Kind)
}

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
