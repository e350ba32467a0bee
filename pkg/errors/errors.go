// Package errors defines the error kinds surfaced by the takeoff engine.
package errors

import "fmt"

// Kind identifies the category of a TakeoffError.
type Kind string

const (
	// InvalidScale marks a ScaleDefinition with a non-positive pixel or real distance.
	InvalidScale Kind = "INVALID_SCALE"
	// UnknownUnit marks a unit string that did not match any recognized token.
	UnknownUnit Kind = "UNKNOWN_UNIT"
	// EmptyGeometry marks a geometry query against degenerate input (too few points).
	EmptyGeometry Kind = "EMPTY_GEOMETRY"
	// MutexPoisoned marks an entity whose guarding lock was poisoned by a prior panic.
	MutexPoisoned Kind = "MUTEX_POISONED"
)

// TakeoffError is the error type returned by every fallible operation in the engine.
// It carries no stack trace; callers get a short, stable description of the
// offending field and value.
type TakeoffError struct {
	Kind  Kind
	Field string
	Value string
	Err   error
}

func (e *TakeoffError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s=%s: %v", e.Kind, e.Field, e.Value, e.Err)
	}
	if e.Field == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s=%s", e.Kind, e.Field, e.Value)
}

func (e *TakeoffError) Unwrap() error {
	return e.Err
}

// Is supports errors.Is comparisons by Kind alone, ignoring Field/Value/Err.
func (e *TakeoffError) Is(target error) bool {
	other, ok := target.(*TakeoffError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// NewInvalidScale reports a ScaleDefinition with a non-positive distance.
func NewInvalidScale(detail string) *TakeoffError {
	return &TakeoffError{Kind: InvalidScale, Field: "scale", Value: detail}
}

// NewUnknownUnit reports an unrecognized unit string.
func NewUnknownUnit(input string) *TakeoffError {
	return &TakeoffError{Kind: UnknownUnit, Field: "unit", Value: input}
}

// NewEmptyGeometry reports a geometry query against degenerate input.
func NewEmptyGeometry(what string) *TakeoffError {
	return &TakeoffError{Kind: EmptyGeometry, Field: "geometry", Value: what}
}

// NewMutexPoisoned reports a lock poisoned by a prior panic in the named entity.
func NewMutexPoisoned(which string) *TakeoffError {
	return &TakeoffError{Kind: MutexPoisoned, Field: "lock", Value: which}
}

// Of reports whether err is a *TakeoffError of the given Kind.
func Of(err error, kind Kind) bool {
	te, ok := err.(*TakeoffError)
	return ok && te.Kind == kind
}
