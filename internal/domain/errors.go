package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates a missing entity or embedding.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a malformed or out-of-range model response.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration indicates missing credentials or invalid settings.
	ErrConfiguration = errors.New("configuration error")

	// ErrProviderTimeout indicates a provider call exceeded its own deadline.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrDimensionMismatch indicates vectors of different length were compared.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrCacheMiss indicates no cached entry was found.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNoProviders indicates an empty provider chain.
	ErrNoProviders = errors.New("no providers configured")

	// ErrBatchCanceled marks jobs never started because the batch was canceled.
	ErrBatchCanceled = errors.New("batch canceled before job started")
)

// ProviderError wraps a failure reported by an embedding or completion provider.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the provider call hit its deadline.
func (e *ProviderError) Timeout() bool {
	return errors.Is(e.Err, ErrProviderTimeout)
}

// ValidationError describes why a model response was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ChainError collects every failed attempt of an ordered provider chain.
type ChainError struct {
	Attempts []*ProviderError
}

func (e *ChainError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		parts = append(parts, attempt.Error())
	}
	return fmt.Sprintf("all %d provider attempts failed: %s", len(e.Attempts), strings.Join(parts, "; "))
}

func (e *ChainError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		errs = append(errs, attempt)
	}
	return errs
}

// NotFoundError builds an ErrNotFound-wrapped error for an entity.
func NotFoundError(kind EntityKind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
