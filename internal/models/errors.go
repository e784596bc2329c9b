package models

import (
	"errors"
	"fmt"
)

// ValidationError rejects a request before any storage mutation.
// Maps to HTTP 400 at the boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid request: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a named field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError indicates the referenced holding does not exist.
// Maps to HTTP 404 at the boundary.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.Key)
}

// NewNotFoundError creates a NotFoundError for a resource key.
func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// ErrUpstreamUnavailable marks a price provider or store failure.
// The request path degrades to fallback pricing instead of failing;
// only the ingest job surfaces it, per symbol, and continues.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
