package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for storage lookups
var (
	ErrScorecardNotFound = errors.New("scorecard not found")
	ErrTitleNotFound     = errors.New("title not found")
)

// ValidationError reports malformed or missing mandatory input. It surfaces
// to the caller immediately and is never silently swallowed.
type ValidationError struct {
	Entity string // e.g. "title", "scenario", "concept"
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: field %q %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
}

// NewValidationError constructs a ValidationError
func NewValidationError(entity, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConfigurationError reports an assumptions store constructed with
// out-of-range values. Fatal: it fails at construction, not at use.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid assumption %q: %s", e.Param, e.Reason)
}

// NewConfigurationError constructs a ConfigurationError
func NewConfigurationError(param, reason string) *ConfigurationError {
	return &ConfigurationError{Param: param, Reason: reason}
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
