// Package errors provides custom error types for the massfill system.
// Structural problems with uploaded documents (a missing sheet or column)
// are fatal and carry enough context to tell the operator which file to fix.
// Data-quality problems never surface here; they are reported through
// diagnostics instead.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the massfill system
var (
	// ErrMalformedSource indicates that a source document lacks a required sheet or column
	ErrMalformedSource = errors.New("malformed source")

	// ErrMissingColumn indicates that a destination column could not be located in the template
	ErrMissingColumn = errors.New("missing destination column")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates that engine configuration was rejected
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MalformedSourceError represents a source document that cannot be processed
// because a required sheet or column is absent.
type MalformedSourceError struct {
	Document string // "basic_info", "sales_info", "media_info", "shipment_info", "template"
	Sheet    string
	Column   string
	Message  string
}

// Error implements the error interface
func (e *MalformedSourceError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("malformed %s (sheet %s): column %s %s", e.Document, e.Sheet, e.Column, e.Message)
	case e.Sheet != "":
		return fmt.Sprintf("malformed %s (sheet %s): %s", e.Document, e.Sheet, e.Message)
	default:
		return fmt.Sprintf("malformed %s: %s", e.Document, e.Message)
	}
}

// Is implements errors.Is support
func (e *MalformedSourceError) Is(target error) bool {
	return target == ErrMalformedSource
}

// NewMissingSourceColumn creates a MalformedSourceError for an absent column
func NewMissingSourceColumn(document, sheet, column string) *MalformedSourceError {
	return &MalformedSourceError{
		Document: document,
		Sheet:    sheet,
		Column:   column,
		Message:  "not found",
	}
}

// NewMalformedSource creates a MalformedSourceError with a free-form message
func NewMalformedSource(document, sheet, message string) *MalformedSourceError {
	return &MalformedSourceError{Document: document, Sheet: sheet, Message: message}
}

// MissingColumnError represents a destination column that matched none of
// the accepted naming patterns.
type MissingColumnError struct {
	Document string
	Column   string
	Patterns []string
}

// Error implements the error interface
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s has no %s column (tried: %s)", e.Document, e.Column, strings.Join(e.Patterns, ", "))
}

// Is implements errors.Is support
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// NewMissingColumnError creates a new MissingColumnError
func NewMissingColumnError(document, column string, patterns []string) *MissingColumnError {
	return &MissingColumnError{Document: document, Column: column, Patterns: patterns}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "save"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsMalformedSource checks if an error is a malformed source error
func IsMalformedSource(err error) bool {
	return errors.Is(err, ErrMalformedSource)
}

// IsMissingColumn checks if an error is a missing destination column error
func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}
