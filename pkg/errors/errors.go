// Package errors provides custom error types for the sync tool.
// These errors enable programmatic error checking and keep process
// termination out of the libraries: helpers return errors, and only
// the CLI entry point decides the exit status.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the sync tool
var (
	// ErrMalformedTimestamp indicates an updated_at value that matches no
	// recognized ISO-8601 UTC pattern. Fatal to the run; no partial report
	// may be emitted after it.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMissingKey indicates a record missing a required attribute
	ErrMissingKey = errors.New("missing key")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrServiceUnavailable indicates that the remote service is temporarily unavailable
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// MalformedTimestampError reports an updated_at value that could not be
// parsed by any timestamp layout.
type MalformedTimestampError struct {
	Source string // "csv" or "airtable"
	Email  string
	Value  string
}

// Error implements the error interface
func (e *MalformedTimestampError) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("malformed timestamp %q for %s record %s", e.Value, e.Source, e.Email)
	}
	return fmt.Sprintf("malformed timestamp %q", e.Value)
}

// Is implements errors.Is support
func (e *MalformedTimestampError) Is(target error) bool {
	return target == ErrMalformedTimestamp
}

// MissingKeyError reports a record missing a required attribute before
// it reaches the reconciler.
type MissingKeyError struct {
	Source string
	Key    string
}

// Error implements the error interface
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s record missing required attribute %q", e.Source, e.Key)
}

// Is implements errors.Is support
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
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

// APIError represents an error from the Airtable API
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("airtable API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("airtable API error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrServiceUnavailable
	}
	return false
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

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "csv"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "open", "close"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsMalformedTimestamp checks if an error is a malformed timestamp error
func IsMalformedTimestamp(err error) bool {
	return errors.Is(err, ErrMalformedTimestamp)
}

// IsMissingKey checks if an error is a missing key error
func IsMissingKey(err error) bool {
	return errors.Is(err, ErrMissingKey)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapAPI wraps an error as an APIError
func WrapAPI(statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{StatusCode: statusCode, Message: err.Error(), Err: err}
}
