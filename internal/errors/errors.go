// Package errors provides a lightweight structured error type (ThedocError)
// for category-based classification across the extraction pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a thedoc error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Extraction errors
	CategoryParse      ErrorCategory = "parse"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Output and collaborator errors
	CategoryRender ErrorCategory = "render"
	CategoryGit    ErrorCategory = "git"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// ThedocError is a structured error with category, severity, and context
type ThedocError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ThedocError
type ContextFields map[string]any

// Error implements the error interface
func (e *ThedocError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ThedocError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ThedocError) WithContext(key string, value any) *ThedocError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ThedocError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ThedocError {
	return &ThedocError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ThedocError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ThedocError {
	return &ThedocError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if te, ok := err.(*ThedocError); ok {
		return te.Category == category
	}
	return false
}
