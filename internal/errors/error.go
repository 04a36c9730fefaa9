package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryRouting Category = "routing"
	CategoryPage    Category = "page"
	CategoryCLI     Category = "cli"
)

// SimphError is a structured error with a code, category, and fix
// suggestion.
type SimphError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (config, routing, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code or configuration showing the correct approach.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SimphError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SimphError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SimphError) WithSuggestion(s string) *SimphError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *SimphError) WithExample(ex string) *SimphError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SimphError) WithDetail(d string) *SimphError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SimphError) Wrap(err error) *SimphError {
	e.Wrapped = err
	return e
}

// New creates a SimphError from a registered error code.
func New(code string) *SimphError {
	template, ok := registry[code]
	if !ok {
		return &SimphError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SimphError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new SimphError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SimphError {
	return &SimphError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SimphError.
func FromError(err error, code string) *SimphError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SimphError); ok {
		return se
	}
	return New(code).Wrap(err)
}
