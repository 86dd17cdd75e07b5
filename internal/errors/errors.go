// Package errors provides the typed error taxonomy for takeoff runs.
package errors

import (
	"fmt"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an unsupported input kind (not a directory, zip, or PDF)
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing indicates a document that could not be parsed at all
	TypeParsing Type = "PARSING_ERROR"

	// TypeMalformedElement indicates a JSON element missing required fields
	// or carrying invalid geometry
	TypeMalformedElement Type = "MALFORMED_ELEMENT"

	// TypeNotSupported indicates a trade with no registered estimator
	TypeNotSupported Type = "NOT_SUPPORTED"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// UnsupportedInput creates an error for an input path that is neither a
// directory, a zip archive, nor a PDF file.
func UnsupportedInput(path string) *Error {
	return Newf(TypeInput,
		"unsupported drawing input: %s (expected directory, PDF, or zip archive)", path,
	).WithContext("path", path)
}

// Parsing creates an error for a document that could not be parsed
func Parsing(source string, cause error) *Error {
	return Wrap(TypeParsing, fmt.Sprintf("failed to parse drawing document %s", source), cause).
		WithContext("source", source)
}

// MalformedElement creates an error for an element missing required fields
func MalformedElement(source string, missing []string) *Error {
	return Newf(TypeMalformedElement,
		"element missing fields [%s] in %s", strings.Join(missing, ", "), source,
	).WithContext("source", source)
}

// MalformedGeometry creates an error for an element whose geometry is not an
// object of numeric values.
func MalformedGeometry(source, elementID, detail string) *Error {
	return Newf(TypeMalformedElement,
		"element %q has invalid geometry in %s: %s", elementID, source, detail,
	).WithContext("source", source)
}

// UnsupportedTrade creates an error for a trade with no registered estimator
func UnsupportedTrade(trade string, available []string) *Error {
	return Newf(TypeNotSupported,
		"unsupported trade %q, available trades: %s", trade, strings.Join(available, ", "),
	).WithContext("trade", trade)
}
