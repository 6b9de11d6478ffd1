package llmrouter

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by where they arise and how the
// router handles them.
type ErrorCategory string

const (
	// ErrorConfig indicates a missing or invalid configuration value,
	// such as an absent API key. Fatal; reported before any network
	// attempt.
	ErrorConfig ErrorCategory = "config"

	// ErrorNetwork indicates a connection, DNS, or timeout failure.
	// Recovered into a failed ProcessingResult.
	ErrorNetwork ErrorCategory = "network"

	// ErrorProvider indicates a non-success HTTP status from the
	// backend. Recovered into a failed ProcessingResult carrying the
	// provider's status and message.
	ErrorProvider ErrorCategory = "provider"

	// ErrorParse indicates a malformed or non-conforming structured
	// response. Recovered by degrading to an unstructured text
	// payload; never fails a call.
	ErrorParse ErrorCategory = "parse"
)

// CategorizedError is an error that reports its handling category.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int // HTTP status code if applicable, 0 otherwise
}

// Error is a categorized error with metadata for handling decisions.
type Error struct {
	Msg   string
	Cat   ErrorCategory
	Code  int   // HTTP status code, 0 if not applicable
	Cause error // underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Cause }

// Category returns the error category.
func (e *Error) Category() ErrorCategory { return e.Cat }

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int { return e.Code }

// NewConfigError creates a fatal configuration error.
func NewConfigError(msg string) *Error {
	return &Error{Msg: msg, Cat: ErrorConfig}
}

// NewNetworkError creates a network-level error.
func NewNetworkError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorNetwork, Cause: cause}
}

// NewProviderError creates an error for a non-success backend status.
func NewProviderError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorProvider, Code: statusCode, Cause: cause}
}

// NewParseError creates an error for a non-conforming response body.
func NewParseError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorParse, Cause: cause}
}

// IsConfig returns true if the error is categorized as configuration.
func IsConfig(err error) bool { return categoryOf(err) == ErrorConfig }

// IsNetwork returns true if the error is categorized as network.
func IsNetwork(err error) bool { return categoryOf(err) == ErrorNetwork }

// IsProvider returns true if the error is categorized as provider.
func IsProvider(err error) bool { return categoryOf(err) == ErrorProvider }

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

func categoryOf(err error) ErrorCategory {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category()
	}
	return ""
}
