package errors

import (
	"errors"
	"fmt"
	"strings"
)

// CodedError is the structured error type for physref.
// It carries enough context for logging, CLI notices and MCP error mapping.
type CodedError struct {
	// Code is the unique error code (e.g., "ERR_201_SOURCE_LOAD").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Network, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *CodedError) Unwrap() error {
	return e.Cause
}

// Is matches another CodedError by code so errors.Is works against
// sentinel-style values built with New.
func (e *CodedError) Is(target error) bool {
	if t, ok := target.(*CodedError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *CodedError) WithDetail(key, value string) *CodedError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *CodedError) WithSuggestion(suggestion string) *CodedError {
	e.Suggestion = suggestion
	return e
}

// New creates a new CodedError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *CodedError {
	return &CodedError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a CodedError from an existing error.
func Wrap(code string, err error) *CodedError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *CodedError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// SourceLoadError reports a table that could not be read. The domain it
// belongs to is recorded as a detail.
func SourceLoadError(domain, path string, cause error) *CodedError {
	return New(ErrCodeSourceLoad, fmt.Sprintf("could not load %s table", domain), cause).
		WithDetail("domain", domain).
		WithDetail("path", path).
		WithSuggestion("Check data.dir in your config or pass --data-dir")
}

// ImageFetchError reports an image that could not be fetched or decoded.
// The message names url so notices for different images stay apart.
func ImageFetchError(url string, cause error) *CodedError {
	msg := fmt.Sprintf("image %s unavailable, showing placeholder", url)
	if u := strings.TrimSpace(url); u == "" || u == "-" {
		msg = "no image URL, showing placeholder"
	}
	return New(ErrCodeImageFetch, msg, cause).
		WithDetail("url", url)
}

// WithSubject returns a copy of err whose message is prefixed by subject,
// such as the title of the record an image belongs to. Errors that are not
// coded and empty subjects are returned unchanged.
func WithSubject(err error, subject string) error {
	var ce *CodedError
	if subject == "" || !errors.As(err, &ce) {
		return err
	}
	labeled := *ce
	labeled.Message = subject + ": " + ce.Message
	return &labeled
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *CodedError {
	return New(ErrCodeInvalidInput, message, cause)
}

// UnknownDomainError reports a domain name that is not one of the four tables.
func UnknownDomainError(name string) *CodedError {
	return New(ErrCodeUnknownDomain, fmt.Sprintf("unknown domain %q", name), nil).
		WithSuggestion("Use one of: formulas, constants, scientists, dimensions")
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *CodedError {
	return New(ErrCodeInternal, message, cause)
}

// IsWarning reports whether err is a CodedError with warning severity,
// i.e. a degraded-output notice rather than a failure.
func IsWarning(err error) bool {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Severity == SeverityWarning
	}
	return false
}

// GetCode extracts the error code from a CodedError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// GetCategory extracts the category from a CodedError anywhere in the chain.
func GetCategory(err error) Category {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ""
}
