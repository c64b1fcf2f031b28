// Package errors carries the typed diagnostics produced while discovering,
// synthesizing and writing mocks. Every error knows its code, where in the
// input it was raised and what the user could do about it.
package errors

import (
	"fmt"
	"strings"
)

// MocklyError is implemented by every diagnostic the generator reports
type MocklyError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
}

// ErrorCode classifies a diagnostic
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// problems in the user's sources
	SyntaxErrorCode
	DiscoveryErrorCode

	// descriptors the core refuses
	ContractViolationErrorCode
	UnsupportedSignatureErrorCode

	// output side
	GenerationErrorCode
	TemplateErrorCode
	FileSystemErrorCode

	ConfigurationErrorCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:               "SyntaxError",
	DiscoveryErrorCode:            "DiscoveryError",
	ContractViolationErrorCode:    "ContractViolation",
	UnsupportedSignatureErrorCode: "UnsupportedSignature",
	GenerationErrorCode:           "GenerationError",
	TemplateErrorCode:             "TemplateError",
	FileSystemErrorCode:           "FileSystemError",
	ConfigurationErrorCode:        "ConfigurationError",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation points at a file position; Line and Column are 1-based and
// zero when unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty reports whether the location names no file
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is embedded by the specific diagnostic types
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

var _ MocklyError = (*BaseError)(nil)

// New creates a diagnostic with no cause
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Wrap creates a diagnostic around cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause}
}

// Error renders "location: message: cause", leaving out the parts that are unset
func (e *BaseError) Error() string {
	var b strings.Builder
	if !e.Loc.IsEmpty() {
		b.WriteString(e.Loc.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.Hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// Context never returns nil so callers can range over it directly
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

// WithLocation sets where the problem was found
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithCause sets the underlying error
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext records a key/value shown in verbose diagnostics
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion appends a hint for fixing the problem
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}
