package errors

import (
	"fmt"
	"strings"
)

// MultipleErrors collects every problem found in one pass so that they can
// be reported together instead of one per run.
type MultipleErrors struct {
	Errors []MocklyError
}

var _ MocklyError = (*MultipleErrors)(nil)

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err.Error())
	}
	return b.String()
}

// ErrorCode is the code of the first collected error
func (e *MultipleErrors) ErrorCode() ErrorCode {
	if len(e.Errors) == 0 {
		return UnknownErrorCode
	}
	return e.Errors[0].ErrorCode()
}

// Location is the location of the first collected error
func (e *MultipleErrors) Location() SourceLocation {
	if len(e.Errors) == 0 {
		return SourceLocation{}
	}
	return e.Errors[0].Location()
}

// Context merges the context of every error, prefixing keys with the error index
func (e *MultipleErrors) Context() map[string]interface{} {
	combined := make(map[string]interface{})
	for i, err := range e.Errors {
		for k, v := range err.Context() {
			combined[fmt.Sprintf("error_%d_%s", i, k)] = v
		}
	}
	return combined
}

func (e *MultipleErrors) Suggestions() []string {
	var hints []string
	for _, err := range e.Errors {
		hints = append(hints, err.Suggestions()...)
	}
	return hints
}

// Unwrap exposes every collected error to errors.Is and errors.As
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

func (e *MultipleErrors) Add(err MocklyError) {
	e.Errors = append(e.Errors, err)
}

func (e *MultipleErrors) IsEmpty() bool { return len(e.Errors) == 0 }
func (e *MultipleErrors) Count() int    { return len(e.Errors) }

// ErrorOrNil returns nil for a nil or empty collection. Use it instead of
// returning the pointer directly, which would be a non-nil error interface.
func (e *MultipleErrors) ErrorOrNil() error {
	if e == nil || e.IsEmpty() {
		return nil
	}
	return e
}

// AddToMultiple appends err to *multiple, allocating the collection on first use
func AddToMultiple(multiple **MultipleErrors, err MocklyError) {
	if *multiple == nil {
		*multiple = &MultipleErrors{}
	}
	(*multiple).Add(err)
}

// AddDiscoveryError appends a discovery error raised at loc
func AddDiscoveryError(multiple **MultipleErrors, loc SourceLocation, symbol, reason string) {
	AddToMultiple(multiple, NewDiscoveryError(symbol, reason).WithLocation(loc))
}
