package errors

import "fmt"

// SyntaxError reports input that could not be parsed at all
type SyntaxError struct {
	*BaseError
	Expected string // what the parser was looking for, when known
}

func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{BaseError: New(SyntaxErrorCode, message)}
}

// WithExpected records what should have appeared instead
func (e *SyntaxError) WithExpected(expected string) *SyntaxError {
	e.Expected = expected
	if expected != "" {
		e.WithContext("expected", expected)
	}
	return e
}

func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

// DiscoveryError reports a marked declaration that cannot be mocked
type DiscoveryError struct {
	*BaseError
	Symbol string // method or type carrying the marker
}

// NewDiscoveryError renders as "'<symbol>' <reason>"
func NewDiscoveryError(symbol, reason string) *DiscoveryError {
	return &DiscoveryError{
		BaseError: New(DiscoveryErrorCode, fmt.Sprintf("'%s' %s", symbol, reason)),
		Symbol:    symbol,
	}
}

func (e *DiscoveryError) WithLocation(loc SourceLocation) *DiscoveryError {
	e.BaseError.WithLocation(loc)
	return e
}

// ContractViolationError reports a descriptor value the core cannot
// represent, such as an illegal accessibility or container kind.
type ContractViolationError struct {
	*BaseError
	Field string
	Value string
}

// NewContractViolation lists the allowed values in the error context
func NewContractViolation(field string, value interface{}, allowed ...string) *ContractViolationError {
	err := &ContractViolationError{
		BaseError: New(ContractViolationErrorCode, fmt.Sprintf("contract violation: illegal %s %v", field, value)),
		Field:     field,
		Value:     fmt.Sprint(value),
	}
	if len(allowed) > 0 {
		err.WithContext("allowed", allowed)
	}
	return err
}

func (e *ContractViolationError) WithLocation(loc SourceLocation) *ContractViolationError {
	e.BaseError.WithLocation(loc)
	return e
}

// UnsupportedSignatureError reports a method the synthesizer cannot turn
// into a delegate-backed mock.
type UnsupportedSignatureError struct {
	*BaseError
	Method string
}

func NewUnsupportedSignature(method, reason string) *UnsupportedSignatureError {
	return &UnsupportedSignatureError{
		BaseError: New(UnsupportedSignatureErrorCode, fmt.Sprintf("cannot mock '%s': %s", method, reason)),
		Method:    method,
	}
}

func (e *UnsupportedSignatureError) WithLocation(loc SourceLocation) *UnsupportedSignatureError {
	e.BaseError.WithLocation(loc)
	return e
}

// GenerationError reports a failure while emitting code
type GenerationError struct {
	*BaseError
	GenerationType string // hierarchy, mock, artifact or template
	TargetFile     string
	Stage          string
}

func NewGenerationError(message string) *GenerationError {
	return &GenerationError{BaseError: New(GenerationErrorCode, message)}
}

func (e *GenerationError) WithGenerationType(genType string) *GenerationError {
	e.GenerationType = genType
	return e
}

func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	return e
}
