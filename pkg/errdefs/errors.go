// Package errdefs defines the tagged error kinds shared by the detector,
// analyzers, optimizer and bundle-size analyzer.
package errdefs

import (
	"errors"
	"fmt"
)

// Kind tags an Error with the stage that produced it
type Kind int

const (
	// KindValidation marks a violated precondition (missing workspace, missing file, invalid config)
	KindValidation Kind = iota + 1
	// KindAnalysis marks an I/O or parse failure while extracting a config's structure
	KindAnalysis
	// KindOptimization marks an unexpected internal fault during rule evaluation
	KindOptimization
)

var (
	// ErrValidation matches any Error of KindValidation via errors.Is
	ErrValidation = errors.New("config validation error")
	// ErrAnalysis matches any Error of KindAnalysis via errors.Is
	ErrAnalysis = errors.New("analysis error")
	// ErrOptimization matches any Error of KindOptimization via errors.Is
	ErrOptimization = errors.New("optimization error")
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ConfigValidationError"
	case KindAnalysis:
		return "AnalysisError"
	case KindOptimization:
		return "OptimizationError"
	default:
		return "UnknownError"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindAnalysis:
		return ErrAnalysis
	case KindOptimization:
		return ErrOptimization
	default:
		return nil
	}
}

// Error is the single error type surfaced by this module. Code and Data are
// optional diagnostics for machine consumers.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Data    any
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// WithCode sets a machine-readable code and returns the error
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithData attaches an opaque diagnostic payload and returns the error
func (e *Error) WithData(data any) *Error {
	e.Data = data
	return e
}

// Validation creates a KindValidation error
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Analysis creates a KindAnalysis error wrapping err
func Analysis(message string, err error) *Error {
	return &Error{Kind: KindAnalysis, Message: message, Err: err}
}

// Optimization creates a KindOptimization error wrapping err
func Optimization(message string, err error) *Error {
	return &Error{Kind: KindOptimization, Message: message, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
