// Package errs defines the error taxonomy shared by the engine's core
// packages. Errors are plain wrapped values, matched with errors.Is/As,
// following the error-handling style used throughout the teacher package
// (fmt.Errorf("...: %w", err) chains, no custom logging framework).
package errs

import "errors"

// Sentinel errors for the taxonomy described in spec.md §7. Each is wrapped
// with context via fmt.Errorf("%w: ...", errs.ErrInvalidProperty) at the call
// site rather than constructing a new type per occurrence.
var (
	// ErrInvalidProperty is returned when a property mutation is malformed,
	// e.g. set_property called with an empty key.
	ErrInvalidProperty = errors.New("invalid property")

	// ErrInvalidVariable is returned when a function/variable expression
	// fails to parse (unterminated function call, unbalanced parens).
	ErrInvalidVariable = errors.New("invalid variable expression")

	// ErrForbiddenCapability is returned when an embedded-language sampler
	// or processor references a disallowed capability.
	ErrForbiddenCapability = errors.New("forbidden capability")

	// ErrAssertionFailure marks an assertion predicate that evaluated false.
	ErrAssertionFailure = errors.New("assertion failure")

	// ErrAssertionError marks an assertion that could not be evaluated.
	ErrAssertionError = errors.New("assertion error")

	// ErrScriptParse marks a malformed input tree (missing required node
	// field, unknown class). Raised by internal/loader; the core never
	// sees it.
	ErrScriptParse = errors.New("script parse error")
)

// Control-flow signals. These are not failures of the engine; they are
// caught by the worker's execution loop and translated into a stop action
// on the worker or engine.
var (
	// ErrStopTestWorker asks the current execution unit's worker to stop.
	ErrStopTestWorker = errors.New("stop test worker")

	// ErrStopTest asks the engine to stop all workers gracefully.
	ErrStopTest = errors.New("stop test")

	// ErrStopTestNow asks the engine to kill all workers immediately.
	ErrStopTestNow = errors.New("stop test now")

	// ErrUserInterrupted marks a user-initiated cancellation of a sampler
	// or processor.
	ErrUserInterrupted = errors.New("user interrupted")
)
