// Package turingerr holds the sentinel errors shared across turingo's
// packages, following the corpus's convention of a single Err* var
// block per failure surface instead of bespoke error types.
package turingerr

import "errors"

var (
	// ErrParse marks a malformed-source failure: missing delimiter,
	// unknown keyword, duplicate declaration, empty state body,
	// negative input count, or bad literal. Carries a source line number
	// for malformed source; parser.Parse also wraps a failure to read its
	// io.Reader with it, without a line number.
	ErrParse = errors.New("parse error")

	// ErrFinalization marks a structurally valid but semantically
	// invalid program caught at Builder.Finalize: unknown initial
	// state, or zero states.
	ErrFinalization = errors.New("finalization error")

	// ErrBuilderMisuse marks a programming error: a modifying call on
	// an already-finalized program, or a second call to Finalize.
	ErrBuilderMisuse = errors.New("builder misuse")

	// ErrOutOfRange marks a fatal out-of-bounds symbol index.
	ErrOutOfRange = errors.New("index out of range")

	// ErrBadLiteral marks a decimal-parse failure: a non-digit byte
	// after an optional leading '-'.
	ErrBadLiteral = errors.New("bad literal")

	// ErrUnsupportedForm marks a recognized-but-unimplemented grammar
	// form, namely the reserved INVOCATION action.
	ErrUnsupportedForm = errors.New("unsupported form")

	// ErrDuplicateState marks re-adding a state name already present in
	// a builder, compared case-insensitively.
	ErrDuplicateState = errors.New("duplicate state")

	// ErrEmptyState marks a state declared with zero clauses.
	ErrEmptyState = errors.New("empty state")

	// ErrReservedState marks an attempt to declare a state named "halt"
	// (any casing), the reserved sink that is never a declared state.
	ErrReservedState = errors.New("reserved state name")
)
