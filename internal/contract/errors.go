package contract

import (
	"errors"
	"fmt"
)

// ErrKind distinguishes check failure classes without an exception hierarchy.
type ErrKind int

// All check error kinds.
const (
	// ErrKindGeneric is an unexpected failure inside one check.
	ErrKindGeneric ErrKind = iota

	// ErrKindMissingTool means an external tool the check shells out to is
	// not installed. Recoverable: the run records the check as skipped.
	ErrKindMissingTool
)

// CheckError is a tagged failure reported by a check. The runner inspects
// Kind to decide between a skipped and an error record.
type CheckError struct {
	Kind ErrKind
	Tool string // Name of the missing tool, for ErrKindMissingTool
	Hint string // Install hint shown to the user, for ErrKindMissingTool
	Err  error  // Underlying cause, may be nil
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	if e.Kind == ErrKindMissingTool {
		return fmt.Sprintf("missing external tool %q (%s)", e.Tool, e.Hint)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "check failed"
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *CheckError) Unwrap() error {
	return e.Err
}

// NewMissingToolError builds the distinguished missing-tool failure.
func NewMissingToolError(tool, hint string) *CheckError {
	return &CheckError{Kind: ErrKindMissingTool, Tool: tool, Hint: hint}
}

// AsMissingTool extracts a missing-tool CheckError if err carries one.
func AsMissingTool(err error) (*CheckError, bool) {
	var ce *CheckError
	if errors.As(err, &ce) && ce.Kind == ErrKindMissingTool {
		return ce, true
	}
	return nil, false
}
