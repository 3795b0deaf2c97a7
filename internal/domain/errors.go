package domain

import "errors"

// Sentinel errors raised by the settings service. Anything else coming out of
// a service call is a wrapped storage failure.
var (
	// ErrVersionNotFound means the referenced version id does not exist.
	// Terminal, non-retryable.
	ErrVersionNotFound = errors.New("settings version not found")

	// ErrMissingContent means import was called without a content payload.
	ErrMissingContent = errors.New("missing content")
)

// ValidationError blocks a publish when the candidate content carries at
// least one error-severity issue. The full issue list rides along so callers
// can render it; issues are data, not a reason to panic.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	return "settings validation failed"
}
