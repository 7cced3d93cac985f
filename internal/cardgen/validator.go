package cardgen

import "fmt"

// Validator checks a generated card set for usability.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "structural", "uniqueness".
	Name() string

	// Validate checks the result and returns nil if it passes.
	// Returns a ValidationError if the set fails the check.
	Validate(r *Result, input GenerateInput) *ValidationError
}

// ValidationError describes why a generated set failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
