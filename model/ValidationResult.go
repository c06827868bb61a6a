package model

import "fmt"

// ValidationResult is the outcome of validating a block or a transaction. A
// failed validation is an ordinary result carrying the reason, not an error.
type ValidationResult struct {
	Valid  bool
	Reason string
}

func NewValidResult() *ValidationResult {
	return &ValidationResult{Valid: true}
}

func NewInvalidResult(format string, args ...interface{}) *ValidationResult {
	return &ValidationResult{Reason: fmt.Sprintf(format, args...)}
}

func (r *ValidationResult) OK() bool {
	return r != nil && r.Valid
}

func (r *ValidationResult) String() string {
	if r.OK() {
		return "valid"
	}

	if r == nil || r.Reason == "" {
		return "invalid"
	}

	return "invalid: " + r.Reason
}
