// Package rule implements the business rules checked by the indicator aggregates
// before a mutation is committed.
//
// A rule is built with the proposed (not yet committed) state and asked whether it is
// broken. Rules hold no references back to the aggregate and never mutate their input.
package rule

import (
	"errors"
)

// MaxReferenceCount is the maximum number of indicator references a board may hold.
const MaxReferenceCount = 5

// Rule is a single business rule evaluated against proposed state.
type Rule interface {
	// IsBroken reports whether the proposed state violates the rule.
	IsBroken() bool
	// Message is the human-readable reason returned to the client.
	Message() string
}

// ViolationError is returned when a business rule is broken.
// Callers map it to a 400-class response.
type ViolationError struct {
	Message string
}

func (e *ViolationError) Error() string {
	return e.Message
}

// Check evaluates rules in order and returns a *ViolationError for the first broken one.
func Check(rules ...Rule) error {
	for _, r := range rules {
		if r.IsBroken() {
			return &ViolationError{Message: r.Message()}
		}
	}
	return nil
}

// IsViolation reports whether err (or anything it wraps) is a business rule violation.
func IsViolation(err error) bool {
	var v *ViolationError
	return errors.As(err, &v)
}

func contains(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
