package entity

import "errors"

var (
	// ErrIndicatorNotFound is returned by indicator lookups when no catalog entry matches.
	ErrIndicatorNotFound = errors.New("indicator not found")

	// ErrInvalidIndicatorType is returned when an indicator type string is not recognised.
	ErrInvalidIndicatorType = errors.New("invalid indicator type")
)
