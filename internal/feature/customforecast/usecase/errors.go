// Package usecase implements the application logic for custom forecast indicators.
package usecase

import "errors"

var (
	// ErrCustomForecastIndicatorNotFound is returned when no indicator exists for the given id.
	ErrCustomForecastIndicatorNotFound = errors.New("custom forecast indicator not found")

	// ErrCustomForecastIndicatorNameConflict is returned when the member already owns an indicator with the same name.
	ErrCustomForecastIndicatorNameConflict = errors.New("custom forecast indicator name already exists")

	// ErrCorruptedCustomForecastIndicator wraps a rule violation raised while rehydrating a stored indicator.
	ErrCorruptedCustomForecastIndicator = errors.New("stored custom forecast indicator is corrupted")
)
