// Package usecase implements the application logic for indicator boards.
package usecase

import "errors"

var (
	// ErrIndicatorBoardMetadataNotFound is returned when no board exists for the given id.
	ErrIndicatorBoardMetadataNotFound = errors.New("indicator board metadata not found")

	// ErrCorruptedIndicatorBoardMetadata wraps a rule violation raised while rehydrating a stored board.
	// It signals a data integrity problem, not a client error.
	ErrCorruptedIndicatorBoardMetadata = errors.New("stored indicator board metadata is corrupted")

	// ErrCustomForecastIndicatorNotFound is returned when the custom forecast indicator to register does not exist.
	ErrCustomForecastIndicatorNotFound = errors.New("custom forecast indicator not found")
)
