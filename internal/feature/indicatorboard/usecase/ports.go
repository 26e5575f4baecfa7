package usecase

import (
	"context"

	"github.com/google/uuid"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicatorboard/domain/entity"
)

// IndicatorBoardMetadataRepository abstracts the persistence of boards.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type IndicatorBoardMetadataRepository interface {
	// Create persists a new board owned by memberID and returns its generated id.
	Create(ctx context.Context, memberID uint, m *entity.IndicatorBoardMetadata) (uuid.UUID, error)

	// FindByID returns ErrIndicatorBoardMetadataNotFound when the board does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.IndicatorBoardMetadata, error)

	// ListByMember returns the member's boards, oldest first.
	ListByMember(ctx context.Context, memberID uint) ([]*entity.IndicatorBoardMetadata, error)

	// Update overwrites the stored state of an existing board.
	Update(ctx context.Context, m *entity.IndicatorBoardMetadata) error

	Delete(ctx context.Context, id uuid.UUID) error

	// Transaction runs fn with a repository bound to a single database transaction.
	// Any error returned by fn rolls the transaction back.
	Transaction(ctx context.Context, fn func(repo IndicatorBoardMetadataRepository) error) error
}

// IndicatorLookup resolves an external indicator id to the metadata stored on a board.
// It returns shared.ErrIndicatorNotFound for unknown indicators.
type IndicatorLookup interface {
	FindIndicator(ctx context.Context, id string, indicatorType shared.IndicatorType) (shared.IndicatorInfo, error)
}

// CustomForecastIndicatorChecker reports whether a custom forecast indicator exists.
type CustomForecastIndicatorChecker interface {
	ExistsCustomForecastIndicator(ctx context.Context, id uuid.UUID) (bool, error)
}
