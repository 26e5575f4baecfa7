// Package usecase implements catalog lookups and the reference-data sync.
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicator/domain/entity"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// IndicatorRepository は指標カタログの永続化を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type IndicatorRepository interface {
	// FindByID returns shared.ErrIndicatorNotFound when no row matches both id and type.
	FindByID(ctx context.Context, id uuid.UUID, indicatorType shared.IndicatorType) (entity.Indicator, error)
	List(ctx context.Context, indicatorType shared.IndicatorType, limit, offset int) ([]entity.Indicator, error)
	SearchBySymbol(ctx context.Context, symbol string, limit int) ([]entity.Indicator, error)
	UpsertBatch(ctx context.Context, indicators []entity.Indicator) error
}

// IndicatorUsecase は指標カタログの参照を提供します。
type IndicatorUsecase struct {
	repo IndicatorRepository
}

func NewIndicatorUsecase(repo IndicatorRepository) *IndicatorUsecase {
	return &IndicatorUsecase{repo: repo}
}

// FindIndicator resolves a catalog id of the given type to the reference stored on boards.
// Custom forecast indicators are not part of the catalog.
func (u *IndicatorUsecase) FindIndicator(ctx context.Context, id string, indicatorType shared.IndicatorType) (shared.IndicatorInfo, error) {
	if !indicatorType.IsMarket() {
		return shared.IndicatorInfo{}, shared.ErrInvalidIndicatorType
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		// カタログのidは常にuuidなので、形式不正は存在しない指標と同じ扱い
		return shared.IndicatorInfo{}, shared.ErrIndicatorNotFound
	}
	i, err := u.repo.FindByID(ctx, uid, indicatorType)
	if err != nil {
		return shared.IndicatorInfo{}, err
	}
	return i.Info(), nil
}

// ListIndicators returns one page of the catalog for a type, ordered by symbol.
func (u *IndicatorUsecase) ListIndicators(ctx context.Context, indicatorType string, limit, offset int) ([]entity.Indicator, error) {
	t, err := shared.ParseIndicatorType(indicatorType)
	if err != nil {
		return nil, err
	}
	if !t.IsMarket() {
		return nil, shared.ErrInvalidIndicatorType
	}
	return u.repo.List(ctx, t, clampLimit(limit), max(offset, 0))
}

// SearchIndicators matches symbols by case-insensitive prefix across every type.
func (u *IndicatorUsecase) SearchIndicators(ctx context.Context, symbol string, limit int) ([]entity.Indicator, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrEmptySearchSymbol
	}
	return u.repo.SearchBySymbol(ctx, symbol, clampLimit(limit))
}

// ErrEmptySearchSymbol is returned when a search is requested without a symbol.
var ErrEmptySearchSymbol = errors.New("symbol must not be empty")

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}
