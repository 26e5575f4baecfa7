package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/customforecast/domain/entity"
)

// CustomForecastIndicatorRepository abstracts the persistence of custom forecast indicators.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CustomForecastIndicatorRepository interface {
	// Create returns ErrCustomForecastIndicatorNameConflict when the name is taken by the member.
	Create(ctx context.Context, memberID uint, f *entity.CustomForecastIndicator) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomForecastIndicator, error)
	ListByMember(ctx context.Context, memberID uint) ([]*entity.CustomForecastIndicator, error)
	Update(ctx context.Context, f *entity.CustomForecastIndicator) error
	Delete(ctx context.Context, id uuid.UUID) error
	Transaction(ctx context.Context, fn func(repo CustomForecastIndicatorRepository) error) error
}

// IndicatorLookup resolves catalog indicators for targets and sources.
type IndicatorLookup interface {
	FindIndicator(ctx context.Context, id string, indicatorType shared.IndicatorType) (shared.IndicatorInfo, error)
}

// CustomForecastIndicatorUsecase はカスタム予測指標の作成・参照・変更を提供します。
type CustomForecastIndicatorUsecase struct {
	repo   CustomForecastIndicatorRepository
	lookup IndicatorLookup
}

func NewCustomForecastIndicatorUsecase(repo CustomForecastIndicatorRepository, lookup IndicatorLookup) *CustomForecastIndicatorUsecase {
	return &CustomForecastIndicatorUsecase{repo: repo, lookup: lookup}
}

// CreateCustomForecastIndicator resolves the target through the catalog and stores a new indicator.
func (u *CustomForecastIndicatorUsecase) CreateCustomForecastIndicator(ctx context.Context, memberID uint, name, targetIndicatorID, targetIndicatorType string) (uuid.UUID, error) {
	typ, err := shared.ParseIndicatorType(targetIndicatorType)
	if err != nil {
		return uuid.Nil, err
	}
	target, err := u.lookup.FindIndicator(ctx, targetIndicatorID, typ)
	if err != nil {
		return uuid.Nil, err
	}
	f, err := entity.CreateNew(name, target)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := u.repo.Create(ctx, memberID, f)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create custom forecast indicator: %w", err)
	}
	return id, nil
}

func (u *CustomForecastIndicatorUsecase) GetCustomForecastIndicator(ctx context.Context, id uuid.UUID) (*entity.CustomForecastIndicator, error) {
	return u.repo.FindByID(ctx, id)
}

func (u *CustomForecastIndicatorUsecase) ListCustomForecastIndicators(ctx context.Context, memberID uint) ([]*entity.CustomForecastIndicator, error) {
	return u.repo.ListByMember(ctx, memberID)
}

// ExistsCustomForecastIndicator reports whether an indicator with the id is stored.
func (u *CustomForecastIndicatorUsecase) ExistsCustomForecastIndicator(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := u.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrCustomForecastIndicatorNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (u *CustomForecastIndicatorUsecase) UpdateCustomForecastIndicatorName(ctx context.Context, id uuid.UUID, name string) error {
	return u.mutate(ctx, id, func(f *entity.CustomForecastIndicator) error {
		return f.UpdateName(name)
	})
}

// UpdateSourceIndicatorsInformation resolves every source through the catalog, then replaces
// the indicator's weighted sources.
func (u *CustomForecastIndicatorUsecase) UpdateSourceIndicatorsInformation(ctx context.Context, id uuid.UUID, infos []entity.SourceIndicatorInformation) error {
	resolved := make([]shared.IndicatorInfo, 0, len(infos))
	for _, info := range infos {
		typ, err := shared.ParseIndicatorType(string(info.IndicatorType))
		if err != nil {
			return err
		}
		src, err := u.lookup.FindIndicator(ctx, info.SourceIndicatorID, typ)
		if err != nil {
			return fmt.Errorf("source indicator %s: %w", info.SourceIndicatorID, err)
		}
		resolved = append(resolved, src)
	}
	return u.mutate(ctx, id, func(f *entity.CustomForecastIndicator) error {
		return f.UpdateSourceIndicatorsInformation(infos, resolved)
	})
}

func (u *CustomForecastIndicatorUsecase) DeleteCustomForecastIndicator(ctx context.Context, id uuid.UUID) error {
	return u.repo.Delete(ctx, id)
}

func (u *CustomForecastIndicatorUsecase) mutate(ctx context.Context, id uuid.UUID, fn func(f *entity.CustomForecastIndicator) error) error {
	return u.repo.Transaction(ctx, func(repo CustomForecastIndicatorRepository) error {
		f, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
		return repo.Update(ctx, f)
	})
}
