package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicatorboard/domain/entity"
)

// IndicatorBoardUsecase は指標ボードの作成・参照・変更を提供します。
// 変更系はすべて 読み込み → 集約の変更 → 保存 を1トランザクションで行います。
type IndicatorBoardUsecase struct {
	repo    IndicatorBoardMetadataRepository
	lookup  IndicatorLookup
	cfCheck CustomForecastIndicatorChecker
}

func NewIndicatorBoardUsecase(
	repo IndicatorBoardMetadataRepository,
	lookup IndicatorLookup,
	cfCheck CustomForecastIndicatorChecker,
) *IndicatorBoardUsecase {
	return &IndicatorBoardUsecase{repo: repo, lookup: lookup, cfCheck: cfCheck}
}

// CreateIndicatorBoardMetadata creates an empty board for the member and returns its id.
func (u *IndicatorBoardUsecase) CreateIndicatorBoardMetadata(ctx context.Context, memberID uint, name string) (uuid.UUID, error) {
	m, err := entity.CreateNew(name)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := u.repo.Create(ctx, memberID, m)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create indicator board metadata: %w", err)
	}
	return id, nil
}

func (u *IndicatorBoardUsecase) GetIndicatorBoardMetadata(ctx context.Context, id uuid.UUID) (*entity.IndicatorBoardMetadata, error) {
	return u.repo.FindByID(ctx, id)
}

func (u *IndicatorBoardUsecase) ListIndicatorBoardMetadata(ctx context.Context, memberID uint) ([]*entity.IndicatorBoardMetadata, error) {
	return u.repo.ListByMember(ctx, memberID)
}

// InsertIndicator resolves the indicator through the catalog and registers it on the board.
func (u *IndicatorBoardUsecase) InsertIndicator(ctx context.Context, id uuid.UUID, indicatorID string, indicatorType string) error {
	typ, err := shared.ParseIndicatorType(indicatorType)
	if err != nil {
		return err
	}
	info, err := u.lookup.FindIndicator(ctx, indicatorID, typ)
	if err != nil {
		return err
	}
	return u.mutate(ctx, id, func(m *entity.IndicatorBoardMetadata) error {
		return m.InsertIndicatorID(info)
	})
}

func (u *IndicatorBoardUsecase) DeleteIndicator(ctx context.Context, id uuid.UUID, indicatorID string) error {
	return u.mutate(ctx, id, func(m *entity.IndicatorBoardMetadata) error {
		return m.DeleteIndicatorID(indicatorID)
	})
}

// InsertCustomForecastIndicator registers an existing custom forecast indicator on the board.
func (u *IndicatorBoardUsecase) InsertCustomForecastIndicator(ctx context.Context, id uuid.UUID, customForecastIndicatorID uuid.UUID) error {
	ok, err := u.cfCheck.ExistsCustomForecastIndicator(ctx, customForecastIndicatorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCustomForecastIndicatorNotFound
	}
	return u.mutate(ctx, id, func(m *entity.IndicatorBoardMetadata) error {
		return m.InsertCustomForecastIndicatorID(customForecastIndicatorID.String())
	})
}

func (u *IndicatorBoardUsecase) DeleteCustomForecastIndicator(ctx context.Context, id uuid.UUID, customForecastIndicatorID string) error {
	return u.mutate(ctx, id, func(m *entity.IndicatorBoardMetadata) error {
		return m.DeleteCustomForecastIndicatorID(customForecastIndicatorID)
	})
}

func (u *IndicatorBoardUsecase) UpdateIndicatorBoardMetadataName(ctx context.Context, id uuid.UUID, name string) error {
	return u.mutate(ctx, id, func(m *entity.IndicatorBoardMetadata) error {
		return m.UpdateIndicatorBoardMetadataName(name)
	})
}

func (u *IndicatorBoardUsecase) UpdateSections(ctx context.Context, id uuid.UUID, sections entity.Sections) error {
	return u.mutate(ctx, id, func(m *entity.IndicatorBoardMetadata) error {
		return m.UpdateSections(sections)
	})
}

// DeleteIndicatorBoardMetadata returns ErrIndicatorBoardMetadataNotFound for unknown ids.
func (u *IndicatorBoardUsecase) DeleteIndicatorBoardMetadata(ctx context.Context, id uuid.UUID) error {
	return u.repo.Delete(ctx, id)
}

func (u *IndicatorBoardUsecase) mutate(ctx context.Context, id uuid.UUID, fn func(m *entity.IndicatorBoardMetadata) error) error {
	return u.repo.Transaction(ctx, func(repo IndicatorBoardMetadataRepository) error {
		m, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
		return repo.Update(ctx, m)
	})
}
