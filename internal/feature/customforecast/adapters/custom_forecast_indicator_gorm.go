package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/customforecast/domain/entity"
	"indicator_backend/internal/feature/customforecast/usecase"
	"indicator_backend/internal/platform/db"
)

type customForecastIndicatorGorm struct {
	db *gorm.DB
}

var _ usecase.CustomForecastIndicatorRepository = (*customForecastIndicatorGorm)(nil)

func NewCustomForecastIndicatorRepository(db *gorm.DB) *customForecastIndicatorGorm {
	return &customForecastIndicatorGorm{db: db}
}

// CustomForecastIndicatorModel は custom_forecast_indicators テーブルの行です。
// 会員ごとに名前は一意です。
type CustomForecastIndicatorModel struct {
	ID                          uuid.UUID                                              `gorm:"type:uuid;primaryKey"`
	MemberID                    uint                                                   `gorm:"not null;uniqueIndex:idx_cfi_member_name,priority:1"`
	CustomForecastIndicatorName string                                                 `gorm:"size:255;not null;uniqueIndex:idx_cfi_member_name,priority:2"`
	TargetIndicator             datatypes.JSONType[shared.IndicatorInfo]               `gorm:"not null"`
	SourceIndicatorsInformation datatypes.JSONSlice[entity.SourceIndicatorInformation] `gorm:"not null"`
	SourceIndicators            datatypes.JSONSlice[shared.IndicatorInfo]              `gorm:"not null"`
	CreatedAt                   time.Time                                              `gorm:"autoCreateTime:false;not null"`
	UpdatedAt                   time.Time                                              `gorm:"autoUpdateTime:false;not null"`
}

func (CustomForecastIndicatorModel) TableName() string {
	return "custom_forecast_indicators"
}

func toModel(memberID uint, f *entity.CustomForecastIndicator) CustomForecastIndicatorModel {
	s := f.Snapshot()
	infos := s.SourceIndicatorsInformation
	if infos == nil {
		infos = []entity.SourceIndicatorInformation{}
	}
	sources := s.SourceIndicators
	if sources == nil {
		sources = []shared.IndicatorInfo{}
	}
	return CustomForecastIndicatorModel{
		ID:                          s.ID,
		MemberID:                    memberID,
		CustomForecastIndicatorName: s.Name,
		TargetIndicator:             datatypes.NewJSONType(s.TargetIndicator),
		SourceIndicatorsInformation: datatypes.JSONSlice[entity.SourceIndicatorInformation](infos),
		SourceIndicators:            datatypes.JSONSlice[shared.IndicatorInfo](sources),
		CreatedAt:                   s.CreatedAt,
		UpdatedAt:                   s.UpdatedAt,
	}
}

func toEntity(row CustomForecastIndicatorModel) (*entity.CustomForecastIndicator, error) {
	f, err := entity.Reconstruct(entity.Snapshot{
		ID:                          row.ID,
		Name:                        row.CustomForecastIndicatorName,
		TargetIndicator:             row.TargetIndicator.Data(),
		SourceIndicatorsInformation: []entity.SourceIndicatorInformation(row.SourceIndicatorsInformation),
		SourceIndicators:            []shared.IndicatorInfo(row.SourceIndicators),
		CreatedAt:                   row.CreatedAt,
		UpdatedAt:                   row.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: id=%s: %w", usecase.ErrCorruptedCustomForecastIndicator, row.ID, err)
	}
	return f, nil
}

func (r *customForecastIndicatorGorm) Create(ctx context.Context, memberID uint, f *entity.CustomForecastIndicator) (uuid.UUID, error) {
	row := toModel(memberID, f)
	row.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return uuid.Nil, usecase.ErrCustomForecastIndicatorNameConflict
		}
		return uuid.Nil, err
	}
	return row.ID, nil
}

func (r *customForecastIndicatorGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomForecastIndicator, error) {
	var row CustomForecastIndicatorModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrCustomForecastIndicatorNotFound
	}
	if err != nil {
		return nil, err
	}
	return toEntity(row)
}

func (r *customForecastIndicatorGorm) ListByMember(ctx context.Context, memberID uint) ([]*entity.CustomForecastIndicator, error) {
	var rows []CustomForecastIndicatorModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.CustomForecastIndicator, 0, len(rows))
	for _, row := range rows {
		f, err := toEntity(row)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Update overwrites the mutable columns. A rename onto an existing name of the same member
// returns ErrCustomForecastIndicatorNameConflict.
func (r *customForecastIndicatorGorm) Update(ctx context.Context, f *entity.CustomForecastIndicator) error {
	row := toModel(0, f)
	res := r.db.WithContext(ctx).
		Model(&CustomForecastIndicatorModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"custom_forecast_indicator_name": row.CustomForecastIndicatorName,
			"source_indicators_information":  row.SourceIndicatorsInformation,
			"source_indicators":              row.SourceIndicators,
			"updated_at":                     row.UpdatedAt,
		})
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return usecase.ErrCustomForecastIndicatorNameConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCustomForecastIndicatorNotFound
	}
	return nil
}

func (r *customForecastIndicatorGorm) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CustomForecastIndicatorModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCustomForecastIndicatorNotFound
	}
	return nil
}

func (r *customForecastIndicatorGorm) Transaction(ctx context.Context, fn func(repo usecase.CustomForecastIndicatorRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&customForecastIndicatorGorm{db: tx})
	})
}
