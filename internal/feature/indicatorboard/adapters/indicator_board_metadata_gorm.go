package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicatorboard/domain/entity"
	"indicator_backend/internal/feature/indicatorboard/usecase"
)

type indicatorBoardMetadataGorm struct {
	db *gorm.DB
}

var _ usecase.IndicatorBoardMetadataRepository = (*indicatorBoardMetadataGorm)(nil)

func NewIndicatorBoardMetadataRepository(db *gorm.DB) *indicatorBoardMetadataGorm {
	return &indicatorBoardMetadataGorm{db: db}
}

// IndicatorBoardMetadataModel は indicator_board_metadata テーブルの行です。
// sections はキー順を保持するため jsonb ではなく json 型で保存します。
type IndicatorBoardMetadataModel struct {
	ID                         uuid.UUID                                 `gorm:"type:uuid;primaryKey"`
	IndicatorBoardMetadataName string                                    `gorm:"size:255;not null"`
	IndicatorInfos             datatypes.JSONSlice[shared.IndicatorInfo] `gorm:"not null"`
	CustomForecastIndicatorIDs datatypes.JSONSlice[string]               `gorm:"not null"`
	Sections                   datatypes.JSON                            `gorm:"type:json;not null"`
	MemberID                   uint                                      `gorm:"not null;index"`
	CreatedAt                  time.Time                                 `gorm:"autoCreateTime:false;not null"`
	UpdatedAt                  time.Time                                 `gorm:"autoUpdateTime:false;not null"`
}

func (IndicatorBoardMetadataModel) TableName() string {
	return "indicator_board_metadata"
}

func toModel(memberID uint, m *entity.IndicatorBoardMetadata) (IndicatorBoardMetadataModel, error) {
	s := m.Snapshot()
	sections, err := json.Marshal(s.Sections)
	if err != nil {
		return IndicatorBoardMetadataModel{}, fmt.Errorf("failed to encode sections: %w", err)
	}
	infos := s.IndicatorInfos
	if infos == nil {
		infos = []shared.IndicatorInfo{}
	}
	customIDs := s.CustomForecastIndicatorIDs
	if customIDs == nil {
		customIDs = []string{}
	}
	return IndicatorBoardMetadataModel{
		ID:                         s.ID,
		IndicatorBoardMetadataName: s.Name,
		IndicatorInfos:             datatypes.JSONSlice[shared.IndicatorInfo](infos),
		CustomForecastIndicatorIDs: datatypes.JSONSlice[string](customIDs),
		Sections:                   datatypes.JSON(sections),
		MemberID:                   memberID,
		CreatedAt:                  s.CreatedAt,
		UpdatedAt:                  s.UpdatedAt,
	}, nil
}

func toEntity(row IndicatorBoardMetadataModel) (*entity.IndicatorBoardMetadata, error) {
	var sections entity.Sections
	if len(row.Sections) > 0 {
		if err := json.Unmarshal(row.Sections, &sections); err != nil {
			return nil, fmt.Errorf("%w: id=%s: %w", usecase.ErrCorruptedIndicatorBoardMetadata, row.ID, err)
		}
	}
	m, err := entity.Reconstruct(entity.Snapshot{
		ID:                         row.ID,
		Name:                       row.IndicatorBoardMetadataName,
		IndicatorInfos:             []shared.IndicatorInfo(row.IndicatorInfos),
		CustomForecastIndicatorIDs: []string(row.CustomForecastIndicatorIDs),
		Sections:                   sections,
		CreatedAt:                  row.CreatedAt,
		UpdatedAt:                  row.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: id=%s: %w", usecase.ErrCorruptedIndicatorBoardMetadata, row.ID, err)
	}
	return m, nil
}

// Create stores a new board under a freshly generated id.
func (r *indicatorBoardMetadataGorm) Create(ctx context.Context, memberID uint, m *entity.IndicatorBoardMetadata) (uuid.UUID, error) {
	row, err := toModel(memberID, m)
	if err != nil {
		return uuid.Nil, err
	}
	row.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}

func (r *indicatorBoardMetadataGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.IndicatorBoardMetadata, error) {
	var row IndicatorBoardMetadataModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrIndicatorBoardMetadataNotFound
	}
	if err != nil {
		return nil, err
	}
	return toEntity(row)
}

func (r *indicatorBoardMetadataGorm) ListByMember(ctx context.Context, memberID uint) ([]*entity.IndicatorBoardMetadata, error) {
	var rows []IndicatorBoardMetadataModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.IndicatorBoardMetadata, 0, len(rows))
	for _, row := range rows {
		m, err := toEntity(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Update overwrites everything but the owner and createdAt.
func (r *indicatorBoardMetadataGorm) Update(ctx context.Context, m *entity.IndicatorBoardMetadata) error {
	row, err := toModel(0, m)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&IndicatorBoardMetadataModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"indicator_board_metadata_name": row.IndicatorBoardMetadataName,
			"indicator_infos":               row.IndicatorInfos,
			"custom_forecast_indicator_ids": row.CustomForecastIndicatorIDs,
			"sections":                      row.Sections,
			"updated_at":                    row.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrIndicatorBoardMetadataNotFound
	}
	return nil
}

func (r *indicatorBoardMetadataGorm) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&IndicatorBoardMetadataModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrIndicatorBoardMetadataNotFound
	}
	return nil
}

func (r *indicatorBoardMetadataGorm) Transaction(ctx context.Context, fn func(repo usecase.IndicatorBoardMetadataRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&indicatorBoardMetadataGorm{db: tx})
	})
}
