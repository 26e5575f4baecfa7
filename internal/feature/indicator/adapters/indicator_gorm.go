// Package adapters は指標カタログのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicator/domain/entity"
	"indicator_backend/internal/feature/indicator/usecase"
)

// upsertBatchSize は1回のINSERTで送る行数です。
const upsertBatchSize = 500

// IndicatorModel は indicators テーブルの行です。
type IndicatorModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	IndicatorType string    `gorm:"size:32;not null;uniqueIndex:idx_indicator_type_symbol_exchange,priority:1"`
	Symbol        string    `gorm:"size:64;not null;uniqueIndex:idx_indicator_type_symbol_exchange,priority:2;index"`
	Exchange      string    `gorm:"size:64;not null;default:'';uniqueIndex:idx_indicator_type_symbol_exchange,priority:3"`
	Name          string    `gorm:"size:255;not null"`
	Currency      string    `gorm:"size:16"`
	Country       string    `gorm:"size:64"`
	MicCode       string    `gorm:"size:16"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (IndicatorModel) TableName() string {
	return "indicators"
}

type indicatorGorm struct {
	db *gorm.DB
}

var _ usecase.IndicatorRepository = (*indicatorGorm)(nil)

func NewIndicatorRepository(db *gorm.DB) *indicatorGorm {
	return &indicatorGorm{db: db}
}

func toEntity(m IndicatorModel) entity.Indicator {
	return entity.Indicator{
		ID:            m.ID,
		Symbol:        m.Symbol,
		IndicatorType: shared.IndicatorType(m.IndicatorType),
		Name:          m.Name,
		Exchange:      m.Exchange,
		Currency:      m.Currency,
		Country:       m.Country,
		MicCode:       m.MicCode,
	}
}

func toEntities(rows []IndicatorModel) []entity.Indicator {
	out := make([]entity.Indicator, 0, len(rows))
	for _, r := range rows {
		out = append(out, toEntity(r))
	}
	return out
}

func (r *indicatorGorm) FindByID(ctx context.Context, id uuid.UUID, indicatorType shared.IndicatorType) (entity.Indicator, error) {
	var m IndicatorModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND indicator_type = ?", id, string(indicatorType)).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Indicator{}, shared.ErrIndicatorNotFound
	}
	if err != nil {
		return entity.Indicator{}, err
	}
	return toEntity(m), nil
}

func (r *indicatorGorm) List(ctx context.Context, indicatorType shared.IndicatorType, limit, offset int) ([]entity.Indicator, error) {
	var rows []IndicatorModel
	if err := r.db.WithContext(ctx).
		Where("indicator_type = ?", string(indicatorType)).
		Order("symbol ASC").Order("exchange ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// SearchBySymbol matches symbols by case-insensitive prefix.
func (r *indicatorGorm) SearchBySymbol(ctx context.Context, symbol string, limit int) ([]entity.Indicator, error) {
	var rows []IndicatorModel
	if err := r.db.WithContext(ctx).
		Where("UPPER(symbol) LIKE UPPER(?) ESCAPE '\\'", escapeLike(symbol)+"%").
		Order("symbol ASC").Order("indicator_type ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// UpsertBatch inserts new catalog rows and refreshes the descriptive columns of existing ones.
// Existing rows keep their id so references held by boards stay valid.
func (r *indicatorGorm) UpsertBatch(ctx context.Context, indicators []entity.Indicator) error {
	if len(indicators) == 0 {
		return nil
	}
	rows := make([]IndicatorModel, 0, len(indicators))
	seen := make(map[[3]string]struct{}, len(indicators))
	for _, i := range indicators {
		// 同一バッチ内の重複は ON CONFLICT で同じ行を2回更新しようとして失敗するため除く
		key := [3]string{string(i.IndicatorType), i.Symbol, i.Exchange}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, IndicatorModel{
			ID:            uuid.New(),
			IndicatorType: string(i.IndicatorType),
			Symbol:        i.Symbol,
			Exchange:      i.Exchange,
			Name:          i.Name,
			Currency:      i.Currency,
			Country:       i.Country,
			MicCode:       i.MicCode,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "indicator_type"}, {Name: "symbol"}, {Name: "exchange"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "currency", "country", "mic_code", "updated_at"}),
		}).
		CreateInBatches(&rows, upsertBatchSize).Error
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}
