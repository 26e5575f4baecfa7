// Package dto はcustomforecastフィーチャーのHTTPリクエスト/レスポンスを定義します。
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/customforecast/domain/entity"
)

type CreateCustomForecastIndicatorReq struct {
	CustomForecastIndicatorName string `json:"customForecastIndicatorName"`
	TargetIndicatorID           string `json:"targetIndicatorId" binding:"required"`
	TargetIndicatorType         string `json:"targetIndicatorType" binding:"required"`
}

type CreateCustomForecastIndicatorRes struct {
	ID string `json:"id"`
}

type UpdateCustomForecastIndicatorNameReq struct {
	Name string `json:"name"`
}

// SourceIndicatorReq は材料指標1件です。weight は "0.7" と 0.7 のどちらも受け付けます。
type SourceIndicatorReq struct {
	SourceIndicatorID string          `json:"sourceIndicatorId" binding:"required"`
	IndicatorType     string          `json:"indicatorType" binding:"required"`
	Weight            decimal.Decimal `json:"weight"`
}

// UpdateSourceIndicatorsReq replaces all sources; an empty list clears them.
type UpdateSourceIndicatorsReq struct {
	SourceIndicatorsInformation []SourceIndicatorReq `json:"sourceIndicatorsInformation" binding:"required,dive"`
}

func (r UpdateSourceIndicatorsReq) ToEntity() []entity.SourceIndicatorInformation {
	out := make([]entity.SourceIndicatorInformation, 0, len(r.SourceIndicatorsInformation))
	for _, s := range r.SourceIndicatorsInformation {
		out = append(out, entity.SourceIndicatorInformation{
			SourceIndicatorID: s.SourceIndicatorID,
			IndicatorType:     shared.IndicatorType(s.IndicatorType),
			Weight:            s.Weight,
		})
	}
	return out
}

// CustomForecastIndicatorRes はカスタム予測指標1件のレスポンスです。
type CustomForecastIndicatorRes struct {
	ID                          string                              `json:"id"`
	CustomForecastIndicatorName string                              `json:"customForecastIndicatorName"`
	TargetIndicator             shared.IndicatorInfo                `json:"targetIndicator"`
	SourceIndicatorsInformation []entity.SourceIndicatorInformation `json:"sourceIndicatorsInformation"`
	SourceIndicators            []shared.IndicatorInfo              `json:"sourceIndicators"`
	CreatedAt                   time.Time                           `json:"createdAt"`
	UpdatedAt                   time.Time                           `json:"updatedAt"`
}

func NewCustomForecastIndicatorRes(f *entity.CustomForecastIndicator) CustomForecastIndicatorRes {
	s := f.Snapshot()
	infos := s.SourceIndicatorsInformation
	if infos == nil {
		infos = []entity.SourceIndicatorInformation{}
	}
	sources := s.SourceIndicators
	if sources == nil {
		sources = []shared.IndicatorInfo{}
	}
	return CustomForecastIndicatorRes{
		ID:                          s.ID.String(),
		CustomForecastIndicatorName: s.Name,
		TargetIndicator:             s.TargetIndicator,
		SourceIndicatorsInformation: infos,
		SourceIndicators:            sources,
		CreatedAt:                   s.CreatedAt,
		UpdatedAt:                   s.UpdatedAt,
	}
}

type CustomForecastIndicatorListRes struct {
	CustomForecastIndicatorList []CustomForecastIndicatorRes `json:"customForecastIndicatorList"`
}
