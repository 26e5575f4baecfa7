// Package dto はindicatorboardフィーチャーのHTTPリクエスト/レスポンスを定義します。
package dto

import (
	"time"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicatorboard/domain/entity"
)

// CreateIndicatorBoardMetadataReq は空白のみの名前も受け付け、ドメインルールで検証します。
type CreateIndicatorBoardMetadataReq struct {
	IndicatorBoardMetadataName string `json:"indicatorBoardMetadataName"`
}

type CreateIndicatorBoardMetadataRes struct {
	ID string `json:"id"`
}

type InsertIndicatorReq struct {
	IndicatorID   string `json:"indicatorId" binding:"required"`
	IndicatorType string `json:"indicatorType" binding:"required"`
}

type InsertCustomForecastIndicatorReq struct {
	CustomForecastIndicatorID string `json:"customForecastIndicatorId" binding:"required"`
}

type UpdateIndicatorBoardMetadataNameReq struct {
	Name string `json:"name"`
}

// UpdateSectionsReq rejects a missing sections key; {} is a valid empty layout.
type UpdateSectionsReq struct {
	Sections entity.Sections `json:"sections" binding:"required"`
}

// IndicatorBoardMetadataRes は指標ボード1件のレスポンスです。
type IndicatorBoardMetadataRes struct {
	ID                         string                 `json:"id"`
	IndicatorBoardMetadataName string                 `json:"indicatorBoardMetadataName"`
	IndicatorInfos             []shared.IndicatorInfo `json:"indicatorInfos"`
	CustomForecastIndicatorIDs []string               `json:"customForecastIndicatorIds"`
	Sections                   entity.Sections        `json:"sections"`
	CreatedAt                  time.Time              `json:"createdAt"`
	UpdatedAt                  time.Time              `json:"updatedAt"`
}

func NewIndicatorBoardMetadataRes(m *entity.IndicatorBoardMetadata) IndicatorBoardMetadataRes {
	s := m.Snapshot()
	infos := s.IndicatorInfos
	if infos == nil {
		infos = []shared.IndicatorInfo{}
	}
	customIDs := s.CustomForecastIndicatorIDs
	if customIDs == nil {
		customIDs = []string{}
	}
	return IndicatorBoardMetadataRes{
		ID:                         s.ID.String(),
		IndicatorBoardMetadataName: s.Name,
		IndicatorInfos:             infos,
		CustomForecastIndicatorIDs: customIDs,
		Sections:                   s.Sections,
		CreatedAt:                  s.CreatedAt,
		UpdatedAt:                  s.UpdatedAt,
	}
}

// IndicatorBoardMetadataListRes は会員の指標ボード一覧です。
type IndicatorBoardMetadataListRes struct {
	IndicatorBoardMetadataList []IndicatorBoardMetadataRes `json:"indicatorBoardMetadataList"`
}
