// Package dto はindicatorフィーチャーのHTTPリクエスト/レスポンスを定義します。
package dto

import "indicator_backend/internal/feature/indicator/domain/entity"

// ListIndicatorsParams は GET /api/indicators のクエリパラメータです。
type ListIndicatorsParams struct {
	IndicatorType string
	Limit         *int
	Offset        *int
}

// SearchIndicatorsParams は GET /api/indicators/search のクエリパラメータです。
type SearchIndicatorsParams struct {
	Symbol string
	Limit  *int
}

type IndicatorItem struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	IndicatorType string `json:"indicatorType"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Currency      string `json:"currency"`
	Country       string `json:"country"`
	MicCode       string `json:"micCode"`
}

type IndicatorListRes struct {
	Indicators []IndicatorItem `json:"indicators"`
}

func NewIndicatorListRes(indicators []entity.Indicator) IndicatorListRes {
	out := make([]IndicatorItem, 0, len(indicators))
	for _, i := range indicators {
		out = append(out, IndicatorItem{
			ID:            i.ID.String(),
			Symbol:        i.Symbol,
			IndicatorType: string(i.IndicatorType),
			Name:          i.Name,
			Exchange:      i.Exchange,
			Currency:      i.Currency,
			Country:       i.Country,
			MicCode:       i.MicCode,
		})
	}
	return IndicatorListRes{Indicators: out}
}
