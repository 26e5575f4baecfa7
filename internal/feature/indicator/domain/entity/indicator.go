// Package entity はindicatorフィーチャー（指標カタログ）のドメイン型を定義します。
package entity

import (
	"github.com/google/uuid"

	shared "indicator_backend/internal/domain/entity"
)

// Indicator は外部の参照データから同期したカタログの1行です。
// (IndicatorType, Symbol, Exchange) の組で一意になります。
type Indicator struct {
	ID            uuid.UUID            `json:"id"`
	Symbol        string               `json:"symbol"`
	IndicatorType shared.IndicatorType `json:"indicatorType"`
	Name          string               `json:"name"`
	Exchange      string               `json:"exchange"`
	Currency      string               `json:"currency"`
	Country       string               `json:"country"`
	MicCode       string               `json:"micCode"`
}

// Info returns the reference stored on boards and custom forecast indicators.
func (i Indicator) Info() shared.IndicatorInfo {
	return shared.IndicatorInfo{
		ID:            i.ID.String(),
		Symbol:        i.Symbol,
		IndicatorType: i.IndicatorType,
		Name:          i.Name,
		Exchange:      i.Exchange,
	}
}
