// Package entity defines the domain types shared by every indicator-related feature.
package entity

import (
	"fmt"
	"strings"
)

// IndicatorType は指標の種類を表します。値は外部API・フロントエンドと共通の文字列です。
type IndicatorType string

const (
	IndicatorTypeStocks                  IndicatorType = "stocks"
	IndicatorTypeForexPairs              IndicatorType = "forex_pairs"
	IndicatorTypeCryptocurrencies        IndicatorType = "cryptocurrencies"
	IndicatorTypeETF                     IndicatorType = "etf"
	IndicatorTypeIndices                 IndicatorType = "indices"
	IndicatorTypeFunds                   IndicatorType = "funds"
	IndicatorTypeBonds                   IndicatorType = "bonds"
	IndicatorTypeCustomForecastIndicator IndicatorType = "customForecastIndicator"
)

// MarketIndicatorTypes lists the types backed by the external market-data catalog,
// in the order the catalog sync walks them.
var MarketIndicatorTypes = []IndicatorType{
	IndicatorTypeStocks,
	IndicatorTypeForexPairs,
	IndicatorTypeCryptocurrencies,
	IndicatorTypeETF,
	IndicatorTypeIndices,
	IndicatorTypeFunds,
	IndicatorTypeBonds,
}

// ParseIndicatorType validates s against the known indicator types.
func ParseIndicatorType(s string) (IndicatorType, error) {
	t := IndicatorType(strings.TrimSpace(s))
	if t == IndicatorTypeCustomForecastIndicator || t.IsMarket() {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidIndicatorType, s)
}

// IsMarket reports whether t is served by the market-data catalog.
func (t IndicatorType) IsMarket() bool {
	for _, m := range MarketIndicatorTypes {
		if t == m {
			return true
		}
	}
	return false
}

// IndicatorInfo is the reference to a market indicator as stored on a board or a
// custom forecast indicator.
type IndicatorInfo struct {
	ID            string        `json:"id"`
	Symbol        string        `json:"symbol"`
	IndicatorType IndicatorType `json:"indicatorType"`
	Name          string        `json:"name"`
	Exchange      string        `json:"exchange"`
}

// IndicatorInfoIDs returns the ids of infos in order.
func IndicatorInfoIDs(infos []IndicatorInfo) []string {
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	return ids
}
