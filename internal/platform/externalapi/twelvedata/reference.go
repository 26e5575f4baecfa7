package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicator/domain/entity"
	"indicator_backend/internal/feature/indicator/usecase"
	"indicator_backend/internal/platform/externalapi/twelvedata/dto"
	"indicator_backend/internal/platform/logger"
)

// TwelveDataReference はTwelve Data外部APIから指標の参照データを取得するReferenceDataRepository実装です。
type TwelveDataReference struct {
	cfg    Config
	client *http.Client
}

// TwelveDataReferenceがReferenceDataRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ReferenceDataRepository = (*TwelveDataReference)(nil)

// NewTwelveDataReference は指定された設定とHTTPクライアントでTwelveDataReferenceの新しいインスタンスを生成します。
func NewTwelveDataReference(cfg Config, client *http.Client) *TwelveDataReference {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &TwelveDataReference{cfg: cfg, client: client}
}

// ListReferenceData はTwelve Data APIから指定タイプの参照データ一覧を取得します。
// エンドポイント名は指標タイプの値と同じです（/stocks, /forex_pairs, ...）。
func (t *TwelveDataReference) ListReferenceData(ctx context.Context, indicatorType shared.IndicatorType) ([]entity.Indicator, error) {
	if !indicatorType.IsMarket() {
		return nil, fmt.Errorf("%w: %q has no reference data", shared.ErrInvalidIndicatorType, indicatorType)
	}

	q := url.Values{}
	if t.cfg.Country != "" {
		q.Set("country", t.cfg.Country)
	}
	// funds は件数が多すぎるため取引所を絞る
	if indicatorType == shared.IndicatorTypeFunds {
		q.Set("exchange", "NASDAQ")
	}
	if t.cfg.APIKey != "" {
		q.Set("apikey", t.cfg.APIKey)
	}
	u := fmt.Sprintf("%s/%s?%s", t.cfg.BaseURL, indicatorType, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			logger.L().Warn().Err(err).Msg("failed to close response body")
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	var body dto.ReferenceDataResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s: %w", indicatorType, err)
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	items := body.Items()
	out := make([]entity.Indicator, 0, len(items))
	for _, it := range items {
		if it.Symbol == "" {
			continue
		}
		out = append(out, toIndicator(indicatorType, it))
	}
	return out, nil
}

func toIndicator(t shared.IndicatorType, it dto.ReferenceItem) entity.Indicator {
	name := it.Name
	if name == "" && it.CurrencyBase != "" {
		name = it.CurrencyBase + " / " + it.CurrencyQuote
	}
	if name == "" {
		name = it.Symbol
	}
	exchange := it.Exchange
	if exchange == "" && len(it.AvailableExchanges) > 0 {
		exchange = it.AvailableExchanges[0]
	}
	currency := it.Currency
	if currency == "" {
		currency = it.CurrencyQuote
	}
	return entity.Indicator{
		Symbol:        it.Symbol,
		IndicatorType: t,
		Name:          name,
		Exchange:      exchange,
		Currency:      currency,
		Country:       it.Country,
		MicCode:       it.MicCode,
	}
}
