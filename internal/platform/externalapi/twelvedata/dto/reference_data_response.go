// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// ReferenceItem is one entry of a reference-data list. Each endpoint fills a different subset:
// forex pairs and cryptocurrencies carry currency_base/currency_quote instead of name.
type ReferenceItem struct {
	Symbol             string   `json:"symbol"`
	Name               string   `json:"name"`
	Currency           string   `json:"currency"`
	Exchange           string   `json:"exchange"`
	MicCode            string   `json:"mic_code"`
	Country            string   `json:"country"`
	CurrencyBase       string   `json:"currency_base"`
	CurrencyQuote      string   `json:"currency_quote"`
	AvailableExchanges []string `json:"available_exchanges"`
}

// ReferenceDataResponse represents the JSON response from the reference-data endpoints.
// /funds and /bonds wrap their list in "result"; the others use "data".
type ReferenceDataResponse struct {
	Status  string          `json:"status"`
	Code    int             `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    []ReferenceItem `json:"data"`
	Result  *struct {
		Count int             `json:"count"`
		List  []ReferenceItem `json:"list"`
	} `json:"result,omitempty"`
}

// Items returns the entries regardless of the envelope used.
func (r ReferenceDataResponse) Items() []ReferenceItem {
	if r.Result != nil {
		return r.Result.List
	}
	return r.Data
}
