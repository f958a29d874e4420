package yahoo

import (
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// chartResponse is the v8 chart endpoint payload. Quote arrays are
// positionally aligned with Timestamp and may contain nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// optionsResponse is the v7 options endpoint payload.
type optionsResponse struct {
	OptionChain struct {
		Result []optionResult `json:"result"`
		Error  *apiError      `json:"error"`
	} `json:"optionChain"`
}

type optionResult struct {
	UnderlyingSymbol string  `json:"underlyingSymbol"`
	ExpirationDates  []int64 `json:"expirationDates"`
	Quote            struct {
		RegularMarketPrice float64 `json:"regularMarketPrice"`
	} `json:"quote"`
	Options []struct {
		ExpirationDate int64               `json:"expirationDate"`
		Calls          []model.RawContract `json:"calls"`
		Puts           []model.RawContract `json:"puts"`
	} `json:"options"`
}
