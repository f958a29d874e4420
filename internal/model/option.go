package model

// Side tags an option contract as call or put.
type Side string

const (
	Call Side = "call"
	Put  Side = "put"
)

// RawContract is one option row as returned by the market data provider,
// before any derived fields are attached.
type RawContract struct {
	ContractSymbol    string  `json:"contractSymbol"`
	Strike            float64 `json:"strike"`
	Bid               float64 `json:"bid"`
	Ask               float64 `json:"ask"`
	LastPrice         float64 `json:"lastPrice"`
	Volume            int64   `json:"volume,omitempty"`
	OpenInterest      int64   `json:"openInterest,omitempty"`
	ImpliedVolatility float64 `json:"impliedVolatility"`
}

// Contract is one option instrument with side, expiration and derived
// spread/flow fields attached. Values are built once by the chain
// normalizer and never mutated afterwards.
type Contract struct {
	ContractSymbol    string  `json:"contract_symbol"`
	Side              Side    `json:"side"`
	Expiration        string  `json:"expiration"`
	Strike            float64 `json:"strike"`
	Bid               float64 `json:"bid"`
	Ask               float64 `json:"ask"`
	LastPrice         float64 `json:"last_price"`
	Volume            int64   `json:"volume"`
	OpenInterest      int64   `json:"open_interest"`
	ImpliedVolatility float64 `json:"implied_volatility"`

	// Derived at normalization time.
	Spread         float64 `json:"spread"`
	SpreadPct      float64 `json:"spread_pct,omitempty"` // percent of ask, only meaningful when HasSpreadPct
	HasSpreadPct   bool    `json:"-"`
	RelativeSpread float64 `json:"relative_spread"` // spread over midpoint
	DollarVolume   float64 `json:"dollar_volume"`
}
