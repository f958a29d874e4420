package model

// VolatilityThresholds are the detection thresholds derived from the
// volatility regime and the latest annualized rolling volatility.
type VolatilityThresholds struct {
	PriceMove  float64 `json:"price_move_threshold"` // fraction of price
	Volume     float64 `json:"volume_threshold"`     // multiplier on mean volume
	ImpliedVol float64 `json:"iv_threshold"`
}

// LiquidityThresholds are the detection thresholds derived from the
// liquidity regime of the option chain.
type LiquidityThresholds struct {
	Spread           float64 `json:"spread_threshold"` // z-score cutoff
	VolumeMultiplier float64 `json:"volume_multiplier"`
	OpenInterest     float64 `json:"oi_threshold"`
}

// ThresholdSet is the combined set used by the metrics engine. Volume is
// the volatility-regime volume threshold multiplied by the liquidity
// volume multiplier.
type ThresholdSet struct {
	PriceMove    float64 `json:"price_move_threshold"`
	Volume       float64 `json:"volume_threshold"`
	ImpliedVol   float64 `json:"iv_threshold"`
	Spread       float64 `json:"spread_threshold"`
	OpenInterest float64 `json:"oi_threshold"`
}
