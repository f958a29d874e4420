package model

// PriceAnalysis summarizes the recent price action of the underlying.
type PriceAnalysis struct {
	CurrentPrice         float64 `json:"current_price"`
	DailyReturn          float64 `json:"daily_return"`
	HistoricalVolatility float64 `json:"historical_volatility"`
	Momentum5Day         float64 `json:"5_day_momentum"`
	Momentum20Day        float64 `json:"20_day_momentum"`
}

// PutCallRatios holds the volume and open-interest put/call ratios.
// Both are 0 (not NaN) when the call-side sum is 0.
type PutCallRatios struct {
	VolumeRatio float64 `json:"volume_put_call_ratio"`
	OIRatio     float64 `json:"oi_put_call_ratio"`
}

// OptionsFlow holds directional dollar-volume totals. Net is always
// Bullish minus Bearish.
type OptionsFlow struct {
	Bullish float64 `json:"bullish_flow"`
	Bearish float64 `json:"bearish_flow"`
	Net     float64 `json:"net_flow"`
}

// OptionsMetrics groups the chain-derived metrics of one analysis run.
type OptionsMetrics struct {
	PutCallRatios       PutCallRatios      `json:"put_call_ratios"`
	OptionsFlow         OptionsFlow        `json:"options_flow"`
	UnusualSpreadsCount int                `json:"unusual_spreads_count"`
	VolatilitySkew      map[string]float64 `json:"volatility_skew"` // expiration -> average near-the-money IV
}

// Report is a point-in-time snapshot of the full analysis, immutable
// once produced.
type Report struct {
	PriceAnalysis  PriceAnalysis  `json:"price_analysis"`
	OptionsMetrics OptionsMetrics `json:"options_metrics"`
}

// Interpretation is the human-readable reading of one Report.
type Interpretation struct {
	Summary                 string   `json:"summary"`
	Alerts                  []string `json:"alerts"`
	DetailedInterpretations []string `json:"detailed_interpretations"`
}
