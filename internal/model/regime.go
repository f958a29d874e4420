package model

// VolatilityRegime classifies where the latest 20-day annualized rolling
// volatility sits within its trailing lookback window.
type VolatilityRegime string

const (
	VolatilityHigh   VolatilityRegime = "HIGH"
	VolatilityMedium VolatilityRegime = "MEDIUM"
	VolatilityLow    VolatilityRegime = "LOW"
)

// LiquidityRegime classifies the current option chain by its
// cross-sectional median relative spread and median volume.
type LiquidityRegime string

const (
	LiquidityHigh   LiquidityRegime = "HIGH"
	LiquidityMedium LiquidityRegime = "MEDIUM"
	LiquidityLow    LiquidityRegime = "LOW"
)
