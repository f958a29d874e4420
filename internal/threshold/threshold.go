// Package threshold maps market regimes to concrete detection
// thresholds. All functions are pure: no I/O, no state.
package threshold

import (
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

// ForVolatility derives the volatility-side thresholds. In a high
// volatility regime the price-move bar drops to half the daily vol and
// volume detection tightens; in a low regime both loosen.
func ForVolatility(r model.VolatilityRegime, latestVol float64) model.VolatilityThresholds {
	switch r {
	case model.VolatilityHigh:
		return model.VolatilityThresholds{
			PriceMove:  latestVol * 0.5,
			Volume:     2.5,
			ImpliedVol: 1.8,
		}
	case model.VolatilityLow:
		return model.VolatilityThresholds{
			PriceMove:  latestVol * 1.5,
			Volume:     4.0,
			ImpliedVol: 2.5,
		}
	default:
		return model.VolatilityThresholds{
			PriceMove:  latestVol,
			Volume:     3.0,
			ImpliedVol: 2.0,
		}
	}
}

// ForLiquidity derives the liquidity-side thresholds. Illiquid chains
// tolerate wider spreads but react to smaller volume spikes.
func ForLiquidity(r model.LiquidityRegime) model.LiquidityThresholds {
	switch r {
	case model.LiquidityLow:
		return model.LiquidityThresholds{
			Spread:           3.0,
			VolumeMultiplier: 2.0,
			OpenInterest:     1.5,
		}
	case model.LiquidityHigh:
		return model.LiquidityThresholds{
			Spread:           5.0,
			VolumeMultiplier: 4.0,
			OpenInterest:     2.5,
		}
	default:
		return model.LiquidityThresholds{
			Spread:           4.0,
			VolumeMultiplier: 3.0,
			OpenInterest:     2.0,
		}
	}
}

// Combine merges both sides into the set consumed by the metrics
// engine. The combined volume threshold is the volatility-regime
// threshold scaled by the liquidity multiplier.
func Combine(v model.VolatilityThresholds, l model.LiquidityThresholds) model.ThresholdSet {
	return model.ThresholdSet{
		PriceMove:    v.PriceMove,
		Volume:       v.Volume * l.VolumeMultiplier,
		ImpliedVol:   v.ImpliedVol,
		Spread:       l.Spread,
		OpenInterest: l.OpenInterest,
	}
}
