// Package regime classifies the current volatility and liquidity
// conditions used to derive adaptive detection thresholds.
package regime

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

var (
	// ErrInsufficientHistory means too few bars to compute the latest
	// rolling volatility (at least volWindow+1 bars are required).
	ErrInsufficientHistory = errors.New("insufficient price history for rolling volatility")

	// ErrEmptyChain means the option chain has no usable contracts.
	ErrEmptyChain = errors.New("option chain is empty")
)

const (
	volWindow       = 20
	tradingDays     = 252
	DefaultLookback = 252
)

// Returns computes the daily simple return series close[i]/close[i-1]-1.
func Returns(bars []model.PriceBar) []float64 {
	if len(bars) < 2 {
		return nil
	}
	out := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		out = append(out, bars[i].Close/bars[i-1].Close-1)
	}
	return out
}

// RollingVolatility computes the 20-day rolling standard deviation of
// daily returns, annualized by sqrt(252). Only the defined tail of the
// series is returned: entry i covers returns [i, i+volWindow).
func RollingVolatility(bars []model.PriceBar) []float64 {
	returns := Returns(bars)
	if len(returns) < volWindow {
		return nil
	}
	out := make([]float64, 0, len(returns)-volWindow+1)
	for i := volWindow; i <= len(returns); i++ {
		sd := stat.StdDev(returns[i-volWindow:i], nil)
		out = append(out, sd*math.Sqrt(tradingDays))
	}
	return out
}

// ClassifyVolatility ranks the latest annualized rolling volatility
// within its trailing lookback window and maps the percentile to a
// regime. It also returns the latest rolling volatility, which feeds
// the price-move threshold.
func ClassifyVolatility(bars []model.PriceBar, lookback int) (model.VolatilityRegime, float64, error) {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	vols := RollingVolatility(bars)
	if len(vols) == 0 {
		return "", 0, ErrInsufficientHistory
	}
	if len(vols) > lookback {
		vols = vols[len(vols)-lookback:]
	}
	latest := vols[len(vols)-1]
	return classifyPercentile(percentileRank(vols, latest)), latest, nil
}

// percentileRank is the inclusive average-rank percentile of x within
// series: ties share the mean of their ordinal ranks.
func percentileRank(series []float64, x float64) float64 {
	var less, equal float64
	for _, v := range series {
		switch {
		case v < x:
			less++
		case v == x:
			equal++
		}
	}
	return (less + (equal+1)/2) / float64(len(series))
}

func classifyPercentile(rank float64) model.VolatilityRegime {
	switch {
	case rank > 0.8:
		return model.VolatilityHigh
	case rank < 0.2:
		return model.VolatilityLow
	default:
		return model.VolatilityMedium
	}
}

// ClassifyLiquidity derives the liquidity regime from the
// cross-sectional median relative spread and median volume of the
// chain. Only contracts with a well-defined spread (ask > 0) count.
func ClassifyLiquidity(contracts []model.Contract) (model.LiquidityRegime, error) {
	if len(contracts) == 0 {
		return "", ErrEmptyChain
	}

	var spreads, volumes []float64
	for _, c := range contracts {
		if !c.HasSpreadPct {
			continue
		}
		spreads = append(spreads, c.RelativeSpread)
		volumes = append(volumes, float64(c.Volume))
	}
	if len(spreads) == 0 {
		return "", ErrEmptyChain
	}

	medSpread := median(spreads)
	medVolume := median(volumes)

	switch {
	case medSpread > 0.05 || medVolume < 100:
		return model.LiquidityLow, nil
	case medSpread < 0.02 && medVolume > 1000:
		return model.LiquidityHigh, nil
	default:
		return model.LiquidityMedium, nil
	}
}

// median with midpoint interpolation for even-length input. gonum's
// Quantile follows empirical-CDF conventions that differ from the
// interpolated median required here.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
