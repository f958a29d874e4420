// Package metrics computes the options-activity metrics over a
// normalized chain. Every function is pure and side-effect free:
// calling one twice on the same chain and threshold snapshot yields
// identical results.
package metrics

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

// ErrNoATMStrikes means the chain has no strikes to anchor the
// volatility skew near the spot price.
var ErrNoATMStrikes = errors.New("no strikes near spot price")

// PutCallRatio computes the volume and open-interest put/call ratios.
// A zero call-side sum yields a ratio of 0, never a division error.
func PutCallRatio(contracts []model.Contract) model.PutCallRatios {
	var callVolume, putVolume, callOI, putOI int64
	for _, c := range contracts {
		switch c.Side {
		case model.Call:
			callVolume += c.Volume
			callOI += c.OpenInterest
		case model.Put:
			putVolume += c.Volume
			putOI += c.OpenInterest
		}
	}

	var ratios model.PutCallRatios
	if callVolume > 0 {
		ratios.VolumeRatio = float64(putVolume) / float64(callVolume)
	}
	if callOI > 0 {
		ratios.OIRatio = float64(putOI) / float64(callOI)
	}
	return ratios
}

// Flow splits dollar volume into bullish and bearish totals. A call
// trading above its bid or a put below its ask counts as bullish; the
// mirrored conditions count as bearish. A contract trading exactly at
// the quote counts in neither bucket.
func Flow(contracts []model.Contract) model.OptionsFlow {
	var flow model.OptionsFlow
	for _, c := range contracts {
		switch c.Side {
		case model.Call:
			if c.LastPrice > c.Bid {
				flow.Bullish += c.DollarVolume
			} else if c.LastPrice < c.Ask {
				flow.Bearish += c.DollarVolume
			}
		case model.Put:
			if c.LastPrice < c.Ask {
				flow.Bullish += c.DollarVolume
			} else if c.LastPrice > c.Bid {
				flow.Bearish += c.DollarVolume
			}
		}
	}
	flow.Net = flow.Bullish - flow.Bearish
	return flow
}

// UnusualSpreads returns the contracts whose spread percentage is a
// population z-score outlier beyond thresholds.Spread and whose volume
// exceeds thresholds.Volume times the mean chain volume. Contracts
// with an undefined spread percentage are excluded from the population
// and can never be flagged.
func UnusualSpreads(contracts []model.Contract, thresholds model.ThresholdSet) []model.Contract {
	var spreadPcts, volumes []float64
	for _, c := range contracts {
		volumes = append(volumes, float64(c.Volume))
		if c.HasSpreadPct {
			spreadPcts = append(spreadPcts, c.SpreadPct)
		}
	}
	if len(spreadPcts) == 0 {
		return nil
	}

	mean := stat.Mean(spreadPcts, nil)
	std := stat.PopStdDev(spreadPcts, nil)
	if std == 0 {
		return nil
	}
	volumeCutoff := thresholds.Volume * stat.Mean(volumes, nil)

	var unusual []model.Contract
	for _, c := range contracts {
		if !c.HasSpreadPct {
			continue
		}
		z := (c.SpreadPct - mean) / std
		if z > thresholds.Spread && float64(c.Volume) > volumeCutoff {
			unusual = append(unusual, c)
		}
	}
	return unusual
}

// VolatilitySkew pivots the chain by strike and expiration and, for
// each expiration, averages the implied volatility of the two strikes
// closest to spot. Duplicate (strike, expiration) cells are averaged.
// Expirations with no implied volatility at either chosen strike are
// omitted rather than failing the whole mapping.
func VolatilitySkew(contracts []model.Contract, spotPrice float64) (map[string]float64, error) {
	type cell struct {
		sum   float64
		count int
	}
	pivot := make(map[float64]map[string]*cell)
	expirations := make(map[string]struct{})
	for _, c := range contracts {
		row, ok := pivot[c.Strike]
		if !ok {
			row = make(map[string]*cell)
			pivot[c.Strike] = row
		}
		cl, ok := row[c.Expiration]
		if !ok {
			cl = &cell{}
			row[c.Expiration] = cl
		}
		cl.sum += c.ImpliedVolatility
		cl.count++
		expirations[c.Expiration] = struct{}{}
	}
	if len(pivot) == 0 {
		return nil, ErrNoATMStrikes
	}

	strikes := make([]float64, 0, len(pivot))
	for strike := range pivot {
		strikes = append(strikes, strike)
	}
	sort.Float64s(strikes)

	// Two strikes nearest spot, ties resolved toward the lower strike
	// by the stable sort over the ascending strike axis.
	sort.SliceStable(strikes, func(i, j int) bool {
		return math.Abs(strikes[i]-spotPrice) < math.Abs(strikes[j]-spotPrice)
	})
	nearest := strikes
	if len(nearest) > 2 {
		nearest = nearest[:2]
	}

	skew := make(map[string]float64, len(expirations))
	for exp := range expirations {
		var sum float64
		var count int
		for _, strike := range nearest {
			if cl, ok := pivot[strike][exp]; ok {
				sum += cl.sum / float64(cl.count)
				count++
			}
		}
		if count > 0 {
			skew[exp] = sum / float64(count)
		}
	}
	return skew, nil
}
