package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/chain"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

func TestPutCallRatio(t *testing.T) {
	contracts := chain.Normalize("2025-01-17",
		[]model.RawContract{{Strike: 100, Volume: 500, Ask: 2.0, Bid: 1.8, OpenInterest: 1000}},
		[]model.RawContract{{Strike: 100, Volume: 1000, Ask: 2.2, Bid: 2.0, OpenInterest: 2000}},
	)

	ratios := PutCallRatio(contracts)
	assert.InDelta(t, 2.0, ratios.VolumeRatio, 1e-12)
	assert.InDelta(t, 2.0, ratios.OIRatio, 1e-12)
}

func TestPutCallRatioZeroCallSide(t *testing.T) {
	// Any put volume over a zero call sum resolves to 0, never NaN.
	contracts := chain.Normalize("2025-01-17",
		nil,
		[]model.RawContract{{Strike: 100, Volume: 9999, Ask: 2.2, Bid: 2.0, OpenInterest: 5000}},
	)

	ratios := PutCallRatio(contracts)
	assert.Zero(t, ratios.VolumeRatio)
	assert.Zero(t, ratios.OIRatio)
}

func flowChain() []model.Contract {
	calls := []model.RawContract{
		{Strike: 100, Bid: 1.0, Ask: 1.2, LastPrice: 1.1, Volume: 100}, // above bid: bullish
		{Strike: 105, Bid: 1.0, Ask: 1.2, LastPrice: 0.9, Volume: 100}, // below ask: bearish
		{Strike: 110, Bid: 1.0, Ask: 1.0, LastPrice: 1.0, Volume: 100}, // at the quote: neither
	}
	puts := []model.RawContract{
		{Strike: 100, Bid: 2.0, Ask: 2.2, LastPrice: 1.9, Volume: 40}, // below ask: bullish
		{Strike: 95, Bid: 2.0, Ask: 2.2, LastPrice: 2.3, Volume: 50},  // above bid: bearish
	}
	return chain.Normalize("2025-01-17", calls, puts)
}

func TestFlow(t *testing.T) {
	flow := Flow(flowChain())

	assert.InDelta(t, 11000+7600, flow.Bullish, 1e-9) // 100*1.1*100 + 40*1.9*100
	assert.InDelta(t, 9000+11500, flow.Bearish, 1e-9) // 100*0.9*100 + 50*2.3*100
	assert.InDelta(t, flow.Bullish-flow.Bearish, flow.Net, 1e-12)
}

func TestFlowNetIdentity(t *testing.T) {
	chains := [][]model.Contract{
		nil,
		flowChain(),
		chain.Normalize("2025-02-21", []model.RawContract{{Strike: 1, LastPrice: 5, Bid: 1, Ask: 9, Volume: 3}}, nil),
	}
	for _, contracts := range chains {
		flow := Flow(contracts)
		assert.Equal(t, flow.Bullish-flow.Bearish, flow.Net)
	}
}

func TestUnusualSpreads(t *testing.T) {
	thresholds := model.ThresholdSet{Spread: 2.5, Volume: 2.0}

	var rows []model.RawContract
	// Nine quiet contracts: spread 10% of ask, volume 100.
	for i := 0; i < 9; i++ {
		rows = append(rows, model.RawContract{
			Strike: float64(90 + i), Bid: 0.90, Ask: 1.00, LastPrice: 0.95, Volume: 100,
		})
	}
	// One outlier: spread 50% of ask on heavy volume.
	rows = append(rows, model.RawContract{
		Strike: 100, Bid: 0.50, Ask: 1.00, LastPrice: 0.70, Volume: 2000,
	})
	// Undefined spread percentage on huge volume: never flaggable.
	rows = append(rows, model.RawContract{
		Strike: 105, Bid: 0, Ask: 0, LastPrice: 0.05, Volume: 5000,
	})

	contracts := chain.Normalize("2025-01-17", rows, nil)
	unusual := UnusualSpreads(contracts, thresholds)

	require.Len(t, unusual, 1)
	assert.InDelta(t, 100.0, unusual[0].Strike, 1e-12)
	for _, c := range unusual {
		assert.True(t, c.HasSpreadPct)
	}
}

func TestUnusualSpreadsVolumeGate(t *testing.T) {
	// The same spread outlier on thin volume is not flagged.
	thresholds := model.ThresholdSet{Spread: 2.5, Volume: 2.0}

	var rows []model.RawContract
	for i := 0; i < 9; i++ {
		rows = append(rows, model.RawContract{
			Strike: float64(90 + i), Bid: 0.90, Ask: 1.00, LastPrice: 0.95, Volume: 100,
		})
	}
	rows = append(rows, model.RawContract{
		Strike: 100, Bid: 0.50, Ask: 1.00, LastPrice: 0.70, Volume: 100,
	})

	unusual := UnusualSpreads(chain.Normalize("2025-01-17", rows, nil), thresholds)
	assert.Empty(t, unusual)
}

func TestUnusualSpreadsUniformPopulation(t *testing.T) {
	// Zero dispersion means no outliers, not a division error.
	rows := []model.RawContract{
		{Strike: 95, Bid: 0.90, Ask: 1.00, LastPrice: 0.95, Volume: 100},
		{Strike: 100, Bid: 0.90, Ask: 1.00, LastPrice: 0.95, Volume: 100},
	}
	unusual := UnusualSpreads(chain.Normalize("2025-01-17", rows, nil), model.ThresholdSet{Spread: 2.0, Volume: 1.0})
	assert.Empty(t, unusual)
}

func skewChain() []model.Contract {
	jan := chain.Normalize("2025-01-17",
		[]model.RawContract{
			{Strike: 95, Ask: 1, ImpliedVolatility: 0.30},
			{Strike: 100, Ask: 1, ImpliedVolatility: 0.25},
			{Strike: 105, Ask: 1, ImpliedVolatility: 0.40},
		}, nil)
	feb := chain.Normalize("2025-02-21",
		[]model.RawContract{
			{Strike: 100, Ask: 1, ImpliedVolatility: 0.28},
		}, nil)
	return chain.Merge(jan, feb)
}

func TestVolatilitySkew(t *testing.T) {
	skew, err := VolatilitySkew(skewChain(), 101)
	require.NoError(t, err)

	// Nearest strikes to 101 are 100 and 105.
	require.Len(t, skew, 2)
	assert.InDelta(t, (0.25+0.40)/2, skew["2025-01-17"], 1e-12)
	// February has no 105 strike; the single available cell stands alone.
	assert.InDelta(t, 0.28, skew["2025-02-21"], 1e-12)
}

func TestVolatilitySkewDuplicateCellsAveraged(t *testing.T) {
	contracts := chain.Normalize("2025-01-17",
		[]model.RawContract{{Strike: 100, Ask: 1, ImpliedVolatility: 0.20}},
		[]model.RawContract{{Strike: 100, Ask: 1, ImpliedVolatility: 0.30}},
	)

	skew, err := VolatilitySkew(contracts, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, skew["2025-01-17"], 1e-12)
}

func TestVolatilitySkewTieBreaksTowardLowerStrike(t *testing.T) {
	contracts := chain.Normalize("2025-01-17",
		[]model.RawContract{
			{Strike: 95, Ask: 1, ImpliedVolatility: 0.10},
			{Strike: 105, Ask: 1, ImpliedVolatility: 0.50},
			{Strike: 110, Ask: 1, ImpliedVolatility: 0.90},
		}, nil)

	// 95 and 105 are equidistant from 100; both beat 110.
	skew, err := VolatilitySkew(contracts, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.30, skew["2025-01-17"], 1e-12)
}

func TestVolatilitySkewEmptyChain(t *testing.T) {
	_, err := VolatilitySkew(nil, 100)
	assert.ErrorIs(t, err, ErrNoATMStrikes)
}

func TestMetricsIdempotent(t *testing.T) {
	contracts := flowChain()
	thresholds := model.ThresholdSet{Spread: 2.0, Volume: 1.0}

	assert.Equal(t, PutCallRatio(contracts), PutCallRatio(contracts))
	assert.Equal(t, Flow(contracts), Flow(contracts))
	assert.Equal(t, UnusualSpreads(contracts, thresholds), UnusualSpreads(contracts, thresholds))

	first, err := VolatilitySkew(contracts, 100)
	require.NoError(t, err)
	second, err := VolatilitySkew(contracts, 100)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
