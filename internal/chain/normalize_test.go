package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

func TestNormalizeDerivedFields(t *testing.T) {
	calls := []model.RawContract{
		{ContractSymbol: "AMZN250117C00100000", Strike: 100, Bid: 1.8, Ask: 2.0, LastPrice: 1.9, Volume: 500, OpenInterest: 1000, ImpliedVolatility: 0.35},
	}
	puts := []model.RawContract{
		{ContractSymbol: "AMZN250117P00100000", Strike: 100, Bid: 2.0, Ask: 2.2, LastPrice: 2.1, Volume: 1000, OpenInterest: 2000, ImpliedVolatility: 0.40},
	}

	contracts := Normalize("2025-01-17", calls, puts)
	require.Len(t, contracts, 2)

	call := contracts[0]
	assert.Equal(t, model.Call, call.Side)
	assert.Equal(t, "2025-01-17", call.Expiration)
	assert.InDelta(t, 0.2, call.Spread, 1e-12)
	assert.True(t, call.HasSpreadPct)
	assert.InDelta(t, 10.0, call.SpreadPct, 1e-9) // 0.2/2.0*100
	assert.InDelta(t, 0.2/1.9, call.RelativeSpread, 1e-9)
	assert.InDelta(t, 95000, call.DollarVolume, 1e-9) // 500*1.9*100

	put := contracts[1]
	assert.Equal(t, model.Put, put.Side)
	assert.InDelta(t, 0.2, put.Spread, 1e-12)
	assert.InDelta(t, 0.2/2.2*100, put.SpreadPct, 1e-9)
	assert.InDelta(t, 210000, put.DollarVolume, 1e-9)
}

func TestNormalizeZeroAsk(t *testing.T) {
	contracts := Normalize("2025-01-17", []model.RawContract{
		{Strike: 100, Bid: 0, Ask: 0, LastPrice: 0.05, Volume: 10},
	}, nil)
	require.Len(t, contracts, 1)

	c := contracts[0]
	assert.False(t, c.HasSpreadPct, "spread percentage must stay undefined when ask is 0")
	assert.Zero(t, c.SpreadPct)
	assert.Zero(t, c.RelativeSpread)
	assert.InDelta(t, 50, c.DollarVolume, 1e-12)
}

func TestNormalizeAbsentVolume(t *testing.T) {
	contracts := Normalize("2025-01-17", []model.RawContract{
		{Strike: 100, Bid: 1.0, Ask: 1.2, LastPrice: 1.1}, // volume absent -> 0
	}, nil)
	require.Len(t, contracts, 1)
	assert.Zero(t, contracts[0].Volume)
	assert.Zero(t, contracts[0].DollarVolume)
}

func TestSpreadPctNonNegative(t *testing.T) {
	// For any contract with ask > bid >= 0 the spread percentage is
	// non-negative.
	rows := []model.RawContract{
		{Strike: 90, Bid: 0, Ask: 0.05, LastPrice: 0.03},
		{Strike: 95, Bid: 0.5, Ask: 0.9, LastPrice: 0.6},
		{Strike: 100, Bid: 1.8, Ask: 2.0, LastPrice: 1.9},
		{Strike: 105, Bid: 4.4, Ask: 4.45, LastPrice: 4.42},
	}
	for _, c := range Normalize("2025-01-17", rows, rows) {
		assert.True(t, c.HasSpreadPct)
		assert.GreaterOrEqual(t, c.SpreadPct, 0.0)
	}
}

func TestMerge(t *testing.T) {
	jan := Normalize("2025-01-17", []model.RawContract{{Strike: 100, Ask: 1}}, nil)
	feb := Normalize("2025-02-21", nil, []model.RawContract{{Strike: 100, Ask: 1}, {Strike: 105, Ask: 1}})

	merged := Merge(jan, feb)
	require.Len(t, merged, 3)
	assert.Equal(t, "2025-01-17", merged[0].Expiration)
	assert.Equal(t, "2025-02-21", merged[1].Expiration)
	assert.Equal(t, model.Put, merged[2].Side)
}
