// Package chain flattens the provider's raw per-expiration call/put
// tables into one uniform contract table with derived spread and
// dollar-volume fields.
package chain

import (
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

// Normalize tags the raw rows of one expiration with their side and
// attaches the derived fields. Calls come first, then puts, both in
// provider order.
func Normalize(expiration string, calls, puts []model.RawContract) []model.Contract {
	out := make([]model.Contract, 0, len(calls)+len(puts))
	for _, row := range calls {
		out = append(out, build(model.Call, expiration, row))
	}
	for _, row := range puts {
		out = append(out, build(model.Put, expiration, row))
	}
	return out
}

// Merge concatenates per-expiration chains into one flat chain,
// preserving expiration order.
func Merge(chains ...[]model.Contract) []model.Contract {
	var n int
	for _, c := range chains {
		n += len(c)
	}
	out := make([]model.Contract, 0, n)
	for _, c := range chains {
		out = append(out, c...)
	}
	return out
}

func build(side model.Side, expiration string, row model.RawContract) model.Contract {
	c := model.Contract{
		ContractSymbol:    row.ContractSymbol,
		Side:              side,
		Expiration:        expiration,
		Strike:            row.Strike,
		Bid:               row.Bid,
		Ask:               row.Ask,
		LastPrice:         row.LastPrice,
		Volume:            row.Volume,
		OpenInterest:      row.OpenInterest,
		ImpliedVolatility: row.ImpliedVolatility,
	}

	c.Spread = row.Ask - row.Bid
	// SpreadPct is undefined when ask is 0; such contracts stay in the
	// chain but are excluded from spread-based statistics.
	if row.Ask > 0 {
		c.SpreadPct = c.Spread / row.Ask * 100
		c.HasSpreadPct = true
	}
	if mid := (row.Ask + row.Bid) / 2; mid > 0 {
		c.RelativeSpread = c.Spread / mid
	}
	c.DollarVolume = float64(row.Volume) * row.LastPrice * 100

	return c
}
