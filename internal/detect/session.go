// Package detect orchestrates one point-in-time analysis run: fetch a
// consistent market snapshot, derive the regime-adaptive thresholds,
// and compute the full report.
package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/chain"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/metrics"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/regime"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/threshold"
)

// Provider supplies market data for one underlying. Implementations
// own any retry behavior; the session never retries.
type Provider interface {
	GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error)
	GetExpirations(ctx context.Context, symbol string) ([]string, error)
	GetOptionChain(ctx context.Context, symbol, expiration string) (calls, puts []model.RawContract, err error)
	GetSpotPrice(ctx context.Context, symbol string) (float64, error)
}

// Snapshot is one consistent view of the market: every metric of a run
// is computed from the same snapshot or not at all.
type Snapshot struct {
	Bars  []model.PriceBar
	Chain []model.Contract
	Spot  float64
}

// Session runs one analysis for one symbol. The threshold set is
// computed once per session on first use and cached for the session's
// lifetime, even if data changes. A Session is not safe for concurrent
// use; create one per analysis run.
type Session struct {
	provider    Provider
	symbol      string
	historyDays int
	lookback    int
	logger      zerolog.Logger

	thresholds *model.ThresholdSet
}

// Options tune a session. Zero values fall back to defaults.
type Options struct {
	HistoryDays int // calendar days of price history to fetch
	Lookback    int // bars of rolling volatility ranked for the regime
}

func NewSession(p Provider, symbol string, opts Options) *Session {
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 365
	}
	if opts.Lookback <= 0 {
		opts.Lookback = regime.DefaultLookback
	}
	return &Session{
		provider:    p,
		symbol:      symbol,
		historyDays: opts.HistoryDays,
		lookback:    opts.Lookback,
		logger:      log.With().Str("component", "session").Str("symbol", symbol).Logger(),
	}
}

// Fetch pulls the price history, the full option chain across all
// expirations, and the spot price. Provider errors propagate
// unmodified apart from context wrapping.
func (s *Session) Fetch(ctx context.Context) (*Snapshot, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -s.historyDays)

	bars, err := s.provider.GetHistory(ctx, s.symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}

	expirations, err := s.provider.GetExpirations(ctx, s.symbol)
	if err != nil {
		return nil, fmt.Errorf("fetching expirations: %w", err)
	}

	chains := make([][]model.Contract, 0, len(expirations))
	for _, exp := range expirations {
		calls, puts, err := s.provider.GetOptionChain(ctx, s.symbol, exp)
		if err != nil {
			return nil, fmt.Errorf("fetching chain for %s: %w", exp, err)
		}
		chains = append(chains, chain.Normalize(exp, calls, puts))
	}

	spot, err := s.provider.GetSpotPrice(ctx, s.symbol)
	if err != nil {
		return nil, fmt.Errorf("fetching spot price: %w", err)
	}

	merged := chain.Merge(chains...)
	s.logger.Debug().
		Int("bars", len(bars)).
		Int("contracts", len(merged)).
		Int("expirations", len(expirations)).
		Msg("Snapshot fetched")

	return &Snapshot{Bars: bars, Chain: merged, Spot: spot}, nil
}

// Thresholds classifies both regimes and combines their threshold
// tables. The result is cached on first call; later calls return the
// cached set regardless of their arguments.
func (s *Session) Thresholds(bars []model.PriceBar, contracts []model.Contract) (model.ThresholdSet, error) {
	if s.thresholds != nil {
		return *s.thresholds, nil
	}

	volRegime, latestVol, err := regime.ClassifyVolatility(bars, s.lookback)
	if err != nil {
		return model.ThresholdSet{}, fmt.Errorf("classifying volatility regime: %w", err)
	}
	liqRegime, err := regime.ClassifyLiquidity(contracts)
	if err != nil {
		return model.ThresholdSet{}, fmt.Errorf("classifying liquidity regime: %w", err)
	}

	set := threshold.Combine(
		threshold.ForVolatility(volRegime, latestVol),
		threshold.ForLiquidity(liqRegime),
	)
	s.thresholds = &set

	s.logger.Info().
		Str("volatility_regime", string(volRegime)).
		Str("liquidity_regime", string(liqRegime)).
		Float64("latest_volatility", latestVol).
		Float64("volume_threshold", set.Volume).
		Float64("spread_threshold", set.Spread).
		Msg("Thresholds derived")

	return set, nil
}

// Analyze produces the full report for one snapshot. Any fatal error
// aborts before a partial report is emitted.
func (s *Session) Analyze(ctx context.Context) (*model.Report, error) {
	snap, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeSnapshot(snap)
}

// AnalyzeSnapshot computes the report from an already-fetched
// snapshot.
func (s *Session) AnalyzeSnapshot(snap *Snapshot) (*model.Report, error) {
	thresholds, err := s.Thresholds(snap.Bars, snap.Chain)
	if err != nil {
		return nil, err
	}

	skew, err := metrics.VolatilitySkew(snap.Chain, snap.Spot)
	if err != nil {
		return nil, fmt.Errorf("computing volatility skew: %w", err)
	}

	r := &model.Report{
		PriceAnalysis: priceAnalysis(snap.Bars),
		OptionsMetrics: model.OptionsMetrics{
			PutCallRatios:       metrics.PutCallRatio(snap.Chain),
			OptionsFlow:         metrics.Flow(snap.Chain),
			UnusualSpreadsCount: len(metrics.UnusualSpreads(snap.Chain, thresholds)),
			VolatilitySkew:      skew,
		},
	}
	return r, nil
}

// priceAnalysis summarizes the bar series. The threshold gate has
// already guaranteed at least 21 bars, so every field is defined.
func priceAnalysis(bars []model.PriceBar) model.PriceAnalysis {
	n := len(bars)
	last := bars[n-1].Close
	vols := regime.RollingVolatility(bars)

	return model.PriceAnalysis{
		CurrentPrice:         last,
		DailyReturn:          last/bars[n-2].Close - 1,
		HistoricalVolatility: vols[len(vols)-1],
		Momentum5Day:         last/bars[n-6].Close - 1,
		Momentum20Day:        last/bars[n-21].Close - 1,
	}
}
