// Package yahoo implements the market data provider against the Yahoo
// Finance chart and options endpoints.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
	platformhttp "github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/platform/http"
)

// ErrNoData means the symbol is unknown or the requested range is
// empty.
var ErrNoData = errors.New("no data for symbol")

const expirationFormat = "2006-01-02"

// Client is the Yahoo Finance API client.
type Client struct {
	baseURL    string
	httpClient *platformhttp.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Yahoo client.
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Yahoo Finance API client.
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = "https://query1.finance.yahoo.com"
	}
	return &Client{
		baseURL: options.BaseURL,
		httpClient: platformhttp.NewClient(platformhttp.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetryTimeout: options.MaxRetryTimeout,
			UserAgent:       "Mozilla/5.0 (options-activity-detector)",
		}),
		logger: log.With().Str("component", "yahoo_client").Logger(),
	}
}

// GetHistory fetches daily price bars for [start, end].
func (c *Client) GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error) {
	url := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, symbol, start.Unix(), end.Unix(),
	)

	var data chartResponse
	if err := c.getJSON(ctx, url, &data); err != nil {
		return nil, err
	}
	if data.Chart.Error != nil {
		c.logger.Error().
			Str("symbol", symbol).
			Str("code", data.Chart.Error.Code).
			Msg("Yahoo chart API error")
		return nil, fmt.Errorf("%w: %s", ErrNoData, data.Chart.Error.Description)
	}
	if len(data.Chart.Result) == 0 || len(data.Chart.Result[0].Timestamp) == 0 {
		return nil, ErrNoData
	}

	result := data.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, ErrNoData
	}
	quote := result.Indicators.Quote[0]

	bars := make([]model.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Yahoo emits null rows for halted sessions; skip them.
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := model.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	c.logger.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("Fetched history")
	return bars, nil
}

// GetExpirations lists the available option expiration dates,
// formatted as YYYY-MM-DD.
func (c *Client) GetExpirations(ctx context.Context, symbol string) ([]string, error) {
	result, err := c.getOptions(ctx, symbol, "")
	if err != nil {
		return nil, err
	}

	expirations := make([]string, 0, len(result.ExpirationDates))
	for _, epoch := range result.ExpirationDates {
		expirations = append(expirations, time.Unix(epoch, 0).UTC().Format(expirationFormat))
	}
	return expirations, nil
}

// GetOptionChain fetches the raw call and put rows for one expiration.
func (c *Client) GetOptionChain(ctx context.Context, symbol, expiration string) ([]model.RawContract, []model.RawContract, error) {
	result, err := c.getOptions(ctx, symbol, expiration)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Options) == 0 {
		return nil, nil, fmt.Errorf("%w: no chain for expiration %s", ErrNoData, expiration)
	}
	return result.Options[0].Calls, result.Options[0].Puts, nil
}

// GetSpotPrice fetches the current price of the underlying.
func (c *Client) GetSpotPrice(ctx context.Context, symbol string) (float64, error) {
	result, err := c.getOptions(ctx, symbol, "")
	if err != nil {
		return 0, err
	}
	if result.Quote.RegularMarketPrice == 0 {
		return 0, fmt.Errorf("%w: no spot price", ErrNoData)
	}
	return result.Quote.RegularMarketPrice, nil
}

func (c *Client) getOptions(ctx context.Context, symbol, expiration string) (*optionResult, error) {
	url := fmt.Sprintf("%s/v7/finance/options/%s", c.baseURL, symbol)
	if expiration != "" {
		date, err := time.ParseInLocation(expirationFormat, expiration, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing expiration %q: %w", expiration, err)
		}
		url = fmt.Sprintf("%s?date=%d", url, date.Unix())
	}

	var data optionsResponse
	if err := c.getJSON(ctx, url, &data); err != nil {
		return nil, err
	}
	if data.OptionChain.Error != nil {
		c.logger.Error().
			Str("symbol", symbol).
			Str("code", data.OptionChain.Error.Code).
			Msg("Yahoo options API error")
		return nil, fmt.Errorf("%w: %s", ErrNoData, data.OptionChain.Error.Description)
	}
	if len(data.OptionChain.Result) == 0 {
		return nil, ErrNoData
	}
	return &data.OptionChain.Result[0], nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	c.logger.Debug().Str("url", url).Msg("Fetching")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}
