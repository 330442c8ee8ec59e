// Package marketdata fetches daily OHLCV history. It is the external
// collaborator at the pipeline's input boundary: the core never performs
// network I/O itself and consumes bars through the pipeline.BarSource
// interface this client satisfies.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quantbyte/signalscan/models"

	platformhttp "github.com/quantbyte/signalscan/internal/platform/http"
)

// Client fetches daily time series from a Twelve Data compatible API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *platformhttp.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new market-data client.
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new market-data client.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.twelvedata.com"
	}

	return &Client{
		apiKey:  opts.APIKey,
		baseURL: opts.BaseURL,
		httpClient: platformhttp.NewClient(platformhttp.ClientOptions{
			Timeout:         opts.RequestTimeout,
			RequestsPerSec:  opts.RequestsPerSec,
			MaxRetryTimeout: opts.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "marketdata_client").Logger(),
	}
}

// timeSeriesResponse is the wire shape of the time_series endpoint.
type timeSeriesResponse struct {
	Values []struct {
		Datetime string  `json:"datetime"`
		Open     float64 `json:"open,string"`
		High     float64 `json:"high,string"`
		Low      float64 `json:"low,string"`
		Close    float64 `json:"close,string"`
		Volume   float64 `json:"volume,string,omitempty"`
	} `json:"values"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// DailyBars fetches up to `days` daily bars for a symbol, oldest first.
// Timestamps are strictly increasing on return; duplicate dates are
// collapsed to the first occurrence.
func (c *Client) DailyBars(ctx context.Context, symbol string, days int) ([]models.PriceBar, error) {
	u := fmt.Sprintf("%s/time_series?symbol=%s&interval=1day&outputsize=%d&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), days, c.apiKey)

	c.logger.Debug().Str("symbol", symbol).Int("days", days).Msg("Fetching daily bars")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decoding time series: %w", err)
	}
	if data.Status == "error" {
		c.logger.Error().Str("symbol", symbol).Str("message", data.Message).Msg("Market data API error")
		return nil, fmt.Errorf("market data API error for %s: %s", symbol, data.Message)
	}

	bars := make([]models.PriceBar, 0, len(data.Values))
	for _, v := range data.Values {
		ts, err := parseDatetime(v.Datetime)
		if err != nil {
			return nil, fmt.Errorf("parsing bar datetime %q: %w", v.Datetime, err)
		}
		bars = append(bars, models.PriceBar{
			Timestamp: ts,
			Open:      v.Open,
			High:      v.High,
			Low:       v.Low,
			Close:     v.Close,
			Volume:    v.Volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })
	bars = dedupe(bars)

	c.logger.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("Fetched daily bars")
	return bars, nil
}

// dedupe drops bars repeating the previous timestamp; input must be sorted.
func dedupe(bars []models.PriceBar) []models.PriceBar {
	out := bars[:0]
	for i, b := range bars {
		if i > 0 && !b.Timestamp.After(out[len(out)-1].Timestamp) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func parseDatetime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported datetime format")
}
