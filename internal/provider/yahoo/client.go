package yahoo

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"cryptofeed/internal/httpx"
	"cryptofeed/internal/provider"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client is a client for the public Yahoo Finance chart API. It needs no key.
type Client struct {
	baseURL    string
	httpClient httpx.Doer
	header     http.Header
	query      url.Values
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithHTTPClient(httpClient httpx.Doer) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	// The chart endpoint rejects requests without a browser-like agent.
	c.header.Set("User-Agent", "Mozilla/5.0")
	for _, option := range options {
		option(c)
	}
	return c
}

// DailyChart returns the raw v8 chart body with daily bars for from..to.
func (c *Client) DailyChart(ctx context.Context, symbol string, from, to time.Time) ([]byte, error) {
	query := maps.Clone(c.query)
	query.Set("period1", strconv.FormatInt(from.Unix(), 10))
	query.Set("period2", strconv.FormatInt(to.Add(24*time.Hour).Unix(), 10))
	query.Set("interval", "1d")

	body, err := c.chart(ctx, symbol, query)
	if err != nil {
		return nil, err
	}
	if len(gjson.GetBytes(body, "chart.result.0.timestamp").Array()) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, provider.ErrNoData)
	}
	return body, nil
}

// Quote returns the raw chart body for the last few sessions; its meta block
// carries the current price and day/52-week ranges.
func (c *Client) Quote(ctx context.Context, symbol string) ([]byte, error) {
	query := maps.Clone(c.query)
	query.Set("range", "5d")
	query.Set("interval", "1d")

	body, err := c.chart(ctx, symbol, query)
	if err != nil {
		return nil, err
	}
	if !gjson.GetBytes(body, "chart.result.0.meta.regularMarketPrice").Exists() {
		return nil, fmt.Errorf("yahoo %s quote: %w", symbol, provider.ErrNoData)
	}
	return body, nil
}

func (c *Client) chart(ctx context.Context, symbol string, query url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())
	body, err := httpx.Get(ctx, c.httpClient, u, c.header)
	if err != nil {
		return nil, fmt.Errorf("yahoo: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, provider.ErrMalformed)
	}
	if e := gjson.GetBytes(body, "chart.error"); e.Exists() && e.Type != gjson.Null {
		return nil, fmt.Errorf("yahoo %s: %s: %w", symbol, e.Get("description").String(), provider.ErrProvider)
	}
	return body, nil
}
