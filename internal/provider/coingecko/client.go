package coingecko

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

const (
	publicBaseURL = "https://api.coingecko.com/api/v3"
	proBaseURL    = "https://pro-api.coingecko.com/api/v3"
)

// Client is a client for the CoinGecko API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient httpx.Doer
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
	hasKey bool
}

// Option is a configuration option for the CoinGecko client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient httpx.Doer) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// New creates a CoinGecko client. The key is optional; with one the client
// talks to the pro endpoint.
func New(key string, options ...Option) *Client {
	c := &Client{
		baseURL:    publicBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		c.baseURL = proBaseURL
		c.header.Set("x-cg-pro-api-key", key)
		c.hasKey = true
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// HasKey reports whether the client carries an API key.
func (c *Client) HasKey() bool { return c.hasKey }

// MarketChartRange returns the raw market_chart/range body for id between
// from and to, both inclusive calendar days.
func (c *Client) MarketChartRange(ctx context.Context, id string, from, to time.Time) ([]byte, error) {
	query := maps.Clone(c.query)
	query.Set("vs_currency", "usd")
	query.Set("from", strconv.FormatInt(from.Unix(), 10))
	query.Set("to", strconv.FormatInt(to.Add(24*time.Hour-time.Second).Unix(), 10))

	body, err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart/range", query)
	if err != nil {
		return nil, err
	}
	if len(gjson.GetBytes(body, "prices").Array()) == 0 {
		return nil, fmt.Errorf("coingecko %s: %w", id, provider.ErrNoData)
	}
	return body, nil
}

// Coin returns the raw coins/{id} body with market, community and developer data.
func (c *Client) Coin(ctx context.Context, id string) ([]byte, error) {
	query := maps.Clone(c.query)
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("market_data", "true")
	query.Set("community_data", "true")
	query.Set("developer_data", "true")
	query.Set("sparkline", "false")
	return c.get(ctx, "/coins/"+url.PathEscape(id), query)
}

// StatusUpdates returns the raw coins/{id}/status_updates body.
func (c *Client) StatusUpdates(ctx context.Context, id string) ([]byte, error) {
	query := maps.Clone(c.query)
	query.Set("per_page", "10")
	body, err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/status_updates", query)
	if err != nil {
		return nil, err
	}
	if len(gjson.GetBytes(body, "status_updates").Array()) == 0 {
		return nil, fmt.Errorf("coingecko %s status updates: %w", id, provider.ErrNoData)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	body, err := httpx.Get(ctx, c.httpClient, u, c.header)
	if err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("coingecko %s: %w", path, provider.ErrMalformed)
	}
	// {"error":"coin not found"} or {"status":{"error_code":429,"error_message":"..."}}
	if e := gjson.GetBytes(body, "error"); e.Exists() {
		return nil, fmt.Errorf("coingecko %s: %s: %w", path, e.String(), provider.ErrProvider)
	}
	if code := gjson.GetBytes(body, "status.error_code"); code.Exists() && code.Int() != 0 {
		return nil, fmt.Errorf("coingecko %s: %s: %w", path, gjson.GetBytes(body, "status.error_message").String(), provider.ErrProvider)
	}
	return body, nil
}
