package coinmarketcap

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"cryptofeed/internal/httpx"
	"cryptofeed/internal/provider"
)

const defaultBaseURL = "https://pro-api.coinmarketcap.com/v1"

// Client is a client for the CoinMarketCap pro API. Every call needs a key.
type Client struct {
	baseURL    string
	httpClient httpx.Doer
	header     http.Header
	query      url.Values
	key        string
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

func New(key string, options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
		key:        key,
	}
	if key != "" {
		c.header.Set("X-CMC_PRO_API_KEY", key)
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) HasKey() bool { return c.key != "" }

// QuotesLatest returns the raw quotes/latest body for ticker in USD.
func (c *Client) QuotesLatest(ctx context.Context, ticker string) ([]byte, error) {
	if c.key == "" {
		return nil, fmt.Errorf("coinmarketcap: missing api key: %w", provider.ErrProvider)
	}
	query := maps.Clone(c.query)
	query.Set("symbol", ticker)
	query.Set("convert", "USD")

	u := fmt.Sprintf("%s/cryptocurrency/quotes/latest?%s", c.baseURL, query.Encode())
	body, err := httpx.Get(ctx, c.httpClient, u, c.header)
	if err != nil {
		return nil, fmt.Errorf("coinmarketcap: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("coinmarketcap quotes: %w", provider.ErrMalformed)
	}
	if code := gjson.GetBytes(body, "status.error_code"); code.Int() != 0 {
		return nil, fmt.Errorf("coinmarketcap quotes: %s: %w", gjson.GetBytes(body, "status.error_message").String(), provider.ErrProvider)
	}
	if !gjson.GetBytes(body, "data."+gjson.Escape(ticker)).Exists() {
		return nil, fmt.Errorf("coinmarketcap %s: %w", ticker, provider.ErrNoData)
	}
	return body, nil
}
