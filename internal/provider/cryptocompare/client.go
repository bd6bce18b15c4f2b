package cryptocompare

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

const defaultBaseURL = "https://min-api.cryptocompare.com/data"

// maxDays is the largest histoday page the API returns.
const maxDays = 2000

// Client is a client for the CryptoCompare min-api.
type Client struct {
	baseURL    string
	httpClient httpx.Doer
	header     http.Header
	query      url.Values
	hasKey     bool
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

// New creates a client; an empty key uses the free tier.
func New(key string, options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		c.query.Set("api_key", key)
		c.hasKey = true
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) HasKey() bool { return c.hasKey }

// HistoDay returns the raw v2/histoday body for sym covering from..to.
func (c *Client) HistoDay(ctx context.Context, sym string, from, to time.Time) ([]byte, error) {
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	if days > maxDays {
		days = maxDays
	}
	query := maps.Clone(c.query)
	query.Set("fsym", sym)
	query.Set("tsym", "USD")
	query.Set("limit", strconv.Itoa(days))
	query.Set("toTs", strconv.FormatInt(to.Add(24*time.Hour-time.Second).Unix(), 10))

	body, err := c.get(ctx, "/v2/histoday", query)
	if err != nil {
		return nil, err
	}
	if len(gjson.GetBytes(body, "Data.Data").Array()) == 0 {
		return nil, fmt.Errorf("cryptocompare %s: %w", sym, provider.ErrNoData)
	}
	return body, nil
}

// News returns the raw v2/news body filtered to sym's category.
func (c *Client) News(ctx context.Context, sym string) ([]byte, error) {
	query := maps.Clone(c.query)
	query.Set("categories", sym)
	query.Set("lang", "EN")

	body, err := c.get(ctx, "/v2/news/", query)
	if err != nil {
		return nil, err
	}
	if len(gjson.GetBytes(body, "Data").Array()) == 0 {
		return nil, fmt.Errorf("cryptocompare news %s: %w", sym, provider.ErrNoData)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	body, err := httpx.Get(ctx, c.httpClient, u, c.header)
	if err != nil {
		return nil, fmt.Errorf("cryptocompare: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("cryptocompare %s: %w", path, provider.ErrMalformed)
	}
	// Errors come back as 200 with {"Response":"Error","Message":"..."}.
	if gjson.GetBytes(body, "Response").String() == "Error" {
		msg := gjson.GetBytes(body, "Message").String()
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("cryptocompare %s: %s: %w", path, msg, provider.ErrProvider)
	}
	return body, nil
}
