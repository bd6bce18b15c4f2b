package httpx

import (
    "context"
    "fmt"
    "io"
    "net"
    "net/http"
    "time"
)

// Doer is the part of *http.Client the provider clients depend on.
//
//go:generate mockgen -package=httpx_test -destination=mock_doer_test.go -source=httpx.go Doer
type Doer interface {
    Do(req *http.Request) (*http.Response, error)
}

// Client is a small wrapper around http.Client with sane defaults.
type Client struct {
    HTTP      *http.Client
    UserAgent string
    Headers   map[string]string
}

func New(timeout time.Duration) *Client {
    transport := &http.Transport{
        Proxy: http.ProxyFromEnvironment,
        DialContext: (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
        MaxIdleConns:          50,
        MaxIdleConnsPerHost:   10,
        ForceAttemptHTTP2:     true,
        IdleConnTimeout:       90 * time.Second,
        TLSHandshakeTimeout:   5 * time.Second,
        ExpectContinueTimeout: 1 * time.Second,
        ResponseHeaderTimeout: timeout,
    }
    return &Client{HTTP: &http.Client{Timeout: timeout, Transport: transport}, UserAgent: "cryptofeed/1.0"}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
    if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
        req.Header.Set("User-Agent", c.UserAgent)
    }
    for k, v := range c.Headers {
        if req.Header.Get(k) == "" {
            req.Header.Set(k, v)
        }
    }
    return c.HTTP.Do(req)
}

// StatusError is returned by Get for non-2xx responses.
type StatusError struct {
    Code int
    Body string
}

func (e *StatusError) Error() string {
    if e.Code == http.StatusTooManyRequests { return "rate limited (429)" }
    if e.Body == "" { return fmt.Sprintf("unexpected status code: %d", e.Code) }
    return fmt.Sprintf("unexpected status code: %d: %s", e.Code, e.Body)
}

// maxBody caps how much of a response is read into memory.
const maxBody = 16 << 20

// Get performs one GET and returns the body of a 2xx response.
func Get(ctx context.Context, d Doer, url string, header http.Header) ([]byte, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
    if err != nil { return nil, fmt.Errorf("creating request: %w", err) }
    for k, vs := range header {
        for _, v := range vs { req.Header.Add(k, v) }
    }
    req.Header.Set("Accept", "application/json")

    res, err := d.Do(req)
    if err != nil { return nil, fmt.Errorf("performing request: %w", err) }
    defer res.Body.Close()

    b, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
    if err != nil { return nil, fmt.Errorf("reading body: %w", err) }
    if res.StatusCode < 200 || res.StatusCode >= 300 {
        snippet := string(b)
        if len(snippet) > 200 { snippet = snippet[:200] }
        return nil, &StatusError{Code: res.StatusCode, Body: snippet}
    }
    return b, nil
}
