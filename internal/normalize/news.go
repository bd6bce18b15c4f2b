package normalize

import (
    "encoding/json"
    "errors"
    "strings"
    "time"

    "cryptofeed/internal/market"
)

var (
    errInvalidJSON = errors.New("invalid json")
    errNoCoin      = errors.New("no coin entry")
)

func coinGeckoStatus(body []byte) ([]market.NewsItem, error) {
    var res struct {
        StatusUpdates []struct {
            Description string `json:"description"`
            Category    string `json:"category"`
            CreatedAt   string `json:"created_at"`
            User        string `json:"user"`
        } `json:"status_updates"`
    }
    if err := json.Unmarshal(body, &res); err != nil { return nil, malformed("coingecko status updates", err) }

    items := make([]market.NewsItem, 0, len(res.StatusUpdates))
    for _, u := range res.StatusUpdates {
        title, rest, _ := strings.Cut(strings.TrimSpace(u.Description), "\n")
        it := market.NewsItem{Title: title, Body: strings.TrimSpace(rest), Author: u.User}
        if t, err := time.Parse(time.RFC3339, u.CreatedAt); err == nil { it.Published = t.UTC() }
        items = append(items, it)
    }
    return items, nil
}

func cryptoCompareNews(body []byte) ([]market.NewsItem, error) {
    var res struct {
        Data []struct {
            Title       string `json:"title"`
            Body        string `json:"body"`
            URL         string `json:"url"`
            Source      string `json:"source"`
            PublishedOn int64  `json:"published_on"`
        } `json:"Data"`
    }
    if err := json.Unmarshal(body, &res); err != nil { return nil, malformed("cryptocompare news", err) }

    items := make([]market.NewsItem, 0, len(res.Data))
    for _, n := range res.Data {
        it := market.NewsItem{Title: strings.TrimSpace(n.Title), Body: n.Body, URL: n.URL, Author: n.Source}
        if n.PublishedOn > 0 { it.Published = time.Unix(n.PublishedOn, 0).UTC() }
        items = append(items, it)
    }
    return items, nil
}
