// Package normalize converts raw provider payloads into the canonical
// market types. There is one routine per payload shape.
package normalize

import (
    "errors"
    "fmt"
    "time"

    "github.com/shopspring/decimal"

    "cryptofeed/internal/market"
    "cryptofeed/internal/provider"
)

// Precision is the number of decimal places kept for prices and volumes.
const Precision = 6

// Series converts a price-history payload into a canonical series for [start, end].
// An empty result wraps provider.ErrNoData; an unreadable payload wraps provider.ErrMalformed.
func Series(p provider.Payload, symbol market.Symbol, start, end time.Time) (*market.Series, error) {
    var (
        bars     []market.Bar
        degraded bool
        err      error
    )
    switch p.Shape {
    case provider.ShapeCoinGeckoChart:
        bars, err = coinGeckoChart(p.Body)
        degraded = true
    case provider.ShapeCryptoCompareDaily:
        bars, err = cryptoCompareDaily(p.Body)
    case provider.ShapeYahooChart:
        bars, err = yahooChart(p.Body)
    default:
        return nil, fmt.Errorf("no series routine for shape %q: %w", p.Shape, provider.ErrMalformed)
    }
    if err != nil { return nil, err }

    s, err := market.NewSeries(symbol, string(p.Provider), degraded, start, end, bars)
    if errors.Is(err, market.ErrEmptySeries) {
        return nil, fmt.Errorf("%s %s: %w", p.Provider, symbol, provider.ErrNoData)
    }
    return s, err
}

// Info converts an info or community payload into an Info record.
func Info(p provider.Payload, symbol market.Symbol) (*market.Info, error) {
    var (
        in  *market.Info
        err error
    )
    switch p.Shape {
    case provider.ShapeCoinGeckoCoin:
        in, err = coinGeckoCoin(p.Body, symbol)
    case provider.ShapeCoinMarketCapQuotes:
        in, err = coinMarketCapQuotes(p.Body, symbol)
    case provider.ShapeYahooChart:
        in, err = yahooQuote(p.Body, symbol)
    default:
        return nil, fmt.Errorf("no info routine for shape %q: %w", p.Shape, provider.ErrMalformed)
    }
    if err != nil { return nil, err }
    in.Source = string(p.Provider)
    in.FetchedAt = time.Now().UTC()
    return in, nil
}

// MaxNews caps how many items News returns.
const MaxNews = 10

// News converts a news payload into items, newest first as the provider sent them.
func News(p provider.Payload) ([]market.NewsItem, error) {
    var (
        items []market.NewsItem
        err   error
    )
    switch p.Shape {
    case provider.ShapeCoinGeckoStatus:
        items, err = coinGeckoStatus(p.Body)
    case provider.ShapeCryptoCompareNews:
        items, err = cryptoCompareNews(p.Body)
    default:
        return nil, fmt.Errorf("no news routine for shape %q: %w", p.Shape, provider.ErrMalformed)
    }
    if err != nil { return nil, err }
    if len(items) == 0 { return nil, fmt.Errorf("%s news: %w", p.Provider, provider.ErrNoData) }
    if len(items) > MaxNews { items = items[:MaxNews] }
    for i := range items { items[i].Provider = string(p.Provider) }
    return items, nil
}

func round(f float64) float64 {
    v, _ := decimal.NewFromFloat(f).Round(Precision).Float64()
    return v
}

func malformed(src string, err error) error {
    return fmt.Errorf("%s: %w: %v", src, provider.ErrMalformed, err)
}
