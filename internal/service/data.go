package service

import (
    "context"
    "fmt"
    "strings"
    "time"

    "cryptofeed/internal/market"
    "cryptofeed/internal/provider"
    "cryptofeed/internal/report"
)

// CryptoData returns the daily series between two YYYY-MM-DD dates as CSV.
// An empty end means today.
func (s *Service) CryptoData(ctx context.Context, symbol, start, end string) string {
    return s.render("data", func() (string, error) {
        sym, err := requireSymbol(symbol)
        if err != nil { return "", err }
        if strings.TrimSpace(start) == "" { return "", invalid("Start date is required") }
        from, err := parseDate(start)
        if err != nil { return "", err }
        to := s.today()
        if strings.TrimSpace(end) != "" {
            if to, err = parseDate(end); err != nil { return "", err }
        }
        if to.Before(from) { return "", invalid("End date %s is before start date %s", end, start) }

        series, err := s.fetch.FetchSeries(ctx, sym, from, to)
        if err != nil { return "", fmt.Errorf("retrieving data for %s: %w", sym, err) }
        return report.Series(series, s.now()), nil
    })
}

func (s *Service) CryptoInfo(ctx context.Context, symbol string) string {
    return s.render("info", func() (string, error) {
        sym, err := requireSymbol(symbol)
        if err != nil { return "", err }
        in, err := s.fetch.FetchInfo(ctx, sym)
        if err != nil { return "", fmt.Errorf("retrieving info for %s: %w", sym, err) }
        return report.Info(in), nil
    })
}

func (s *Service) CryptoNews(ctx context.Context, symbol string) string {
    return s.render("news", func() (string, error) {
        sym, err := requireSymbol(symbol)
        if err != nil { return "", err }
        items, err := s.news(ctx, sym)
        if err != nil { return "", fmt.Errorf("retrieving news for %s: %w", sym, err) }
        return report.News(sym, items[0].Provider, items), nil
    })
}

// news fetches headlines and guarantees at least one item on success.
func (s *Service) news(ctx context.Context, sym market.Symbol) ([]market.NewsItem, error) {
    items, err := s.fetch.FetchNews(ctx, sym)
    if err != nil { return nil, err }
    if len(items) == 0 { return nil, provider.ErrNoData }
    return items, nil
}

func (s *Service) SocialSentiment(ctx context.Context, symbol string) string {
    return s.render("sentiment", func() (string, error) {
        sym, err := requireSymbol(symbol)
        if err != nil { return "", err }
        in, err := s.fetch.FetchCommunity(ctx, sym)
        if err != nil { return "", fmt.Errorf("retrieving social data for %s: %w", sym, err) }
        return report.Sentiment(in), nil
    })
}

// MarketOverview reports price and 24h change for the overview list. A symbol
// that cannot be fetched is marked in place; the report never fails as a whole.
func (s *Service) MarketOverview(ctx context.Context) string {
    return s.render("overview", func() (string, error) {
        entries := make([]report.OverviewEntry, 0, len(s.overview))
        for _, sym := range s.overview {
            if err := ctx.Err(); err != nil { return "", err }
            in, err := s.fetch.FetchInfo(ctx, sym)
            if err != nil { s.log.WithError(err).WithField("symbol", sym).Warn("overview entry failed") }
            entries = append(entries, report.OverviewEntry{Symbol: sym, Info: in, Err: err})
        }
        return report.Overview(entries, s.now()), nil
    })
}

func parseDate(raw string) (time.Time, error) {
    t, err := market.ParseDate(raw)
    if err != nil { return time.Time{}, invalid("Invalid date %q, expected YYYY-MM-DD", strings.TrimSpace(raw)) }
    return t, nil
}
