package service

import (
    "context"
    "errors"
    "fmt"
    "strings"

    "cryptofeed/internal/analytics"
    "cryptofeed/internal/market"
    "cryptofeed/internal/report"
)

// AnalyzeMarket combines the single-asset analysis with info, news and
// sentiment sections. Only the series is required; the other sections carry
// their own failure text.
func (s *Service) AnalyzeMarket(ctx context.Context, symbol string, periodDays int) string {
    return s.render("analyze", func() (string, error) {
        sym, err := requireSymbol(symbol)
        if err != nil { return "", err }
        if err := requirePeriod(periodDays); err != nil { return "", err }

        start, end := s.window(periodDays)
        series, err := s.fetch.FetchSeries(ctx, sym, start, end)
        if err != nil { return "", fmt.Errorf("retrieving data for %s: %w", sym, err) }
        a, err := analytics.AnalyzeSingle(series)
        if err != nil { return "", fmt.Errorf("analyzing %s: %w", sym, err) }

        var extra report.Sections
        if in, err := s.fetch.FetchInfo(ctx, sym); err != nil {
            extra.Info = section("info", err)
        } else {
            extra.Info = report.Info(in)
        }
        if items, err := s.news(ctx, sym); err != nil {
            extra.News = section("news", err)
        } else {
            extra.News = report.News(sym, items[0].Provider, items)
        }
        if in, err := s.fetch.FetchCommunity(ctx, sym); err != nil {
            extra.Sentiment = section("social data", err)
        } else {
            extra.Sentiment = report.Sentiment(in)
        }
        return report.Analysis(a, periodDays, extra), nil
    })
}

func section(what string, err error) string {
    return fmt.Sprintf("Error retrieving %s: %v\n", what, err)
}

// fetchAll fetches each symbol's window in input order. Symbols that fail are
// returned as skipped; a canceled context stops the loop.
func (s *Service) fetchAll(ctx context.Context, symbols []market.Symbol, periodDays int) ([]*market.Series, []report.Skipped, error) {
    start, end := s.window(periodDays)
    var (
        out     []*market.Series
        skipped []report.Skipped
    )
    for _, sym := range symbols {
        if err := ctx.Err(); err != nil { return nil, nil, err }
        series, err := s.fetch.FetchSeries(ctx, sym, start, end)
        if err != nil {
            if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) { return nil, nil, err }
            s.log.WithError(err).WithField("symbol", sym).Warn("skipping symbol")
            skipped = append(skipped, report.Skipped{Symbol: sym, Reason: err.Error()})
            continue
        }
        out = append(out, series)
    }
    return out, skipped, nil
}

func (s *Service) Portfolio(ctx context.Context, symbolsCSV string, periodDays int) string {
    return s.render("portfolio", func() (string, error) {
        syms, err := requireSymbols(symbolsCSV)
        if err != nil { return "", err }
        if err := requirePeriod(periodDays); err != nil { return "", err }

        series, skipped, err := s.fetchAll(ctx, syms, periodDays)
        if err != nil { return "", err }
        p, err := analytics.AnalyzePortfolio(series)
        if err != nil { return "", fmt.Errorf("no usable data for %s: %w", joinSymbols(syms), err) }
        return report.Portfolio(p, periodDays, skipped), nil
    })
}

func (s *Service) Correlation(ctx context.Context, symbolsCSV string, periodDays int) string {
    return s.render("correlation", func() (string, error) {
        syms, err := requireSymbols(symbolsCSV)
        if err != nil { return "", err }
        if len(syms) < 2 { return "", invalid("At least 2 symbols are required for correlation analysis") }
        if err := requirePeriod(periodDays); err != nil { return "", err }

        series, skipped, err := s.fetchAll(ctx, syms, periodDays)
        if err != nil { return "", err }
        c, err := analytics.Correlate(series)
        if err != nil { return "", fmt.Errorf("only %d of %d symbols returned data: %w", len(series), len(syms), err) }
        start, end := s.window(periodDays)
        return report.Correlation(c, start, end, periodDays, skipped), nil
    })
}

// DefaultIndicators is used when no indicator list is given.
const DefaultIndicators = "rsi,close_20_sma,close_50_sma"

// TechnicalIndicators reports each indicator for every day in
// [currDate-lookBackDays, currDate]. An empty currDate means today.
func (s *Service) TechnicalIndicators(ctx context.Context, symbol, indicatorsCSV, currDate string, lookBackDays int) string {
    return s.render("indicators", func() (string, error) {
        sym, err := requireSymbol(symbol)
        if err != nil { return "", err }
        if lookBackDays <= 0 { return "", invalid("Look back days must be positive") }
        if strings.TrimSpace(indicatorsCSV) == "" { indicatorsCSV = DefaultIndicators }

        var inds []analytics.Indicator
        warmup := 0
        for _, name := range strings.Split(indicatorsCSV, ",") {
            if strings.TrimSpace(name) == "" { continue }
            ind, err := analytics.LookupIndicator(name)
            if err != nil { return "", invalid("%s", err) }
            inds = append(inds, ind)
            if ind.Available && ind.Lookback > warmup { warmup = ind.Lookback }
        }
        curr := s.today()
        if strings.TrimSpace(currDate) != "" {
            if curr, err = parseDate(currDate); err != nil { return "", err }
        }
        from := curr.AddDate(0, 0, -lookBackDays)

        var series *market.Series
        if warmup > 0 {
            series, err = s.fetch.FetchSeries(ctx, sym, from.AddDate(0, 0, -warmup), curr)
            if err != nil { return "", fmt.Errorf("retrieving data for %s: %w", sym, err) }
        }

        var b strings.Builder
        fmt.Fprintf(&b, "# Technical Indicators for %s\n\n", sym)
        for _, ind := range inds {
            var points []analytics.Point
            if ind.Available {
                if points, err = ind.Series(series, from); err != nil { return "", err }
            }
            b.WriteString(report.IndicatorBlock(ind, points, curr, lookBackDays))
            b.WriteString("\n")
        }
        return b.String(), nil
    })
}

func joinSymbols(syms []market.Symbol) string {
    parts := make([]string, len(syms))
    for i, s := range syms { parts[i] = string(s) }
    return strings.Join(parts, ", ")
}
