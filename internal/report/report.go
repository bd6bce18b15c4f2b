package report

import (
	"fmt"
	"strings"
	"time"

	"cryptofeed/internal/analytics"
	"cryptofeed/internal/market"
)

// Series renders s as a commented CSV block over its requested window.
func Series(s *market.Series, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Crypto data for %s from %s to %s\n", s.Symbol(), s.Start().Format(market.DateLayout), s.End().Format(market.DateLayout))
	fmt.Fprintf(&b, "# Source: %s\n", degradedNote(s.Source(), s.Degraded()))
	fmt.Fprintf(&b, "# Total records: %d\n", s.Len())
	fmt.Fprintf(&b, "# Data retrieved on: %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("Date,Open,High,Low,Close,Volume\n")
	for _, bar := range s.Bars() {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%s\n", bar.Date.Format(market.DateLayout),
			plain(bar.Open), plain(bar.High), plain(bar.Low), plain(bar.Close), plain(bar.Volume))
	}
	return b.String()
}

// Info renders every field of in; unavailable ones print N/A.
func Info(in *market.Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Crypto Information for %s\n", in.Symbol)
	fmt.Fprintf(&b, "# Source: %s\n", in.Source)
	if !in.FetchedAt.IsZero() {
		fmt.Fprintf(&b, "# Retrieved: %s\n", in.FetchedAt.Format("2006-01-02 15:04:05 MST"))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Name: %s\n", in.Get(market.FieldName))
	fmt.Fprintf(&b, "Symbol: %s\n", in.Get(market.FieldTicker))
	fmt.Fprintf(&b, "Rank: %s\n", in.Get(market.FieldRank))
	fmt.Fprintf(&b, "Currency: %s\n\n", in.Get(market.FieldCurrency))

	b.WriteString("## Market Data\n")
	fmt.Fprintf(&b, "Current Price: %s\n", value(in.Get(market.FieldPrice), Price))
	fmt.Fprintf(&b, "Market Cap: %s\n", value(in.Get(market.FieldMarketCap), Price))
	fmt.Fprintf(&b, "24h Volume: %s\n", value(in.Get(market.FieldVolume24h), Price))
	fmt.Fprintf(&b, "24h Price Change: %s\n", value(in.Get(market.FieldChange24hPct), Pct))
	fmt.Fprintf(&b, "24h High: %s\n", value(in.Get(market.FieldHigh24h), Price))
	fmt.Fprintf(&b, "24h Low: %s\n", value(in.Get(market.FieldLow24h), Price))
	fmt.Fprintf(&b, "Previous Close: %s\n", value(in.Get(market.FieldPrevClose), Price))
	fmt.Fprintf(&b, "52 Week High: %s\n", value(in.Get(market.FieldHigh52w), Price))
	fmt.Fprintf(&b, "52 Week Low: %s\n", value(in.Get(market.FieldLow52w), Price))
	fmt.Fprintf(&b, "ATH: %s\n", value(in.Get(market.FieldATH), Price))
	fmt.Fprintf(&b, "ATL: %s\n\n", value(in.Get(market.FieldATL), Price))

	b.WriteString("## Supply\n")
	fmt.Fprintf(&b, "Circulating Supply: %s\n", value(in.Get(market.FieldCirculatingSupply), Whole))
	fmt.Fprintf(&b, "Total Supply: %s\n", value(in.Get(market.FieldTotalSupply), Whole))
	fmt.Fprintf(&b, "Max Supply: %s\n\n", value(in.Get(market.FieldMaxSupply), Whole))

	b.WriteString("## Community\n")
	fmt.Fprintf(&b, "Twitter Followers: %s\n", value(in.Get(market.FieldTwitterFollowers), Whole))
	fmt.Fprintf(&b, "Reddit Subscribers: %s\n", value(in.Get(market.FieldRedditSubscribers), Whole))
	fmt.Fprintf(&b, "GitHub Stars: %s\n", value(in.Get(market.FieldGithubStars), Whole))
	fmt.Fprintf(&b, "GitHub Forks: %s\n", value(in.Get(market.FieldGithubForks), Whole))
	return b.String()
}

func News(symbol market.Symbol, source string, items []market.NewsItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Crypto News for %s\n", symbol)
	fmt.Fprintf(&b, "# Source: %s\n\n", source)
	for i, it := range items {
		fmt.Fprintf(&b, "## News %d\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", it.Title)
		if !it.Published.IsZero() {
			fmt.Fprintf(&b, "Date: %s\n", it.Published.Format("2006-01-02 15:04"))
		}
		if it.Author != "" {
			fmt.Fprintf(&b, "Source: %s\n", it.Author)
		}
		if it.URL != "" {
			fmt.Fprintf(&b, "URL: %s\n", it.URL)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Sentiment renders the community figures of in.
func Sentiment(in *market.Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Social Media Sentiment for %s\n", in.Symbol)
	fmt.Fprintf(&b, "# Source: %s\n\n", in.Source)
	fmt.Fprintf(&b, "Twitter Followers: %s\n", value(in.Get(market.FieldTwitterFollowers), Whole))
	fmt.Fprintf(&b, "Reddit Subscribers: %s\n", value(in.Get(market.FieldRedditSubscribers), Whole))
	fmt.Fprintf(&b, "Reddit Active Users (48h): %s\n", value(in.Get(market.FieldRedditActive48h), Whole))
	fmt.Fprintf(&b, "GitHub Stars: %s\n", value(in.Get(market.FieldGithubStars), Whole))
	return b.String()
}

// Sections are the optional blocks appended to a market analysis.
type Sections struct {
	Info      string
	News      string
	Sentiment string
}

func Analysis(a analytics.SingleAsset, periodDays int, extra Sections) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Comprehensive Crypto Analysis for %s\n", a.Symbol)
	fmt.Fprintf(&b, "# Source: %s, %d bars from %s to %s\n\n", degradedNote(a.Source, a.Degraded), a.Bars,
		a.Start.Format(market.DateLayout), a.End.Format(market.DateLayout))

	b.WriteString("## Price Analysis\n")
	fmt.Fprintf(&b, "- Current Price: %s\n", Price(a.LatestClose))
	fmt.Fprintf(&b, "- %d-Day Change: %s (%s)\n", periodDays, Price(a.Change), metric(a.ChangePct, Pct))
	fmt.Fprintf(&b, "- Volatility: %s\n", metric(a.Volatility, Pct))
	fmt.Fprintf(&b, "- Average Daily Volume: %s\n\n", Whole(a.AvgVolume))

	b.WriteString("## Technical Indicators\n")
	if a.RSI14.Valid {
		fmt.Fprintf(&b, "- RSI (14): %.2f (%s)\n", a.RSI14.Value, a.RSIZone)
	} else {
		b.WriteString("- RSI (14): N/A\n")
	}
	fmt.Fprintf(&b, "- 20-Day SMA: %s\n", metric(a.SMA20, Price))
	fmt.Fprintf(&b, "- 50-Day SMA: %s\n\n", metric(a.SMA50, Price))

	b.WriteString("## Market Position\n")
	fmt.Fprintf(&b, "- Price vs 20-SMA: %s\n", analytics.Position(a.LatestClose, a.SMA20))
	fmt.Fprintf(&b, "- Price vs 50-SMA: %s\n", analytics.Position(a.LatestClose, a.SMA50))

	for _, s := range []struct{ title, body string }{
		{"Additional Data", extra.Info},
		{"Recent News", extra.News},
		{"Social Sentiment", extra.Sentiment},
	} {
		if s.body == "" {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n%s\n", s.title, strings.TrimRight(s.body, "\n"))
	}
	return b.String()
}

// Skipped is a symbol left out of a multi-symbol report and why.
type Skipped struct {
	Symbol market.Symbol
	Reason string
}

func Portfolio(p analytics.Portfolio, periodDays int, skipped []Skipped) string {
	var b strings.Builder
	b.WriteString("# Crypto Portfolio Analysis\n\n")
	fmt.Fprintf(&b, "Period: %d days\n\n", periodDays)
	for _, h := range p.Holdings {
		fmt.Fprintf(&b, "## %s\n", h.Symbol)
		fmt.Fprintf(&b, "- Current Price: %s\n", Price(h.Price))
		fmt.Fprintf(&b, "- %d-Day Return: %s\n", periodDays, Pct(h.ReturnPct))
		fmt.Fprintf(&b, "- Volatility: %s\n", metric(h.Volatility, Pct))
		fmt.Fprintf(&b, "- Source: %s\n\n", degradedNote(h.Source, h.Degraded))
	}
	b.WriteString("## Portfolio Summary\n")
	fmt.Fprintf(&b, "- Average Return: %s\n", Pct(p.AvgReturn))
	fmt.Fprintf(&b, "- Average Volatility: %s\n", Pct(p.AvgVolatility))
	fmt.Fprintf(&b, "- Sharpe Ratio (approx, no risk-free rate): %s\n", metric(p.Sharpe, func(f float64) string { return fmt.Sprintf("%.4f", f) }))
	writeSkipped(&b, skipped)
	return b.String()
}

func Correlation(c analytics.Correlation, start, end time.Time, periodDays int, skipped []Skipped) string {
	var b strings.Builder
	b.WriteString("# Crypto Correlation Analysis\n\n")
	fmt.Fprintf(&b, "## Period: %s to %s (%d days, %d common dates)\n\n", start.Format(market.DateLayout), end.Format(market.DateLayout), periodDays, c.Dates)

	b.WriteString("## Correlation Matrix\n\n")
	for _, x := range c.Symbols {
		fmt.Fprintf(&b, "**%s**:\n", x)
		for _, y := range c.Symbols {
			if x == y {
				continue
			}
			fmt.Fprintf(&b, "  - %s: %s\n", y, metric(c.At(x, y), func(f float64) string { return fmt.Sprintf("%.3f", f) }))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Correlation Insights\n\n")
	if c.HasPairs {
		fmt.Fprintf(&b, "- **Highest Correlation**: %s & %s (%.3f, %s)\n", c.Highest.A, c.Highest.B, c.Highest.Value, analytics.CorrelationBand(c.Highest.Value))
		fmt.Fprintf(&b, "- **Lowest Correlation**: %s & %s (%.3f, %s)\n\n", c.Lowest.A, c.Lowest.B, c.Lowest.Value, analytics.CorrelationBand(c.Lowest.Value))
	} else {
		b.WriteString("- No pair had enough overlapping, non-constant data\n\n")
	}

	b.WriteString("## Interpretation\n\n")
	b.WriteString("- **Correlation > 0.7**: Strong positive correlation (move together)\n")
	b.WriteString("- **Correlation 0.3-0.7**: Moderate positive correlation\n")
	b.WriteString("- **Correlation -0.3 to 0.3**: Weak or no correlation\n")
	b.WriteString("- **Correlation < -0.3**: Negative correlation (move opposite)\n")
	writeSkipped(&b, skipped)
	return b.String()
}

// OverviewEntry is one symbol of the market overview; Err is set when its info could not be fetched.
type OverviewEntry struct {
	Symbol market.Symbol
	Info   *market.Info
	Err    error
}

func Overview(entries []OverviewEntry, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Crypto Market Overview\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))
	for _, e := range entries {
		fmt.Fprintf(&b, "## %s\n", e.Symbol)
		if e.Err != nil || e.Info == nil {
			b.WriteString("- Error retrieving data\n\n")
			continue
		}
		fmt.Fprintf(&b, "- Price: %s\n", value(e.Info.Get(market.FieldPrice), Price))
		fmt.Fprintf(&b, "- 24h Change: %s\n", value(e.Info.Get(market.FieldChange24hPct), Pct))
		fmt.Fprintf(&b, "- Market Cap: %s\n", value(e.Info.Get(market.FieldMarketCap), Price))
		fmt.Fprintf(&b, "- Source: %s\n\n", e.Info.Source)
	}
	return b.String()
}

// IndicatorBlock renders one indicator over a look-back window.
func IndicatorBlock(ind analytics.Indicator, points []analytics.Point, currDate time.Time, lookBackDays int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s values from %s (looking back %d days):\n\n", ind.Name, currDate.Format(market.DateLayout), lookBackDays)
	if !ind.Available {
		fmt.Fprintf(&b, "Indicator '%s' needs on-chain data that no configured provider supplies.\n\n", ind.Name)
	}
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		fmt.Fprintf(&b, "%s: %s\n", p.Date.Format(market.DateLayout), metric(p.Value, func(f float64) string { return fmt.Sprintf("%.4f", f) }))
	}
	if len(points) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(ind.Description)
	b.WriteString("\n")
	return b.String()
}

func writeSkipped(b *strings.Builder, skipped []Skipped) {
	if len(skipped) == 0 {
		return
	}
	b.WriteString("\n## Skipped Symbols\n")
	for _, s := range skipped {
		fmt.Fprintf(b, "- %s: %s\n", s.Symbol, s.Reason)
	}
}
