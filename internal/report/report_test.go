package report_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cryptofeed/internal/analytics"
	"cryptofeed/internal/market"
	"cryptofeed/internal/report"
)

func day(s string) time.Time {
	t, _ := time.Parse(market.DateLayout, s)
	return t
}

func TestPrice(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		43250.5:    "$43,250.50",
		0:          "$0.00",
		1:          "$1.00",
		0.0012345:  "$0.0012345",
		-2500:      "-$2,500.00",
		0.00001234: "$0.00001234",
		1e19:       "$10,000,000,000,000,000,000.00",
	}
	for in, want := range cases {
		require.Equal(t, want, report.Price(in), "price %v", in)
	}
}

func TestWhole(t *testing.T) {
	t.Parallel()

	require.Equal(t, "19,000,000", report.Whole(18999999.6))
	require.Equal(t, "-1,500", report.Whole(-1500))
	require.Equal(t, "100,000,000,000,000,000,000", report.Whole(1e20))
}

func TestSeries_CSV(t *testing.T) {
	t.Parallel()

	// Arrange
	start, end := day("2024-01-01"), day("2024-01-02")
	s, err := market.NewSeries("BTC-USD", "coingecko", true, start, end, []market.Bar{
		{Date: start, Open: 1, High: 1, Low: 1, Close: 1, Volume: 10},
		{Date: end, Open: 2.5, High: 2.5, Low: 2.5, Close: 2.5, Volume: 20},
	})
	require.NoError(t, err)

	// Act
	out := report.Series(s, time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC))

	// Assert
	require.Contains(t, out, "# Crypto data for BTC-USD from 2024-01-01 to 2024-01-02\n")
	require.Contains(t, out, "degraded")
	require.Contains(t, out, "# Total records: 2\n")
	require.Contains(t, out, "Date,Open,High,Low,Close,Volume\n2024-01-01,1,1,1,1,10\n2024-01-02,2.5,2.5,2.5,2.5,20\n")
}

func TestInfo_MissingFieldsAreNA(t *testing.T) {
	t.Parallel()

	in := market.NewInfo("ETH-USD", "coinmarketcap")
	in.Set(market.FieldName, market.Text("Ethereum"))
	in.Set(market.FieldPrice, market.Number(2300))
	in.FetchedAt = time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

	out := report.Info(in)

	require.Contains(t, out, "# Retrieved: 2024-02-01 09:30:00 UTC\n")
	require.Contains(t, out, "Name: Ethereum\n")
	require.Contains(t, out, "Current Price: $2,300.00\n")
	require.Contains(t, out, "Max Supply: N/A\n")
	require.Contains(t, out, "GitHub Stars: N/A\n")
}

func TestAnalysis_Sections(t *testing.T) {
	t.Parallel()

	// Arrange
	a := analytics.SingleAsset{
		Symbol: "BTC-USD", Source: "cryptocompare", Start: day("2024-01-01"), End: day("2024-01-30"), Bars: 30,
		FirstClose: 100, LatestClose: 110, Change: 10,
		ChangePct:  analytics.Metric{Value: 10, Valid: true},
		Volatility: analytics.Metric{Value: 2.5, Valid: true},
		SMA20:      analytics.Metric{Value: 105, Valid: true},
		RSI14:      analytics.Metric{Value: 75, Valid: true},
		RSIZone:    "Overbought",
	}

	// Act
	out := report.Analysis(a, 30, report.Sections{News: "## News 1\nTitle: x\n"})

	// Assert
	require.Contains(t, out, "## Price Analysis\n")
	require.Contains(t, out, "- 30-Day Change: $10.00 (10.00%)\n")
	require.Contains(t, out, "- RSI (14): 75.00 (Overbought)\n")
	require.Contains(t, out, "- 50-Day SMA: N/A\n")
	require.Contains(t, out, "- Price vs 20-SMA: Above\n")
	require.Contains(t, out, "- Price vs 50-SMA: N/A\n")
	require.Contains(t, out, "## Recent News\n")
	require.NotContains(t, out, "## Additional Data")
}

func TestPortfolio_SharpeNA(t *testing.T) {
	t.Parallel()

	p := analytics.Portfolio{
		Holdings: []analytics.Holding{{Symbol: "BTC-USD", Source: "yahoo", Price: 100, ReturnPct: 0}},
	}

	out := report.Portfolio(p, 7, []report.Skipped{{Symbol: "XYZ-USD", Reason: "no data"}})

	require.Contains(t, out, "Period: 7 days\n")
	require.Contains(t, out, "- 7-Day Return: 0.00%\n")
	require.Contains(t, out, "- Volatility: N/A\n")
	require.Contains(t, out, "N/A\n")
	require.Contains(t, out, "- XYZ-USD: no data\n")
}

func TestOverview_ErrorEntry(t *testing.T) {
	t.Parallel()

	in := market.NewInfo("BTC-USD", "coingecko")
	in.Set(market.FieldPrice, market.Number(50000))
	in.Set(market.FieldChange24hPct, market.Number(-1.5))

	out := report.Overview([]report.OverviewEntry{
		{Symbol: "BTC-USD", Info: in},
		{Symbol: "SOL-USD", Err: errors.New("boom")},
	}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	require.Contains(t, out, "## BTC-USD\n- Price: $50,000.00\n- 24h Change: -1.50%\n")
	require.Contains(t, out, "## SOL-USD\n- Error retrieving data\n")
}

func TestErrorf(t *testing.T) {
	t.Parallel()
	require.Equal(t, "Error: Symbol is required", report.Errorf("Symbol is required"))
}
