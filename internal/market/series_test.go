package market_test

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "cryptofeed/internal/market"
)

func day(s string) time.Time {
    t, _ := time.Parse(market.DateLayout, s)
    return t
}

func TestNewSeries_FiltersSortsAndDedupes(t *testing.T) {
    t.Parallel()

    // Arrange: unordered bars with one duplicate date and one outside the window.
    bars := []market.Bar{
        {Date: day("2024-01-03").Add(5 * time.Hour), Close: 3},
        {Date: day("2024-01-01"), Close: 1},
        {Date: day("2024-01-03").Add(20 * time.Hour), Close: 33},
        {Date: day("2023-12-31"), Close: 0},
        {Date: day("2024-01-02"), Close: 2},
    }

    // Act
    s, err := market.NewSeries("BTC-USD", "test", false, day("2024-01-01"), day("2024-01-10"), bars)

    // Assert
    require.NoError(t, err)
    require.Equal(t, []float64{1, 2, 33}, s.Closes())
    for i, b := range s.Bars() {
        require.False(t, b.Date.Before(day("2024-01-01")))
        require.False(t, b.Date.After(day("2024-01-10")))
        require.Equal(t, b.Date, market.Day(b.Date))
        if i > 0 { require.True(t, s.Bars()[i-1].Date.Before(b.Date)) }
    }
}

func TestNewSeries_EmptyAfterFilter(t *testing.T) {
    t.Parallel()

    _, err := market.NewSeries("BTC-USD", "test", false, day("2024-01-01"), day("2024-01-10"),
        []market.Bar{{Date: day("2024-02-01"), Close: 1}})
    require.ErrorIs(t, err, market.ErrEmptySeries)
}

func TestSeries_BarsIsACopy(t *testing.T) {
    t.Parallel()

    s, err := market.NewSeries("ETH-USD", "test", true, day("2024-01-01"), day("2024-01-01"),
        []market.Bar{{Date: day("2024-01-01"), Close: 5}})
    require.NoError(t, err)

    bars := s.Bars()
    bars[0].Close = 99
    require.Equal(t, 5.0, s.Last().Close)
    require.True(t, s.Degraded())
}

func TestParseSymbol(t *testing.T) {
    t.Parallel()

    s, err := market.ParseSymbol("  btc-usd ")
    require.NoError(t, err)
    require.Equal(t, market.Symbol("BTC-USD"), s)

    _, err = market.ParseSymbol("   ")
    require.ErrorIs(t, err, market.ErrEmptySymbol)

    require.Equal(t, []market.Symbol{"BTC-USD", "ETH-USD"}, market.ParseSymbols("btc-usd, ,eth-usd"))
}

func TestInfo_MissingFieldsAreExplicitNA(t *testing.T) {
    t.Parallel()

    in := market.NewInfo("BTC-USD", "test")
    in.Set(market.FieldPrice, market.Number(42000.5))

    require.Equal(t, "42000.5", in.Get(market.FieldPrice).String())
    require.False(t, in.Get(market.FieldMaxSupply).Valid())
    require.Equal(t, "N/A", in.Get(market.FieldMaxSupply).String())
}
