package provider_test

import (
    "context"
    "errors"
    "fmt"
    "testing"

    "github.com/stretchr/testify/require"

    "cryptofeed/internal/provider"
)

func TestParseID(t *testing.T) {
    t.Parallel()

    for in, want := range map[string]provider.ID{
        "coingecko":      provider.CoinGecko,
        " CoinGecko ":    provider.CoinGecko,
        "crypto_compare": provider.CryptoCompare,
        "CMC":            provider.CoinMarketCap,
        "yfinance":       provider.Yahoo,
        "yahoo-finance":  provider.Yahoo,
    } {
        got, err := provider.ParseID(in)
        require.NoError(t, err, in)
        require.Equal(t, want, got, in)
    }

    _, err := provider.ParseID("binance")
    require.Error(t, err)
}

func TestParseRequestType(t *testing.T) {
    t.Parallel()

    rt, err := provider.ParseRequestType("Price_History")
    require.NoError(t, err)
    require.Equal(t, provider.PriceHistory, rt)

    _, err = provider.ParseRequestType("orderbook")
    require.Error(t, err)
}

func TestClassify(t *testing.T) {
    t.Parallel()

    require.Equal(t, provider.StatusFatal, provider.Classify(fmt.Errorf("decode: %w", provider.ErrMalformed)).Status)
    require.Equal(t, provider.StatusTransient, provider.Classify(fmt.Errorf("range: %w", provider.ErrNoData)).Status)
    require.Equal(t, provider.StatusTransient, provider.Classify(fmt.Errorf("quota: %w", provider.ErrProvider)).Status)
    require.Equal(t, provider.StatusTransient, provider.Classify(errors.New("dial tcp: timeout")).Status)
}

func TestFuncAdapter(t *testing.T) {
    t.Parallel()

    // Arrange
    a := &provider.FuncAdapter{
        ID:    provider.CoinMarketCap,
        Type:  provider.InfoRequest,
        Shape: provider.ShapeCoinMarketCapQuotes,
        HasCredential: func() bool { return false },
        Call: func(_ context.Context, req provider.Request) ([]byte, error) {
            return []byte(`{"id":"` + req.ID + `"}`), nil
        },
    }

    // Act
    out := a.Fetch(t.Context(), provider.Request{ID: "BTC"})

    // Assert
    require.False(t, a.Credentialed())
    require.True(t, out.OK())
    require.Equal(t, provider.ShapeCoinMarketCapQuotes, out.Payload.Shape)
    require.Equal(t, provider.CoinMarketCap, out.Payload.Provider)
    require.JSONEq(t, `{"id":"BTC"}`, string(out.Payload.Body))

    a.Call = func(context.Context, provider.Request) ([]byte, error) { return nil, provider.ErrMalformed }
    require.Equal(t, provider.StatusFatal, a.Fetch(t.Context(), provider.Request{}).Status)
}
