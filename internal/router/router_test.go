package router_test

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/sirupsen/logrus"
    logtest "github.com/sirupsen/logrus/hooks/test"
    "github.com/stretchr/testify/require"
    "go.uber.org/mock/gomock"

    "cryptofeed/internal/market"
    "cryptofeed/internal/provider"
    "cryptofeed/internal/provider/symbols"
    "cryptofeed/internal/router"
)

type fakePacer struct {
    mu    sync.Mutex
    calls []provider.ID
}

func (p *fakePacer) Acquire(_ context.Context, id provider.ID) error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.calls = append(p.calls, id)
    return nil
}

var (
    start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
    end   = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
)

const chartBody = `{"prices":[[1704067200000,42000],[1704153600000,42500],[1704240000000,43000]],"total_volumes":[]}`

func newAdapter(ctrl *gomock.Controller, id provider.ID, rt provider.RequestType, credentialed bool) *MockAdapter {
    a := NewMockAdapter(ctrl)
    a.EXPECT().Provider().Return(id).AnyTimes()
    a.EXPECT().RequestType().Return(rt).AnyTimes()
    a.EXPECT().Credentialed().Return(credentialed).AnyTimes()
    return a
}

func chain(ids ...provider.ID) map[provider.RequestType][]provider.ID {
    return map[provider.RequestType][]provider.ID{provider.PriceHistory: ids}
}

func TestFetchSeries_FirstSuccessStopsTheChain(t *testing.T) {
    t.Parallel()

    // Arrange
    ctrl := gomock.NewController(t)
    first := newAdapter(ctrl, provider.CoinGecko, provider.PriceHistory, true)
    second := newAdapter(ctrl, provider.CryptoCompare, provider.PriceHistory, true)

    first.EXPECT().
        Fetch(gomock.Any(), gomock.Any()).
        DoAndReturn(func(_ context.Context, req provider.Request) provider.Outcome {
            require.Equal(t, "bitcoin", req.ID)
            require.Equal(t, start, req.Start)
            require.Equal(t, end, req.End)
            return provider.Success(provider.Payload{Provider: provider.CoinGecko, Shape: provider.ShapeCoinGeckoChart, Body: []byte(chartBody)})
        }).
        Times(1)
    second.EXPECT().Fetch(gomock.Any(), gomock.Any()).Times(0)

    pacer := &fakePacer{}
    logger, _ := logtest.NewNullLogger()
    r := router.New(chain(provider.CoinGecko, provider.CryptoCompare), symbols.New(), pacer, logger, first, second)

    // Act
    s, err := r.FetchSeries(t.Context(), "BTC-USD", start, end)

    // Assert
    require.NoError(t, err)
    require.Equal(t, "coingecko", s.Source())
    require.Equal(t, 3, s.Len())
    require.Equal(t, []provider.ID{provider.CoinGecko}, pacer.calls)
}

func TestFetchSeries_FallsBackOnTransientAndFatal(t *testing.T) {
    t.Parallel()

    // Arrange: a transient failure, then a payload that fails to normalize, then a good one.
    ctrl := gomock.NewController(t)
    a := newAdapter(ctrl, provider.CoinGecko, provider.PriceHistory, true)
    b := newAdapter(ctrl, provider.CryptoCompare, provider.PriceHistory, true)
    c := newAdapter(ctrl, provider.Yahoo, provider.PriceHistory, true)

    gomock.InOrder(
        a.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(provider.Transient(errors.New("429"))),
        b.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(provider.Success(provider.Payload{
            Provider: provider.CryptoCompare, Shape: provider.ShapeCryptoCompareDaily, Body: []byte(`{"Data":"oops"}`),
        })),
        c.EXPECT().Fetch(gomock.Any(), gomock.Any()).
            DoAndReturn(func(_ context.Context, req provider.Request) provider.Outcome {
                require.Equal(t, "BTC-USD", req.ID)
                return provider.Success(provider.Payload{Provider: provider.Yahoo, Shape: provider.ShapeYahooChart, Body: []byte(
                    `{"chart":{"result":[{"timestamp":[1704067200],"indicators":{"quote":[{"open":[1],"high":[2],"low":[0.5],"close":[1.5],"volume":[1]}]}}]}}`)})
            }),
    )

    logger, hook := logtest.NewNullLogger()
    r := router.New(chain(provider.CoinGecko, provider.CryptoCompare, provider.Yahoo), symbols.New(), &fakePacer{}, logger, a, b, c)

    // Act
    s, err := r.FetchSeries(t.Context(), "BTC-USD", start, end)

    // Assert
    require.NoError(t, err)
    require.Equal(t, "yahoo", s.Source())
    require.False(t, s.Degraded())

    var outcomes []string
    for _, e := range hook.AllEntries() {
        if e.Level == logrus.WarnLevel { outcomes = append(outcomes, e.Data["outcome"].(string)) }
    }
    require.Equal(t, []string{"transient", "fatal"}, outcomes)
}

func TestFetch_SkipsUncredentialedWithoutPacing(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    cmc := newAdapter(ctrl, provider.CoinMarketCap, provider.InfoRequest, false)
    cmc.EXPECT().Fetch(gomock.Any(), gomock.Any()).Times(0)
    cg := newAdapter(ctrl, provider.CoinGecko, provider.InfoRequest, true)
    cg.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(provider.Success(provider.Payload{
        Provider: provider.CoinGecko, Shape: provider.ShapeCoinGeckoCoin, Body: []byte(`{"name":"Bitcoin","market_data":{"current_price":{"usd":1}}}`),
    }))

    pacer := &fakePacer{}
    logger, _ := logtest.NewNullLogger()
    chains := map[provider.RequestType][]provider.ID{provider.InfoRequest: {provider.CoinMarketCap, provider.CoinGecko}}
    r := router.New(chains, symbols.New(), pacer, logger, cmc, cg)

    in, err := r.FetchInfo(t.Context(), "BTC-USD")

    require.NoError(t, err)
    require.Equal(t, "Bitcoin", in.Get(market.FieldName).String())
    require.Equal(t, []provider.ID{provider.CoinGecko}, pacer.calls)
}

func TestFetch_ExhaustedReportsEveryAttempt(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    a := newAdapter(ctrl, provider.CoinGecko, provider.NewsRequest, true)
    a.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(provider.Transient(provider.ErrNoData))
    b := newAdapter(ctrl, provider.CryptoCompare, provider.NewsRequest, true)
    b.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(provider.Fatal(provider.ErrMalformed))

    logger, _ := logtest.NewNullLogger()
    chains := map[provider.RequestType][]provider.ID{provider.NewsRequest: {provider.CoinGecko, provider.CryptoCompare, provider.Yahoo}}
    r := router.New(chains, symbols.New(), &fakePacer{}, logger, a, b)

    _, err := r.FetchNews(t.Context(), "ETH-USD")

    require.ErrorIs(t, err, router.ErrExhausted)
    var ex *router.ExhaustedError
    require.ErrorAs(t, err, &ex)
    require.Equal(t, provider.NewsRequest, ex.RequestType)
    require.Len(t, ex.Attempts, 3)
    require.Equal(t, "transient", ex.Attempts[0].Outcome)
    require.Equal(t, "fatal", ex.Attempts[1].Outcome)
    require.Equal(t, "skipped", ex.Attempts[2].Outcome)
    require.Contains(t, err.Error(), "coingecko (transient)")
}

func TestFetch_EmptyChain(t *testing.T) {
    t.Parallel()

    logger, _ := logtest.NewNullLogger()
    r := router.New(nil, symbols.New(), &fakePacer{}, logger)

    _, err := r.FetchCommunity(t.Context(), "BTC-USD")
    require.ErrorIs(t, err, router.ErrExhausted)
    require.Contains(t, err.Error(), "no providers configured")
}

func TestFetch_CanceledContextStops(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    a := newAdapter(ctrl, provider.CoinGecko, provider.PriceHistory, true)
    a.EXPECT().Fetch(gomock.Any(), gomock.Any()).Times(0)

    ctx, cancel := context.WithCancel(t.Context())
    cancel()

    logger, _ := logtest.NewNullLogger()
    r := router.New(chain(provider.CoinGecko), symbols.New(), &fakePacer{}, logger, a)
    _, err := r.FetchSeries(ctx, "BTC-USD", start, end)
    require.ErrorIs(t, err, context.Canceled)
}
