package normalize

import (
    "encoding/json"
    "time"

    "cryptofeed/internal/market"
)

// coinGeckoChart reads market_chart/range. The endpoint only has single
// [ms, price] points, so every bar is degraded: open = high = low = close.
// Several points on one date collapse to the last one.
func coinGeckoChart(body []byte) ([]market.Bar, error) {
    var chart struct {
        Prices       [][2]float64 `json:"prices"`
        TotalVolumes [][2]float64 `json:"total_volumes"`
    }
    if err := json.Unmarshal(body, &chart); err != nil { return nil, malformed("coingecko chart", err) }

    volumes := make(map[time.Time]float64, len(chart.TotalVolumes))
    for _, v := range chart.TotalVolumes {
        volumes[market.Day(time.UnixMilli(int64(v[0])))] = v[1]
    }

    bars := make([]market.Bar, 0, len(chart.Prices))
    for _, p := range chart.Prices {
        d := market.Day(time.UnixMilli(int64(p[0])))
        price := round(p[1])
        bars = append(bars, market.Bar{
            Date: d, Open: price, High: price, Low: price, Close: price,
            Volume: round(volumes[d]),
        })
    }
    return bars, nil
}

// cryptoCompareDaily reads v2/histoday. Volume is the quote-currency volume.
func cryptoCompareDaily(body []byte) ([]market.Bar, error) {
    var res struct {
        Data struct {
            Data []struct {
                Time     int64   `json:"time"`
                Open     float64 `json:"open"`
                High     float64 `json:"high"`
                Low      float64 `json:"low"`
                Close    float64 `json:"close"`
                VolumeTo float64 `json:"volumeto"`
            } `json:"Data"`
        } `json:"Data"`
    }
    if err := json.Unmarshal(body, &res); err != nil { return nil, malformed("cryptocompare histoday", err) }

    bars := make([]market.Bar, 0, len(res.Data.Data))
    for _, e := range res.Data.Data {
        // days before listing come back zero-filled
        if e.Open == 0 && e.High == 0 && e.Low == 0 && e.Close == 0 { continue }
        bars = append(bars, market.Bar{
            Date:   market.Day(time.Unix(e.Time, 0)),
            Open:   round(e.Open),
            High:   round(e.High),
            Low:    round(e.Low),
            Close:  round(e.Close),
            Volume: round(e.VolumeTo),
        })
    }
    return bars, nil
}

type yahooChartBody struct {
    Chart struct {
        Result []struct {
            Meta       yahooMeta `json:"meta"`
            Timestamp  []int64   `json:"timestamp"`
            Indicators struct {
                Quote []struct {
                    Open   []*float64 `json:"open"`
                    High   []*float64 `json:"high"`
                    Low    []*float64 `json:"low"`
                    Close  []*float64 `json:"close"`
                    Volume []*float64 `json:"volume"`
                } `json:"quote"`
            } `json:"indicators"`
        } `json:"result"`
    } `json:"chart"`
}

type yahooMeta struct {
    Currency             string   `json:"currency"`
    Symbol               string   `json:"symbol"`
    LongName             string   `json:"longName"`
    ShortName            string   `json:"shortName"`
    RegularMarketPrice   *float64 `json:"regularMarketPrice"`
    ChartPreviousClose   *float64 `json:"chartPreviousClose"`
    RegularMarketDayHigh *float64 `json:"regularMarketDayHigh"`
    RegularMarketDayLow  *float64 `json:"regularMarketDayLow"`
    RegularMarketVolume  *float64 `json:"regularMarketVolume"`
    FiftyTwoWeekHigh     *float64 `json:"fiftyTwoWeekHigh"`
    FiftyTwoWeekLow      *float64 `json:"fiftyTwoWeekLow"`
}

// yahooChart reads the v8 chart. Sessions with a null close are skipped.
func yahooChart(body []byte) ([]market.Bar, error) {
    var chart yahooChartBody
    if err := json.Unmarshal(body, &chart); err != nil { return nil, malformed("yahoo chart", err) }
    if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 { return nil, nil }

    result := chart.Chart.Result[0]
    q := result.Indicators.Quote[0]
    at := func(xs []*float64, i int) (float64, bool) {
        if i >= len(xs) || xs[i] == nil { return 0, false }
        return *xs[i], true
    }

    bars := make([]market.Bar, 0, len(result.Timestamp))
    for i, ts := range result.Timestamp {
        c, ok := at(q.Close, i)
        if !ok { continue }
        o, ok := at(q.Open, i)
        if !ok { o = c }
        h, ok := at(q.High, i)
        if !ok { h = max(o, c) }
        l, ok := at(q.Low, i)
        if !ok { l = min(o, c) }
        v, _ := at(q.Volume, i)
        bars = append(bars, market.Bar{
            Date:   market.Day(time.Unix(ts, 0)),
            Open:   round(o),
            High:   round(h),
            Low:    round(l),
            Close:  round(c),
            Volume: round(v),
        })
    }
    return bars, nil
}
