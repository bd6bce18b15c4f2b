package normalize

import (
    "encoding/json"
    "strings"

    "github.com/tidwall/gjson"

    "cryptofeed/internal/market"
)

func value(r gjson.Result) market.Value {
    switch r.Type {
    case gjson.Number:
        return market.Number(round(r.Float()))
    case gjson.String:
        if r.String() == "" { return market.NA }
        return market.Text(r.String())
    default:
        return market.NA
    }
}

func ptr(f *float64) market.Value {
    if f == nil { return market.NA }
    return market.Number(round(*f))
}

func coinGeckoCoin(body []byte, symbol market.Symbol) (*market.Info, error) {
    if !gjson.ValidBytes(body) { return nil, malformed("coingecko coin", errInvalidJSON) }
    doc := gjson.ParseBytes(body)
    in := market.NewInfo(symbol, "")
    in.Set(market.FieldName, value(doc.Get("name")))
    if t := doc.Get("symbol").String(); t != "" { in.Set(market.FieldTicker, market.Text(strings.ToUpper(t))) }
    in.Set(market.FieldRank, value(doc.Get("market_cap_rank")))
    in.Set(market.FieldCurrency, market.Text("USD"))

    md := doc.Get("market_data")
    in.Set(market.FieldPrice, value(md.Get("current_price.usd")))
    in.Set(market.FieldMarketCap, value(md.Get("market_cap.usd")))
    in.Set(market.FieldVolume24h, value(md.Get("total_volume.usd")))
    in.Set(market.FieldChange24hPct, value(md.Get("price_change_percentage_24h")))
    in.Set(market.FieldHigh24h, value(md.Get("high_24h.usd")))
    in.Set(market.FieldLow24h, value(md.Get("low_24h.usd")))
    in.Set(market.FieldATH, value(md.Get("ath.usd")))
    in.Set(market.FieldATL, value(md.Get("atl.usd")))
    in.Set(market.FieldCirculatingSupply, value(md.Get("circulating_supply")))
    in.Set(market.FieldTotalSupply, value(md.Get("total_supply")))
    in.Set(market.FieldMaxSupply, value(md.Get("max_supply")))

    cd := doc.Get("community_data")
    in.Set(market.FieldTwitterFollowers, value(cd.Get("twitter_followers")))
    in.Set(market.FieldRedditSubscribers, value(cd.Get("reddit_subscribers")))
    in.Set(market.FieldRedditActive48h, value(cd.Get("reddit_accounts_active_48h")))

    dd := doc.Get("developer_data")
    in.Set(market.FieldGithubStars, value(dd.Get("stars")))
    in.Set(market.FieldGithubForks, value(dd.Get("forks")))
    return in, nil
}

// coinMarketCapQuotes reads quotes/latest. data.<TICKER> is an object in v1
// and an array in v2; both are accepted.
func coinMarketCapQuotes(body []byte, symbol market.Symbol) (*market.Info, error) {
    if !gjson.ValidBytes(body) { return nil, malformed("coinmarketcap quotes", errInvalidJSON) }
    var coin gjson.Result
    gjson.GetBytes(body, "data").ForEach(func(_, v gjson.Result) bool {
        coin = v
        return false
    })
    if coin.IsArray() { coin = coin.Get("0") }
    if !coin.IsObject() { return nil, malformed("coinmarketcap quotes", errNoCoin) }

    in := market.NewInfo(symbol, "")
    in.Set(market.FieldName, value(coin.Get("name")))
    in.Set(market.FieldTicker, value(coin.Get("symbol")))
    in.Set(market.FieldRank, value(coin.Get("cmc_rank")))
    in.Set(market.FieldCurrency, market.Text("USD"))
    in.Set(market.FieldCirculatingSupply, value(coin.Get("circulating_supply")))
    in.Set(market.FieldTotalSupply, value(coin.Get("total_supply")))
    in.Set(market.FieldMaxSupply, value(coin.Get("max_supply")))

    q := coin.Get("quote.USD")
    in.Set(market.FieldPrice, value(q.Get("price")))
    in.Set(market.FieldMarketCap, value(q.Get("market_cap")))
    in.Set(market.FieldVolume24h, value(q.Get("volume_24h")))
    in.Set(market.FieldChange24hPct, value(q.Get("percent_change_24h")))
    in.Set(market.FieldHigh24h, value(q.Get("high_24h")))
    in.Set(market.FieldLow24h, value(q.Get("low_24h")))
    return in, nil
}

// yahooQuote builds an Info from the chart meta block. 24h change is
// derived from the previous close.
func yahooQuote(body []byte, symbol market.Symbol) (*market.Info, error) {
    var chart yahooChartBody
    if err := json.Unmarshal(body, &chart); err != nil { return nil, malformed("yahoo quote", err) }
    if len(chart.Chart.Result) == 0 { return nil, malformed("yahoo quote", errNoCoin) }
    m := chart.Chart.Result[0].Meta

    in := market.NewInfo(symbol, "")
    name := m.LongName
    if name == "" { name = m.ShortName }
    if name != "" { in.Set(market.FieldName, market.Text(name)) }
    if m.Symbol != "" { in.Set(market.FieldTicker, market.Text(m.Symbol)) }
    if m.Currency != "" { in.Set(market.FieldCurrency, market.Text(m.Currency)) }
    in.Set(market.FieldPrice, ptr(m.RegularMarketPrice))
    in.Set(market.FieldPrevClose, ptr(m.ChartPreviousClose))
    in.Set(market.FieldHigh24h, ptr(m.RegularMarketDayHigh))
    in.Set(market.FieldLow24h, ptr(m.RegularMarketDayLow))
    in.Set(market.FieldVolume24h, ptr(m.RegularMarketVolume))
    in.Set(market.FieldHigh52w, ptr(m.FiftyTwoWeekHigh))
    in.Set(market.FieldLow52w, ptr(m.FiftyTwoWeekLow))
    if m.RegularMarketPrice != nil && m.ChartPreviousClose != nil && *m.ChartPreviousClose != 0 {
        pct := (*m.RegularMarketPrice - *m.ChartPreviousClose) / *m.ChartPreviousClose * 100
        in.Set(market.FieldChange24hPct, market.Number(round(pct)))
    }
    return in, nil
}
