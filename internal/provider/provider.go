package provider

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "cryptofeed/internal/market"
)

// ID identifies one external market-data source.
type ID string

const (
    CoinGecko     ID = "coingecko"
    CryptoCompare ID = "cryptocompare"
    CoinMarketCap ID = "coinmarketcap"
    Yahoo         ID = "yahoo"
)

// aliasMap normalizes the spellings operators put in config chains.
var aliasMap = map[string]ID{
    "coingecko":     CoinGecko,
    "gecko":         CoinGecko,
    "cg":            CoinGecko,
    "cryptocompare": CryptoCompare,
    "cc":            CryptoCompare,
    "coinmarketcap": CoinMarketCap,
    "cmc":           CoinMarketCap,
    "yahoo":         Yahoo,
    "yfinance":      Yahoo,
    "yahoofinance":  Yahoo,
}

func ParseID(s string) (ID, error) {
    k := strings.ToLower(strings.TrimSpace(s))
    k = strings.NewReplacer("-", "", "_", "", " ", "").Replace(k)
    if id, ok := aliasMap[k]; ok { return id, nil }
    return "", fmt.Errorf("unknown provider %q", s)
}

// RequestType is the kind of data an adapter fetches.
type RequestType string

const (
    PriceHistory RequestType = "price_history"
    InfoRequest  RequestType = "info"
    NewsRequest  RequestType = "news"
    Community    RequestType = "community"
)

var RequestTypes = []RequestType{PriceHistory, InfoRequest, NewsRequest, Community}

func ParseRequestType(s string) (RequestType, error) {
    rt := RequestType(strings.ToLower(strings.TrimSpace(s)))
    for _, known := range RequestTypes {
        if rt == known { return rt, nil }
    }
    return "", fmt.Errorf("unknown request type %q", s)
}

// Request carries the resolved identifier and parameters of one fetch.
type Request struct {
    Symbol market.Symbol
    // ID is the provider specific identifier for Symbol.
    ID    string
    Start time.Time
    End   time.Time
}

// Shape tells the normalizer which conversion routine a payload needs.
type Shape string

const (
    ShapeCoinGeckoChart      Shape = "coingecko.market_chart"
    ShapeCoinGeckoCoin       Shape = "coingecko.coin"
    ShapeCoinGeckoStatus     Shape = "coingecko.status_updates"
    ShapeCryptoCompareDaily  Shape = "cryptocompare.histoday"
    ShapeCryptoCompareNews   Shape = "cryptocompare.news"
    ShapeCoinMarketCapQuotes Shape = "coinmarketcap.quotes_latest"
    ShapeYahooChart          Shape = "yahoo.chart"
)

// Payload is a raw provider response body tagged with its shape.
type Payload struct {
    Provider ID
    Shape    Shape
    Body     []byte
}

// Status is the tag of an Outcome.
type Status int

const (
    StatusSuccess Status = iota
    StatusTransient
    StatusFatal
)

func (s Status) String() string {
    switch s {
    case StatusSuccess:
        return "success"
    case StatusTransient:
        return "transient"
    case StatusFatal:
        return "fatal"
    default:
        return "unknown"
    }
}

// Outcome is the tagged result of one adapter call.
type Outcome struct {
    Status  Status
    Payload Payload
    Err     error
}

func Success(p Payload) Outcome      { return Outcome{Status: StatusSuccess, Payload: p} }
func Transient(err error) Outcome    { return Outcome{Status: StatusTransient, Err: err} }
func Fatal(err error) Outcome        { return Outcome{Status: StatusFatal, Err: err} }
func (o Outcome) OK() bool           { return o.Status == StatusSuccess }

var (
    // ErrNoData means the provider answered but had nothing for the range.
    ErrNoData = errors.New("no data")
    // ErrMalformed means the payload could not be parsed.
    ErrMalformed = errors.New("malformed payload")
    // ErrProvider is a provider-reported error or quota envelope.
    ErrProvider = errors.New("provider error")
)

// Adapter issues one request type against one provider.
//
//go:generate mockgen -package=router_test -destination=../router/mock_adapter_test.go -source=provider.go Adapter
type Adapter interface {
    Provider() ID
    RequestType() RequestType
    // Credentialed reports whether every credential the provider mandates is present.
    Credentialed() bool
    Fetch(ctx context.Context, req Request) Outcome
}

// Classify maps an error to an Outcome: malformed payloads are fatal,
// everything else (transport, status, quota, no data) is transient.
func Classify(err error) Outcome {
    if errors.Is(err, ErrMalformed) { return Fatal(err) }
    return Transient(err)
}
