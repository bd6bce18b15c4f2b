package market

import (
    "strconv"
    "time"
)

// Field names one entry of an Info record.
type Field string

const (
    FieldName              Field = "name"
    FieldTicker            Field = "ticker"
    FieldRank              Field = "rank"
    FieldCurrency          Field = "currency"
    FieldPrice             Field = "price"
    FieldMarketCap         Field = "market_cap"
    FieldVolume24h         Field = "volume_24h"
    FieldChange24hPct      Field = "change_24h_pct"
    FieldHigh24h           Field = "high_24h"
    FieldLow24h            Field = "low_24h"
    FieldPrevClose         Field = "previous_close"
    FieldHigh52w           Field = "high_52w"
    FieldLow52w            Field = "low_52w"
    FieldATH               Field = "ath"
    FieldATL               Field = "atl"
    FieldCirculatingSupply Field = "circulating_supply"
    FieldTotalSupply       Field = "total_supply"
    FieldMaxSupply         Field = "max_supply"
    FieldTwitterFollowers  Field = "twitter_followers"
    FieldRedditSubscribers Field = "reddit_subscribers"
    FieldRedditActive48h   Field = "reddit_active_48h"
    FieldGithubStars       Field = "github_stars"
    FieldGithubForks       Field = "github_forks"
)

// Fields lists every field an Info carries, in report order.
var Fields = []Field{
    FieldName, FieldTicker, FieldRank, FieldCurrency,
    FieldPrice, FieldMarketCap, FieldVolume24h, FieldChange24hPct, FieldHigh24h, FieldLow24h,
    FieldPrevClose, FieldHigh52w, FieldLow52w, FieldATH, FieldATL,
    FieldCirculatingSupply, FieldTotalSupply, FieldMaxSupply,
    FieldTwitterFollowers, FieldRedditSubscribers, FieldRedditActive48h,
    FieldGithubStars, FieldGithubForks,
}

// Value is a field value that may be explicitly not available.
type Value struct {
    valid  bool
    number bool
    num    float64
    text   string
}

// NA is the explicit "not available" value.
var NA = Value{}

func Number(f float64) Value { return Value{valid: true, number: true, num: f} }
func Text(s string) Value    { return Value{valid: true, text: s} }

func (v Value) Valid() bool    { return v.valid }
func (v Value) IsNumber() bool { return v.valid && v.number }

// Float returns the numeric value and whether there is one.
func (v Value) Float() (float64, bool) { return v.num, v.IsNumber() }

func (v Value) String() string {
    switch {
    case !v.valid:
        return "N/A"
    case v.number:
        return strconv.FormatFloat(v.num, 'f', -1, 64)
    default:
        return v.text
    }
}

// Info is a flat descriptive record for one instrument. Every known field is
// present; missing ones hold NA.
type Info struct {
    Symbol    Symbol
    Source    string
    FetchedAt time.Time
    values    map[Field]Value
}

func NewInfo(symbol Symbol, source string) *Info {
    in := &Info{Symbol: symbol, Source: source, values: make(map[Field]Value, len(Fields))}
    for _, f := range Fields { in.values[f] = NA }
    return in
}

func (in *Info) Set(f Field, v Value) { in.values[f] = v }

func (in *Info) Get(f Field) Value {
    if v, ok := in.values[f]; ok { return v }
    return NA
}

// NewsItem is one headline or status update.
type NewsItem struct {
    Title     string
    Body      string
    URL       string
    Author    string
    Published time.Time
    // Provider is the source the item was fetched from.
    Provider string
}
