package symbols

import (
    "strings"

    "cryptofeed/internal/market"
    "cryptofeed/internal/provider"
)

// Style is the fallback used for symbols missing from a provider's table.
type Style int

const (
    // Lower strips the -USD suffix and lowercases the rest ("PEPE-USD" -> "pepe").
    Lower Style = iota
    // Upper strips the -USD suffix and uppercases the rest ("PEPE-USD" -> "PEPE").
    Upper
    // Canonical passes the canonical symbol through unchanged.
    Canonical
)

var coinGeckoIDs = map[market.Symbol]string{
    "BTC-USD":   "bitcoin",
    "ETH-USD":   "ethereum",
    "ADA-USD":   "cardano",
    "SOL-USD":   "solana",
    "DOGE-USD":  "dogecoin",
    "XRP-USD":   "ripple",
    "LTC-USD":   "litecoin",
    "DOT-USD":   "polkadot",
    "LINK-USD":  "chainlink",
    "MATIC-USD": "matic-network",
    "AVAX-USD":  "avalanche-2",
    "ATOM-USD":  "cosmos",
    "ALGO-USD":  "algorand",
    "FIL-USD":   "filecoin",
    "BNB-USD":   "binancecoin",
    "XLM-USD":   "stellar",
    "EOS-USD":   "eos",
    "TRX-USD":   "tron",
    "XMR-USD":   "monero",
    "DASH-USD":  "dash",
    "ZEC-USD":   "zcash",
}

// tickers covers CryptoCompare and CoinMarketCap, which both key on the base ticker.
var tickers = map[market.Symbol]string{
    "BTC-USD":   "BTC",
    "ETH-USD":   "ETH",
    "ADA-USD":   "ADA",
    "SOL-USD":   "SOL",
    "DOGE-USD":  "DOGE",
    "XRP-USD":   "XRP",
    "LTC-USD":   "LTC",
    "DOT-USD":   "DOT",
    "LINK-USD":  "LINK",
    "MATIC-USD": "MATIC",
    "AVAX-USD":  "AVAX",
    "ATOM-USD":  "ATOM",
    "ALGO-USD":  "ALGO",
    "FIL-USD":   "FIL",
}

type table struct {
    ids   map[market.Symbol]string
    style Style
}

// Normalizer maps canonical symbols to provider identifiers.
type Normalizer struct {
    tables map[provider.ID]table
}

// New returns a Normalizer with the built-in tables. Providers it does not
// know fall back to the Lower heuristic.
func New() *Normalizer {
    return &Normalizer{tables: map[provider.ID]table{
        provider.CoinGecko:     {ids: coinGeckoIDs, style: Lower},
        provider.CryptoCompare: {ids: tickers, style: Upper},
        provider.CoinMarketCap: {ids: tickers, style: Upper},
        provider.Yahoo:         {ids: nil, style: Canonical},
    }}
}

// Override adds or replaces one table entry, e.g. from configuration.
func (n *Normalizer) Override(id provider.ID, symbol market.Symbol, providerID string) {
    t := n.tables[id]
    ids := make(map[market.Symbol]string, len(t.ids)+1)
    for k, v := range t.ids { ids[k] = v }
    ids[symbol] = providerID
    t.ids = ids
    n.tables[id] = t
}

// Resolve returns the identifier id uses for symbol. A table hit wins;
// otherwise the provider's heuristic is applied and the result may not exist
// at the provider.
func (n *Normalizer) Resolve(symbol market.Symbol, id provider.ID) string {
    symbol = market.Symbol(strings.ToUpper(string(symbol)))
    t, ok := n.tables[id]
    if ok {
        if v, hit := t.ids[symbol]; hit { return v }
    }
    return heuristic(symbol, t.style)
}

func heuristic(symbol market.Symbol, style Style) string {
    if style == Canonical { return string(symbol) }
    base := strings.TrimSuffix(string(symbol), "-USD")
    if style == Upper { return base }
    return strings.ToLower(base)
}
