package market

import (
    "errors"
    "strings"
    "time"
)

var ErrEmptySymbol = errors.New("symbol is required")

// Symbol is a canonical instrument id in BASE-QUOTE form, e.g. BTC-USD.
type Symbol string

func ParseSymbol(s string) (Symbol, error) {
    s = strings.ToUpper(strings.TrimSpace(s))
    if s == "" { return "", ErrEmptySymbol }
    return Symbol(s), nil
}

// ParseSymbols splits a comma separated list, dropping blanks and keeping input order.
func ParseSymbols(csv string) []Symbol {
    parts := strings.Split(csv, ",")
    out := make([]Symbol, 0, len(parts))
    for _, p := range parts {
        if s, err := ParseSymbol(p); err == nil { out = append(out, s) }
    }
    return out
}

func (s Symbol) String() string { return string(s) }

const DateLayout = "2006-01-02"

// Day truncates t to its calendar date. The wall clock is read in UTC and never shifted.
func Day(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
    t, err := time.Parse(DateLayout, strings.TrimSpace(s))
    if err != nil { return time.Time{}, err }
    return t, nil
}
