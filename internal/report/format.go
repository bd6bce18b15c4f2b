// Package report renders canonical data and analytics results as plain text.
package report

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"cryptofeed/internal/analytics"
	"cryptofeed/internal/market"
)

// Price formats a price with two decimals, or six significant digits below one dollar.
func Price(f float64) string {
	sign := ""
	if f < 0 {
		sign = "-"
	}
	d := decimal.NewFromFloat(math.Abs(f))
	if d.IsZero() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return sign + "$" + grouped(d.StringFixed(2))
	}
	// 0.00001234 has exponent -5 and keeps 10 places.
	places := int32(5 - int(math.Floor(math.Log10(math.Abs(f)))))
	return sign + "$" + d.Round(places).String()
}

func Pct(f float64) string { return fmt.Sprintf("%.2f%%", f) }

// Whole formats a large count with thousands separators.
func Whole(f float64) string {
	if f < 0 {
		return "-" + Whole(-f)
	}
	return grouped(decimal.NewFromFloat(f).Round(0).String())
}

// grouped inserts thousands separators into the integer part of a plain decimal string.
func grouped(s string) string {
	whole, frac, hasFrac := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return s
	}
	if hasFrac {
		return humanize.BigComma(n) + "." + frac
	}
	return humanize.BigComma(n)
}

func metric(m analytics.Metric, format func(float64) string) string {
	if !m.Valid {
		return "N/A"
	}
	return format(m.Value)
}

func value(v market.Value, format func(float64) string) string {
	if f, ok := v.Float(); ok {
		return format(f)
	}
	return v.String()
}

func plain(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func degradedNote(source string, degraded bool) string {
	if degraded {
		return fmt.Sprintf("%s (degraded: one price per day, open=high=low=close)", source)
	}
	return source
}

// Errorf builds a user-visible failure line.
func Errorf(format string, args ...any) string {
	return "Error: " + strings.TrimSpace(fmt.Sprintf(format, args...))
}
