package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"cryptofeed/internal/market"
)

// Point is one dated indicator value.
type Point struct {
	Date  time.Time
	Value Metric
}

// Indicator describes one named indicator.
type Indicator struct {
	Name        string
	Description string
	// Available is false for on-chain metrics no price feed can supply.
	Available bool
	// Lookback is how many bars before the first reported date the
	// computation needs.
	Lookback int
	compute  func(closes []float64, i int) Metric
}

var indicators = map[string]Indicator{
	"close_20_sma": {
		Name:        "close_20_sma",
		Description: "20-day simple moving average of the close. Usage: short-term trend and dynamic support or resistance.",
		Available:   true,
		Lookback:    20,
		compute:     rolling(20, func(w []float64) (float64, error) { return Mean(w), nil }),
	},
	"close_50_sma": {
		Name:        "close_50_sma",
		Description: "50-day simple moving average of the close. Usage: medium-term trend direction.",
		Available:   true,
		Lookback:    50,
		compute:     rolling(50, func(w []float64) (float64, error) { return Mean(w), nil }),
	},
	"rsi": {
		Name:        "rsi",
		Description: "14-day RSI from plain average gains and losses. Usage: above 70 is overbought, below 30 is oversold.",
		Available:   true,
		Lookback:    15,
		compute:     rolling(15, func(w []float64) (float64, error) { return RSI(w, 14) }),
	},
	"volatility": {
		Name:        "volatility",
		Description: "20-day standard deviation of daily returns, in percent. Usage: gauges how violently price moves.",
		Available:   true,
		Lookback:    21,
		compute:     rolling(21, Volatility),
	},
	"mayer_multiple": {
		Name:        "mayer_multiple",
		Description: "Mayer Multiple: current price divided by the 200-day moving average. Values below 1 suggest undervaluation, above 2.4 overvaluation.",
		Available:   true,
		Lookback:    200,
		compute: rolling(200, func(w []float64) (float64, error) {
			avg := Mean(w)
			if avg == 0 {
				return 0, ErrNotEnoughData
			}
			return w[len(w)-1] / avg, nil
		}),
	},
	"nvt_ratio": {
		Name:        "nvt_ratio",
		Description: "NVT Ratio: network value to transactions. High NVT suggests overvaluation, low NVT undervaluation.",
	},
	"puell_multiple": {
		Name:        "puell_multiple",
		Description: "Puell Multiple: daily issuance value divided by its 365-day average. High values suggest miner selling pressure.",
	},
	"rhodl_ratio": {
		Name:        "rhodl_ratio",
		Description: "RHODL Ratio: 1-week to 1-2 year UTXO age bands. High values suggest market tops, low values bottoms.",
	},
}

// rolling applies f to the window of size n ending at each index.
func rolling(n int, f func(window []float64) (float64, error)) func([]float64, int) Metric {
	return func(closes []float64, i int) Metric {
		if i+1 < n {
			return Metric{}
		}
		v, err := f(closes[i+1-n : i+1])
		if err != nil {
			return Metric{}
		}
		return some(v)
	}
}

// LookupIndicator finds an indicator by case-insensitive name.
func LookupIndicator(name string) (Indicator, error) {
	ind, ok := indicators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Indicator{}, fmt.Errorf("unsupported indicator %q (supported: %s)", name, strings.Join(IndicatorNames(), ", "))
	}
	return ind, nil
}

func IndicatorNames() []string {
	names := make([]string, 0, len(indicators))
	for n := range indicators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Series computes the indicator for every bar of s dated on or after from.
func (ind Indicator) Series(s *market.Series, from time.Time) ([]Point, error) {
	if !ind.Available {
		return nil, fmt.Errorf("%s needs on-chain data: %w", ind.Name, ErrNotEnoughData)
	}
	bars := s.Bars()
	closes := s.Closes()
	from = market.Day(from)
	var out []Point
	for i, b := range bars {
		if b.Date.Before(from) {
			continue
		}
		out = append(out, Point{Date: b.Date, Value: ind.compute(closes, i)})
	}
	return out, nil
}
