package analytics

import (
	"errors"
	"sort"
	"time"

	"cryptofeed/internal/market"
)

var ErrTooFewSymbols = errors.New("at least 2 symbols are required for correlation analysis")

// Pair is the coefficient between two symbols.
type Pair struct {
	A, B  market.Symbol
	Value float64
}

// Correlation is a symmetric matrix of close-price correlations, indexed
// in Symbols order. Entries are invalid where a pair shares fewer than two
// dates or a series has no variance.
type Correlation struct {
	Symbols []market.Symbol
	Matrix  [][]Metric
	// Dates is the number of dates present for every symbol.
	Dates    int
	Highest  Pair
	Lowest   Pair
	HasPairs bool
}

// At returns the coefficient for a and b.
func (c Correlation) At(a, b market.Symbol) Metric {
	i, j := c.index(a), c.index(b)
	if i < 0 || j < 0 {
		return Metric{}
	}
	return c.Matrix[i][j]
}

func (c Correlation) index(s market.Symbol) int {
	for i, x := range c.Symbols {
		if x == s {
			return i
		}
	}
	return -1
}

// Correlate aligns closes by date and computes pairwise Pearson
// coefficients. Each pair uses only the dates both series have.
func Correlate(series []*market.Series) (Correlation, error) {
	if len(series) < 2 {
		return Correlation{}, ErrTooFewSymbols
	}
	n := len(series)
	c := Correlation{Symbols: make([]market.Symbol, n), Matrix: make([][]Metric, n)}
	closes := make([]map[time.Time]float64, n)
	for i, s := range series {
		c.Symbols[i] = s.Symbol()
		closes[i] = s.CloseByDate()
		c.Matrix[i] = make([]Metric, n)
	}
	c.Dates = commonDates(closes)

	for i := 0; i < n; i++ {
		if hasVariance(closes[i]) {
			c.Matrix[i][i] = some(1)
		}
		for j := i + 1; j < n; j++ {
			xs, ys := align(closes[i], closes[j])
			r, err := Pearson(xs, ys)
			if err != nil {
				continue
			}
			c.Matrix[i][j], c.Matrix[j][i] = some(r), some(r)
			p := Pair{A: c.Symbols[i], B: c.Symbols[j], Value: r}
			if !c.HasPairs || r > c.Highest.Value {
				c.Highest = p
			}
			if !c.HasPairs || r < c.Lowest.Value {
				c.Lowest = p
			}
			c.HasPairs = true
		}
	}
	return c, nil
}

// align returns the closes of a and b on the dates both have, in date order.
func align(a, b map[time.Time]float64) ([]float64, []float64) {
	dates := make([]time.Time, 0, len(a))
	for d := range a {
		if _, ok := b[d]; ok {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	xs, ys := make([]float64, len(dates)), make([]float64, len(dates))
	for i, d := range dates {
		xs[i], ys[i] = a[d], b[d]
	}
	return xs, ys
}

func commonDates(all []map[time.Time]float64) int {
	n := 0
	for d := range all[0] {
		shared := true
		for _, m := range all[1:] {
			if _, ok := m[d]; !ok {
				shared = false
				break
			}
		}
		if shared {
			n++
		}
	}
	return n
}

func hasVariance(m map[time.Time]float64) bool {
	first, seen := 0.0, false
	for _, v := range m {
		if !seen {
			first, seen = v, true
			continue
		}
		if v != first {
			return true
		}
	}
	return false
}
