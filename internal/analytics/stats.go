// Package analytics derives returns, volatility, moving averages, RSI and
// correlations from canonical series. It never talks to providers.
package analytics

import (
	"errors"
	"math"
)

var ErrNotEnoughData = errors.New("not enough data")

// Metric is a computed number that may be unavailable.
type Metric struct {
	Value float64
	Valid bool
}

func some(v float64) Metric { return Metric{Value: v, Valid: true} }

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev is the sample standard deviation (n-1).
func StdDev(xs []float64) (float64, error) {
	if len(xs) < 2 {
		return 0, ErrNotEnoughData
	}
	m := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)-1)), nil
}

// PctReturns returns day-over-day fractional changes. A step from a zero
// price is skipped.
func PctReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		out = append(out, (closes[i]-closes[i-1])/closes[i-1])
	}
	return out
}

// Volatility is the sample standard deviation of daily returns, in percent.
func Volatility(closes []float64) (float64, error) {
	sd, err := StdDev(PctReturns(closes))
	if err != nil {
		return 0, err
	}
	return sd * 100, nil
}

// SMA is the simple moving average of the last period values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, ErrNotEnoughData
	}
	return Mean(values[len(values)-period:]), nil
}

// RSI uses plain means of the last period gains and losses, not Wilder
// smoothing. With no losses it saturates at 100.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, ErrNotEnoughData
	}
	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain, avgLoss := gain/float64(period), loss/float64(period)
	if avgLoss == 0 {
		return 100, nil
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), nil
}

// Pearson returns the correlation of two equally long samples. It fails
// when either sample has no variance.
func Pearson(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, errors.New("samples differ in length")
	}
	if len(xs) < 2 {
		return 0, ErrNotEnoughData
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, errors.New("sample has zero variance")
	}
	r := sxy / math.Sqrt(sxx*syy)
	return math.Max(-1, math.Min(1, r)), nil
}

// RSIZone labels an RSI value.
func RSIZone(rsi float64) string {
	switch {
	case rsi > 70:
		return "Overbought"
	case rsi < 30:
		return "Oversold"
	default:
		return "Neutral"
	}
}

// CorrelationBand labels a coefficient for narrative output.
func CorrelationBand(r float64) string {
	switch {
	case r > 0.7:
		return "strong positive"
	case r >= 0.3:
		return "moderate positive"
	case r >= -0.3:
		return "weak or none"
	default:
		return "negative"
	}
}
