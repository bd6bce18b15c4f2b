package analytics

import (
	"time"

	"cryptofeed/internal/market"
)

// SingleAsset is the analysis of one series over its window.
type SingleAsset struct {
	Symbol   market.Symbol
	Source   string
	Degraded bool
	Start    time.Time
	End      time.Time
	Bars     int

	FirstClose  float64
	LatestClose float64
	Change      float64
	ChangePct   Metric
	Volatility  Metric
	AvgVolume   float64

	SMA20   Metric
	SMA50   Metric
	RSI14   Metric
	RSIZone string
}

// AnalyzeSingle computes price, trend and momentum figures for s.
// Indicators without enough history are left invalid.
func AnalyzeSingle(s *market.Series) (SingleAsset, error) {
	if s == nil || s.Len() == 0 {
		return SingleAsset{}, market.ErrEmptySeries
	}
	closes := s.Closes()
	bars := s.Bars()
	a := SingleAsset{
		Symbol:      s.Symbol(),
		Source:      s.Source(),
		Degraded:    s.Degraded(),
		Start:       bars[0].Date,
		End:         bars[len(bars)-1].Date,
		Bars:        len(bars),
		FirstClose:  closes[0],
		LatestClose: closes[len(closes)-1],
		AvgVolume:   Mean(s.Volumes()),
	}
	a.Change = a.LatestClose - a.FirstClose
	if a.FirstClose != 0 {
		a.ChangePct = some(a.Change / a.FirstClose * 100)
	}
	if v, err := Volatility(closes); err == nil {
		a.Volatility = some(v)
	}
	if v, err := SMA(closes, 20); err == nil {
		a.SMA20 = some(v)
	}
	if v, err := SMA(closes, 50); err == nil {
		a.SMA50 = some(v)
	}
	if v, err := RSI(closes, 14); err == nil {
		a.RSI14 = some(v)
		a.RSIZone = RSIZone(v)
	}
	return a, nil
}

// Position reports "Above" or "Below" for the latest close against an average.
func Position(price float64, avg Metric) string {
	if !avg.Valid {
		return "N/A"
	}
	if price > avg.Value {
		return "Above"
	}
	return "Below"
}
