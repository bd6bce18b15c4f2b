package market

import (
    "errors"
    "sort"
    "time"
)

var ErrEmptySeries = errors.New("series has no bars in range")

// Bar is one daily OHLCV record.
type Bar struct {
    Date   time.Time
    Open   float64
    High   float64
    Low    float64
    Close  float64
    Volume float64
}

// Series is an immutable, date ordered run of bars for one symbol.
// Degraded is set when the source only had one price per timestamp,
// in which case every bar has open == high == low == close.
type Series struct {
    symbol   Symbol
    source   string
    degraded bool
    start    time.Time
    end      time.Time
    bars     []Bar
}

// NewSeries copies bars, truncates their dates, keeps those inside [start, end],
// sorts them and drops duplicate dates keeping the last one seen.
func NewSeries(symbol Symbol, source string, degraded bool, start, end time.Time, bars []Bar) (*Series, error) {
    start, end = Day(start), Day(end)
    byDate := make(map[time.Time]Bar, len(bars))
    for _, b := range bars {
        b.Date = Day(b.Date)
        if b.Date.Before(start) || b.Date.After(end) { continue }
        byDate[b.Date] = b
    }
    if len(byDate) == 0 { return nil, ErrEmptySeries }
    out := make([]Bar, 0, len(byDate))
    for _, b := range byDate { out = append(out, b) }
    sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
    return &Series{symbol: symbol, source: source, degraded: degraded, start: start, end: end, bars: out}, nil
}

func (s *Series) Symbol() Symbol   { return s.symbol }
func (s *Series) Source() string   { return s.source }
func (s *Series) Degraded() bool   { return s.degraded }
func (s *Series) Start() time.Time { return s.start }
func (s *Series) End() time.Time   { return s.end }
func (s *Series) Len() int         { return len(s.bars) }

// Bars returns a copy of the bars.
func (s *Series) Bars() []Bar {
    out := make([]Bar, len(s.bars))
    copy(out, s.bars)
    return out
}

func (s *Series) Closes() []float64 {
    out := make([]float64, len(s.bars))
    for i, b := range s.bars { out[i] = b.Close }
    return out
}

func (s *Series) Volumes() []float64 {
    out := make([]float64, len(s.bars))
    for i, b := range s.bars { out[i] = b.Volume }
    return out
}

// CloseByDate maps each bar date to its close.
func (s *Series) CloseByDate() map[time.Time]float64 {
    out := make(map[time.Time]float64, len(s.bars))
    for _, b := range s.bars { out[b.Date] = b.Close }
    return out
}

func (s *Series) Last() Bar { return s.bars[len(s.bars)-1] }
