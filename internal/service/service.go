// Package service is the text API the agent layer and the HTTP/CLI front ends
// call. Every operation returns a report; failures come back as text starting
// with "Error:".
package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/sirupsen/logrus"

    "cryptofeed/internal/market"
    "cryptofeed/internal/metrics"
    "cryptofeed/internal/report"
)

// Fetcher is the fallback router as seen by the reports.
//
//go:generate mockgen -package=service_test -destination=mock_fetcher_test.go -source=service.go Fetcher
type Fetcher interface {
    FetchSeries(ctx context.Context, symbol market.Symbol, start, end time.Time) (*market.Series, error)
    FetchInfo(ctx context.Context, symbol market.Symbol) (*market.Info, error)
    FetchCommunity(ctx context.Context, symbol market.Symbol) (*market.Info, error)
    FetchNews(ctx context.Context, symbol market.Symbol) ([]market.NewsItem, error)
}

// DefaultOverview is the majors list of the market overview.
var DefaultOverview = []market.Symbol{"BTC-USD", "ETH-USD", "ADA-USD", "SOL-USD", "DOGE-USD"}

// ValidationError is an input problem detected before any provider call.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
    return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type Service struct {
    fetch    Fetcher
    log      logrus.FieldLogger
    now      func() time.Time
    overview []market.Symbol
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithLogger(l logrus.FieldLogger) Option { return func(s *Service) { s.log = l } }

func WithOverviewSymbols(symbols []market.Symbol) Option {
    return func(s *Service) {
        if len(symbols) > 0 { s.overview = append([]market.Symbol(nil), symbols...) }
    }
}

func New(f Fetcher, opts ...Option) *Service {
    s := &Service{fetch: f, log: logrus.StandardLogger(), now: time.Now, overview: DefaultOverview}
    for _, o := range opts { o(s) }
    return s
}

func (s *Service) today() time.Time { return market.Day(s.now()) }

// window returns the [today-days, today] range.
func (s *Service) window(days int) (time.Time, time.Time) {
    end := s.today()
    return end.AddDate(0, 0, -days), end
}

// render runs build and turns its error into an "Error:" line.
func (s *Service) render(name string, build func() (string, error)) string {
    out, err := build()
    metrics.ObserveReport(name, err == nil)
    if err == nil { return out }

    var ve *ValidationError
    if errors.As(err, &ve) {
        s.log.WithField("report", name).Debugf("rejected: %s", ve.Msg)
        return report.Errorf("%s", ve.Msg)
    }
    s.log.WithError(err).WithField("report", name).Warn("report failed")
    return report.Errorf("%v", err)
}

func requireSymbol(raw string) (market.Symbol, error) {
    sym, err := market.ParseSymbol(raw)
    if err != nil { return "", invalid("Symbol is required") }
    return sym, nil
}

func requirePeriod(days int) error {
    if days <= 0 { return invalid("Period days must be positive") }
    return nil
}

func requireSymbols(csv string) ([]market.Symbol, error) {
    syms := market.ParseSymbols(csv)
    if len(syms) == 0 { return nil, invalid("Symbols are required") }
    return syms, nil
}
