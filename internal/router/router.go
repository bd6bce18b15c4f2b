// Package router runs a request through an ordered chain of provider
// adapters and returns the first normalized success.
package router

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/sirupsen/logrus"

    "cryptofeed/internal/market"
    "cryptofeed/internal/metrics"
    "cryptofeed/internal/normalize"
    "cryptofeed/internal/provider"
)

var ErrExhausted = errors.New("all providers failed")

// Resolver maps a canonical symbol to a provider identifier.
type Resolver interface {
    Resolve(symbol market.Symbol, id provider.ID) string
}

// Pacer blocks until a provider may be called.
type Pacer interface {
    Acquire(ctx context.Context, id provider.ID) error
}

// Attempt records what happened with one provider in a chain.
type Attempt struct {
    Provider provider.ID
    Outcome  string
    Err      error
}

// ExhaustedError is returned when every provider in the chain failed or was skipped.
type ExhaustedError struct {
    RequestType provider.RequestType
    Symbol      market.Symbol
    Attempts    []Attempt
}

func (e *ExhaustedError) Error() string {
    var b strings.Builder
    fmt.Fprintf(&b, "all providers failed for %s %s", e.RequestType, e.Symbol)
    if len(e.Attempts) == 0 {
        b.WriteString(": no providers configured")
        return b.String()
    }
    for i, a := range e.Attempts {
        sep := "; "
        if i == 0 { sep = ": " }
        fmt.Fprintf(&b, "%s%s (%s): %v", sep, a.Provider, a.Outcome, a.Err)
    }
    return b.String()
}

func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

type key struct {
    id provider.ID
    rt provider.RequestType
}

// Router holds the configured chains and the adapters registered for them.
type Router struct {
    chains   map[provider.RequestType][]provider.ID
    adapters map[key]provider.Adapter
    resolver Resolver
    pacer    Pacer
    log      logrus.FieldLogger
}

func New(chains map[provider.RequestType][]provider.ID, resolver Resolver, pacer Pacer, log logrus.FieldLogger, adapters ...provider.Adapter) *Router {
    r := &Router{
        chains:   make(map[provider.RequestType][]provider.ID, len(chains)),
        adapters: make(map[key]provider.Adapter, len(adapters)),
        resolver: resolver,
        pacer:    pacer,
        log:      log,
    }
    for rt, ids := range chains {
        r.chains[rt] = append([]provider.ID(nil), ids...)
    }
    for _, a := range adapters {
        r.adapters[key{a.Provider(), a.RequestType()}] = a
    }
    return r
}

// Chain returns the ordered providers for rt.
func (r *Router) Chain(rt provider.RequestType) []provider.ID {
    return append([]provider.ID(nil), r.chains[rt]...)
}

func (r *Router) FetchSeries(ctx context.Context, symbol market.Symbol, start, end time.Time) (*market.Series, error) {
    start, end = market.Day(start), market.Day(end)
    return run(ctx, r, provider.PriceHistory, provider.Request{Symbol: symbol, Start: start, End: end},
        func(p provider.Payload) (*market.Series, error) { return normalize.Series(p, symbol, start, end) })
}

func (r *Router) FetchInfo(ctx context.Context, symbol market.Symbol) (*market.Info, error) {
    return run(ctx, r, provider.InfoRequest, provider.Request{Symbol: symbol},
        func(p provider.Payload) (*market.Info, error) { return normalize.Info(p, symbol) })
}

func (r *Router) FetchCommunity(ctx context.Context, symbol market.Symbol) (*market.Info, error) {
    return run(ctx, r, provider.Community, provider.Request{Symbol: symbol},
        func(p provider.Payload) (*market.Info, error) { return normalize.Info(p, symbol) })
}

func (r *Router) FetchNews(ctx context.Context, symbol market.Symbol) ([]market.NewsItem, error) {
    return run(ctx, r, provider.NewsRequest, provider.Request{Symbol: symbol},
        func(p provider.Payload) ([]market.NewsItem, error) { return normalize.News(p) })
}

// run tries each provider of the chain in order, one at a time. The first
// success is returned at once; later providers are never called.
func run[T any](ctx context.Context, r *Router, rt provider.RequestType, req provider.Request, convert func(provider.Payload) (T, error)) (T, error) {
    var zero T
    log := r.log.WithFields(logrus.Fields{
        "request_id":   uuid.NewString(),
        "request_type": string(rt),
        "symbol":       string(req.Symbol),
    })

    exhausted := &ExhaustedError{RequestType: rt, Symbol: req.Symbol}
    for _, id := range r.chains[rt] {
        if err := ctx.Err(); err != nil { return zero, err }
        plog := log.WithField("provider", string(id))

        a, ok := r.adapters[key{id, rt}]
        if !ok {
            exhausted.Attempts = append(exhausted.Attempts, Attempt{Provider: id, Outcome: "skipped", Err: errors.New("no adapter registered")})
            plog.Debug("provider has no adapter for request type")
            continue
        }
        if !a.Credentialed() {
            exhausted.Attempts = append(exhausted.Attempts, Attempt{Provider: id, Outcome: "skipped", Err: errors.New("missing credential")})
            metrics.ObserveAttempt(string(id), string(rt), "skipped", 0)
            plog.Info("skipping provider without credential")
            continue
        }

        req.ID = r.resolver.Resolve(req.Symbol, id)
        if err := r.pacer.Acquire(ctx, id); err != nil { return zero, fmt.Errorf("rate limiter %s: %w", id, err) }

        began := time.Now()
        out := a.Fetch(ctx, req)
        var v T
        if out.OK() {
            var err error
            if v, err = convert(out.Payload); err != nil { out = provider.Classify(err) }
        }
        took := time.Since(began)
        metrics.ObserveAttempt(string(id), string(rt), out.Status.String(), took)

        if out.OK() {
            plog.WithFields(logrus.Fields{"provider_id": req.ID, "took": took.String()}).Debug("provider fetch succeeded")
            return v, nil
        }

        exhausted.Attempts = append(exhausted.Attempts, Attempt{Provider: id, Outcome: out.Status.String(), Err: out.Err})
        plog.WithFields(logrus.Fields{
            "provider_id": req.ID,
            "outcome":     out.Status.String(),
            "took":        took.String(),
        }).WithError(out.Err).Warn("provider fetch failed, trying next")
    }

    metrics.ObserveExhausted(string(rt))
    log.WithError(exhausted).Error("fallback chain exhausted")
    return zero, exhausted
}
