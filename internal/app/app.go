// Package app wires configuration into a ready service: HTTP client,
// provider adapters, rate limiter, symbol normalizer and fallback router.
package app

import (
    "time"

    "github.com/sirupsen/logrus"

    "cryptofeed/internal/config"
    "cryptofeed/internal/httpx"
    "cryptofeed/internal/provider"
    "cryptofeed/internal/provider/coingecko"
    "cryptofeed/internal/provider/coinmarketcap"
    "cryptofeed/internal/provider/cryptocompare"
    "cryptofeed/internal/provider/ratelimit"
    "cryptofeed/internal/provider/symbols"
    "cryptofeed/internal/provider/yahoo"
    "cryptofeed/internal/router"
    "cryptofeed/internal/service"
)

type App struct {
    Config  config.Config
    Log     *logrus.Logger
    Limiter *ratelimit.Limiter
    Symbols *symbols.Normalizer
    Router  *router.Router
    Service *service.Service
}

func New(cfg config.Config, log *logrus.Logger) (*App, error) {
    chains, err := cfg.ProviderChains()
    if err != nil { return nil, err }

    hc := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
    adapters := Adapters(cfg, hc)
    for _, a := range adapters {
        if !a.Credentialed() {
            log.WithField("provider", a.Provider()).WithField("request_type", a.RequestType()).
                Warn("provider credential missing; it will be skipped")
        }
    }

    limiter := ratelimit.New(cfg.Limits(), cfg.DefaultRequestsPerMinute)
    for id, rpm := range cfg.KeyedLimits() {
        limiter.SetLimit(id, rpm)
        log.WithField("provider", id).Infof("api key present, pacing at %d requests per minute", rpm)
    }
    limiter.OnGrant(func(id provider.ID, granted time.Time) {
        log.WithField("provider", id).WithField("slot", granted.Format(time.RFC3339Nano)).Trace("rate limit slot granted")
    })

    norm := symbols.New()
    for id, table := range cfg.SymbolOverrides() {
        for sym, providerID := range table { norm.Override(id, sym, providerID) }
    }

    r := router.New(chains, norm, limiter, log, adapters...)
    svc := service.New(r, service.WithLogger(log), service.WithOverviewSymbols(cfg.OverviewSymbols()))
    return &App{Config: cfg, Log: log, Limiter: limiter, Symbols: norm, Router: r, Service: svc}, nil
}

// Adapters builds the adapters of every enabled provider.
func Adapters(cfg config.Config, hc httpx.Doer) []provider.Adapter {
    var out []provider.Adapter
    if p := cfg.Provider(provider.CoinGecko); p.Enabled {
        out = append(out, coingecko.Adapters(coingecko.New(p.APIKey,
            coingecko.WithBaseURL(p.BaseURL), coingecko.WithHTTPClient(hc)))...)
    }
    if p := cfg.Provider(provider.CryptoCompare); p.Enabled {
        out = append(out, cryptocompare.Adapters(cryptocompare.New(p.APIKey,
            cryptocompare.WithBaseURL(p.BaseURL), cryptocompare.WithHTTPClient(hc)))...)
    }
    if p := cfg.Provider(provider.CoinMarketCap); p.Enabled {
        out = append(out, coinmarketcap.Adapters(coinmarketcap.New(p.APIKey,
            coinmarketcap.WithBaseURL(p.BaseURL), coinmarketcap.WithHTTPClient(hc)))...)
    }
    if p := cfg.Provider(provider.Yahoo); p.Enabled {
        out = append(out, yahoo.Adapters(yahoo.New(
            yahoo.WithBaseURL(p.BaseURL), yahoo.WithHTTPClient(hc)))...)
    }
    return out
}
