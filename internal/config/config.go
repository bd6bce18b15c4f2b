package config

import (
    "errors"
    "fmt"
    "os"
    "strconv"
    "strings"

    "github.com/joho/godotenv"
    "github.com/robfig/cron/v3"
    "github.com/sirupsen/logrus"
    "gopkg.in/yaml.v3"

    "cryptofeed/internal/market"
    "cryptofeed/internal/provider"
)

type Server struct {
    Port               string `yaml:"port"`
    RequestTimeoutSec  int    `yaml:"request_timeout_sec"`
    ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec"`
}

type Logging struct {
    Level  string `yaml:"level"`
    Format string `yaml:"format"`
}

// Provider configures one upstream source. KeyedRequestsPerMinute applies
// instead of RequestsPerMinute when an API key is present.
type Provider struct {
    Enabled                bool   `yaml:"enabled"`
    BaseURL                string `yaml:"base_url"`
    APIKey                 string `yaml:"api_key"`
    RequestsPerMinute      int    `yaml:"requests_per_minute"`
    KeyedRequestsPerMinute int    `yaml:"keyed_requests_per_minute"`
    // Symbols maps canonical symbols to this provider's identifiers,
    // ahead of the built-in tables.
    Symbols map[string]string `yaml:"symbols,omitempty"`
}

type Overview struct {
    Symbols  []string `yaml:"symbols"`
    // Schedule is a cron spec for logging the overview; empty disables the job.
    Schedule string `yaml:"schedule"`
}

type Config struct {
    Server                   Server              `yaml:"server"`
    Logging                  Logging             `yaml:"logging"`
    DefaultRequestsPerMinute int                 `yaml:"default_requests_per_minute"`
    Providers                map[string]Provider `yaml:"providers"`
    // Chains lists provider ids per request type in fallback order.
    Chains   map[string][]string `yaml:"chains"`
    Overview Overview            `yaml:"overview"`
}

func Default() Config {
    return Config{
        Server:                   Server{Port: "8080", RequestTimeoutSec: 30, ShutdownTimeoutSec: 5},
        Logging:                  Logging{Level: "info", Format: "text"},
        DefaultRequestsPerMinute: 10,
        Providers: map[string]Provider{
            string(provider.CoinGecko):     {Enabled: true, RequestsPerMinute: 10, KeyedRequestsPerMinute: 30},
            string(provider.CryptoCompare): {Enabled: true, RequestsPerMinute: 10, KeyedRequestsPerMinute: 50},
            string(provider.CoinMarketCap): {Enabled: true, RequestsPerMinute: 30},
            string(provider.Yahoo):         {Enabled: true, RequestsPerMinute: 10},
        },
        Chains: map[string][]string{
            string(provider.PriceHistory): {"coingecko", "cryptocompare", "yahoo"},
            string(provider.InfoRequest):  {"coingecko", "coinmarketcap", "yahoo"},
            string(provider.NewsRequest):  {"cryptocompare", "coingecko"},
            string(provider.Community):    {"coingecko"},
        },
        Overview: Overview{Symbols: []string{"BTC-USD", "ETH-USD", "ADA-USD", "SOL-USD", "DOGE-USD"}},
    }
}

// Load reads YAML (or JSON) config from path. If path is empty it tries
// config.yaml then config.json, falling back to defaults. A .env file in the
// working directory is loaded first; environment variables override the file.
func Load(path string) (Config, error) {
    if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
        return Default(), fmt.Errorf("load .env: %w", err)
    }
    cfg := Default()
    if path == "" {
        for _, p := range []string{"config.yaml", "config.yml", "config.json"} {
            if _, err := os.Stat(p); err == nil { path = p; break }
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := Parse(b, &cfg); err != nil { return cfg, err }
        }
    }
    applyEnv(&cfg)
    return cfg, cfg.Validate()
}

// Parse decodes b over cfg. Provider entries are merged field by field so a
// file that only sets an api_key keeps the default limits.
func Parse(b []byte, cfg *Config) error {
    var raw struct {
        Providers map[string]yaml.Node `yaml:"providers"`
    }
    if err := yaml.Unmarshal(b, &raw); err != nil { return fmt.Errorf("parse config: %w", err) }

    providers := make(map[string]Provider, len(cfg.Providers))
    for k, v := range cfg.Providers { providers[k] = v }
    for name, node := range raw.Providers {
        id, err := provider.ParseID(name)
        if err != nil { return fmt.Errorf("parse config: providers: %w", err) }
        p := providers[string(id)]
        if err := node.Decode(&p); err != nil { return fmt.Errorf("parse config: providers.%s: %w", name, err) }
        providers[string(id)] = p
    }

    if err := yaml.Unmarshal(b, cfg); err != nil { return fmt.Errorf("parse config: %w", err) }
    cfg.Providers = providers
    return nil
}

var keyEnv = map[provider.ID]string{
    provider.CoinGecko:     "COINGECKO_API_KEY",
    provider.CryptoCompare: "CRYPTOCOMPARE_API_KEY",
    provider.CoinMarketCap: "COINMARKETCAP_API_KEY",
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if x, ok := envInt("REQUEST_TIMEOUT_SEC"); ok && x > 0 { cfg.Server.RequestTimeoutSec = x }
    if x, ok := envInt("DEFAULT_REQUESTS_PER_MINUTE"); ok && x > 0 { cfg.DefaultRequestsPerMinute = x }
    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Logging.Level = v }
    if v := os.Getenv("LOG_FORMAT"); v != "" { cfg.Logging.Format = v }
    if v := os.Getenv("OVERVIEW_SYMBOLS"); v != "" { cfg.Overview.Symbols = splitCSV(v) }
    if v := os.Getenv("OVERVIEW_SCHEDULE"); v != "" { cfg.Overview.Schedule = v }

    for id, key := range keyEnv {
        if v := os.Getenv(key); v != "" {
            p := cfg.Providers[string(id)]
            p.APIKey = v
            cfg.Providers[string(id)] = p
        }
    }
    for _, rt := range provider.RequestTypes {
        if v := os.Getenv("CHAIN_" + strings.ToUpper(string(rt))); v != "" { cfg.Chains[string(rt)] = splitCSV(v) }
    }
}

// Validate checks everything the wiring depends on.
func (c Config) Validate() error {
    var errs []error
    if c.Server.RequestTimeoutSec <= 0 { errs = append(errs, errors.New("server.request_timeout_sec must be positive")) }
    if c.DefaultRequestsPerMinute <= 0 { errs = append(errs, errors.New("default_requests_per_minute must be positive")) }
    if _, err := logrus.ParseLevel(c.Logging.Level); err != nil { errs = append(errs, fmt.Errorf("logging.level: %w", err)) }
    switch strings.ToLower(c.Logging.Format) {
    case "", "text", "json":
    default:
        errs = append(errs, fmt.Errorf("logging.format %q: want text or json", c.Logging.Format))
    }
    for name, p := range c.Providers {
        if _, err := provider.ParseID(name); err != nil { errs = append(errs, err) }
        if p.RequestsPerMinute < 0 || p.KeyedRequestsPerMinute < 0 {
            errs = append(errs, fmt.Errorf("providers.%s: requests per minute cannot be negative", name))
        }
        for sym, id := range p.Symbols {
            if strings.TrimSpace(sym) == "" || strings.TrimSpace(id) == "" {
                errs = append(errs, fmt.Errorf("providers.%s.symbols: empty entry %q: %q", name, sym, id))
            }
        }
    }
    if _, err := c.ProviderChains(); err != nil { errs = append(errs, err) }
    if c.Overview.Schedule != "" {
        if _, err := cron.ParseStandard(c.Overview.Schedule); err != nil {
            errs = append(errs, fmt.Errorf("overview.schedule: %w", err))
        }
    }
    return errors.Join(errs...)
}

// ProviderChains returns the parsed fallback chains. Disabled providers are
// dropped from every chain.
func (c Config) ProviderChains() (map[provider.RequestType][]provider.ID, error) {
    out := make(map[provider.RequestType][]provider.ID, len(c.Chains))
    for name, ids := range c.Chains {
        rt, err := provider.ParseRequestType(name)
        if err != nil { return nil, fmt.Errorf("chains: %w", err) }
        chain := make([]provider.ID, 0, len(ids))
        for _, raw := range ids {
            id, err := provider.ParseID(raw)
            if err != nil { return nil, fmt.Errorf("chains.%s: %w", name, err) }
            if p, ok := c.Providers[string(id)]; ok && !p.Enabled { continue }
            chain = append(chain, id)
        }
        out[rt] = chain
    }
    return out, nil
}

// Limits returns the base requests-per-minute per provider.
func (c Config) Limits() map[provider.ID]int {
    out := make(map[provider.ID]int, len(c.Providers))
    for name, p := range c.Providers {
        id, err := provider.ParseID(name)
        if err != nil || p.RequestsPerMinute <= 0 { continue }
        out[id] = p.RequestsPerMinute
    }
    return out
}

// KeyedLimits returns the higher tier of every provider that has an API key
// and a keyed limit configured.
func (c Config) KeyedLimits() map[provider.ID]int {
    out := make(map[provider.ID]int)
    for name, p := range c.Providers {
        id, err := provider.ParseID(name)
        if err != nil || p.APIKey == "" || p.KeyedRequestsPerMinute <= 0 { continue }
        out[id] = p.KeyedRequestsPerMinute
    }
    return out
}

// SymbolOverrides returns the configured symbol tables per provider.
func (c Config) SymbolOverrides() map[provider.ID]map[market.Symbol]string {
    out := make(map[provider.ID]map[market.Symbol]string)
    for name, p := range c.Providers {
        id, err := provider.ParseID(name)
        if err != nil || len(p.Symbols) == 0 { continue }
        table := make(map[market.Symbol]string, len(p.Symbols))
        for raw, v := range p.Symbols {
            sym, err := market.ParseSymbol(raw)
            if err != nil || strings.TrimSpace(v) == "" { continue }
            table[sym] = strings.TrimSpace(v)
        }
        out[id] = table
    }
    return out
}

func (c Config) Provider(id provider.ID) Provider { return c.Providers[string(id)] }

func (c Config) OverviewSymbols() []market.Symbol {
    return market.ParseSymbols(strings.Join(c.Overview.Symbols, ","))
}

// Logger builds the process logger from the logging section.
func (c Config) Logger() *logrus.Logger {
    log := logrus.New()
    if lvl, err := logrus.ParseLevel(c.Logging.Level); err == nil { log.SetLevel(lvl) }
    if strings.EqualFold(c.Logging.Format, "json") {
        log.SetFormatter(&logrus.JSONFormatter{})
    } else {
        log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
    }
    return log
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) { return yaml.Marshal(cfg) }

func envInt(key string) (int, bool) {
    v := os.Getenv(key)
    if v == "" { return 0, false }
    x, err := strconv.Atoi(strings.TrimSpace(v))
    return x, err == nil
}

func splitCSV(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p != "" { out = append(out, p) }
    }
    return out
}
