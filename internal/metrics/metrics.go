package metrics

import (
    "net/http"
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
    // Registry holds the cryptofeed collectors.
    Registry = prometheus.NewRegistry()

    providerAttempts = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "cryptofeed",
            Subsystem: "provider",
            Name:      "attempts_total",
            Help:      "Provider adapter attempts by outcome.",
        },
        []string{"provider", "request_type", "outcome"},
    )

    providerDuration = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "cryptofeed",
            Subsystem: "provider",
            Name:      "fetch_seconds",
            Help:      "Duration of provider adapter calls.",
            Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
        },
        []string{"provider", "request_type"},
    )

    rateLimitWait = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "cryptofeed",
            Subsystem: "ratelimit",
            Name:      "wait_seconds",
            Help:      "Time spent waiting for a provider slot.",
            Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
        },
        []string{"provider"},
    )

    chainExhausted = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "cryptofeed",
            Subsystem: "router",
            Name:      "exhausted_total",
            Help:      "Fetches where every provider in the chain failed.",
        },
        []string{"request_type"},
    )

    reports = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "cryptofeed",
            Subsystem: "service",
            Name:      "reports_total",
            Help:      "Text reports produced, by report and result.",
        },
        []string{"report", "result"},
    )
)

func init() {
    Registry.MustRegister(
        providerAttempts,
        providerDuration,
        rateLimitWait,
        chainExhausted,
        reports,
        prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
        prometheus.NewGoCollector(),
    )
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
    return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveAttempt(provider, requestType, outcome string, d time.Duration) {
    providerAttempts.WithLabelValues(provider, requestType, outcome).Inc()
    if outcome != "skipped" {
        providerDuration.WithLabelValues(provider, requestType).Observe(d.Seconds())
    }
}

func ObserveWait(provider string, d time.Duration) {
    rateLimitWait.WithLabelValues(provider).Observe(d.Seconds())
}

func ObserveExhausted(requestType string) {
    chainExhausted.WithLabelValues(requestType).Inc()
}

func ObserveReport(report string, ok bool) {
    result := "ok"
    if !ok { result = "error" }
    reports.WithLabelValues(report, result).Inc()
}
