package main

import (
    "compress/gzip"
    "context"
    "io"
    "net/http"
    "strconv"
    "strings"
    "sync"
    "time"

    "github.com/gorilla/mux"
    "github.com/sirupsen/logrus"

    "cryptofeed/internal/metrics"
)

// reports is the text API served over HTTP.
type reports interface {
    CryptoData(ctx context.Context, symbol, start, end string) string
    CryptoInfo(ctx context.Context, symbol string) string
    CryptoNews(ctx context.Context, symbol string) string
    SocialSentiment(ctx context.Context, symbol string) string
    AnalyzeMarket(ctx context.Context, symbol string, periodDays int) string
    Portfolio(ctx context.Context, symbolsCSV string, periodDays int) string
    Correlation(ctx context.Context, symbolsCSV string, periodDays int) string
    MarketOverview(ctx context.Context) string
    TechnicalIndicators(ctx context.Context, symbol, indicatorsCSV, currDate string, lookBackDays int) string
}

func newRouter(svc reports, log logrus.FieldLogger) http.Handler {
    r := mux.NewRouter()
    r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    }).Methods(http.MethodGet)
    r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

    api := r.PathPrefix("/api/v1").Subrouter()
    // recoverPanic must stay inside withGzip or a panic leaves an implicit 200.
    api.Use(withTextHeaders, withGzip, func(next http.Handler) http.Handler { return recoverPanic(log, next) })
    text := func(path string, fn func(r *http.Request) string) {
        api.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
            _, _ = io.WriteString(w, fn(r))
        }).Methods(http.MethodGet)
    }

    text("/data/{symbol}", func(r *http.Request) string {
        q := r.URL.Query()
        return svc.CryptoData(r.Context(), mux.Vars(r)["symbol"], q.Get("start"), q.Get("end"))
    })
    text("/info/{symbol}", func(r *http.Request) string { return svc.CryptoInfo(r.Context(), mux.Vars(r)["symbol"]) })
    text("/news/{symbol}", func(r *http.Request) string { return svc.CryptoNews(r.Context(), mux.Vars(r)["symbol"]) })
    text("/sentiment/{symbol}", func(r *http.Request) string { return svc.SocialSentiment(r.Context(), mux.Vars(r)["symbol"]) })
    text("/analyze/{symbol}", func(r *http.Request) string {
        days, msg := intParam(r, "days", 30)
        if msg != "" { return msg }
        return svc.AnalyzeMarket(r.Context(), mux.Vars(r)["symbol"], days)
    })
    text("/portfolio", func(r *http.Request) string {
        days, msg := intParam(r, "days", 30)
        if msg != "" { return msg }
        return svc.Portfolio(r.Context(), r.URL.Query().Get("symbols"), days)
    })
    text("/correlation", func(r *http.Request) string {
        days, msg := intParam(r, "days", 90)
        if msg != "" { return msg }
        return svc.Correlation(r.Context(), r.URL.Query().Get("symbols"), days)
    })
    text("/overview", func(r *http.Request) string { return svc.MarketOverview(r.Context()) })
    text("/indicators/{symbol}", func(r *http.Request) string {
        days, msg := intParam(r, "look_back", 30)
        if msg != "" { return msg }
        q := r.URL.Query()
        return svc.TechnicalIndicators(r.Context(), mux.Vars(r)["symbol"], q.Get("indicators"), q.Get("date"), days)
    })

    return withRequestLog(log, r)
}

// intParam reads an optional integer query parameter. A non-empty msg is the
// error text to send back.
func intParam(r *http.Request, name string, def int) (int, string) {
    v := strings.TrimSpace(r.URL.Query().Get(name))
    if v == "" { return def, "" }
    n, err := strconv.Atoi(v)
    if err != nil { return 0, "Error: " + name + " must be an integer" }
    return n, ""
}

func withTextHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "text/plain; charset=utf-8")
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        next.ServeHTTP(gzipResponseWriter{ResponseWriter: w, Writer: gz}, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) { return g.Writer.Write(b) }

type statusRecorder struct {
    http.ResponseWriter
    status int
}

func (s *statusRecorder) WriteHeader(code int) {
    s.status = code
    s.ResponseWriter.WriteHeader(code)
}

func withRequestLog(log logrus.FieldLogger, next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        began := time.Now()
        rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
        next.ServeHTTP(rec, r)
        log.WithFields(logrus.Fields{
            "method": r.Method,
            "path":   r.URL.Path,
            "status": rec.status,
            "took":   time.Since(began).String(),
        }).Debug("request served")
    })
}

// recoverPanic protects handlers from panics.
func recoverPanic(log logrus.FieldLogger, next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                log.WithField("path", r.URL.Path).Errorf("panic: %v", rec)
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
