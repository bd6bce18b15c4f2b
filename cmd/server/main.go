package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/robfig/cron/v3"
    "github.com/sirupsen/logrus"
    "golang.org/x/sync/errgroup"

    "cryptofeed/internal/app"
    "cryptofeed/internal/config"
)

func main() {
    cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
    if err != nil { logrus.Fatalf("config: %v", err) }
    log := cfg.Logger()

    a, err := app.New(cfg, log)
    if err != nil { log.Fatalf("wiring: %v", err) }

    srv := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           newRouter(a.Service, log),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        // Reports walk fallback chains sequentially under per-provider pacing.
        WriteTimeout: 5 * time.Minute,
        IdleTimeout:  60 * time.Second,
    }

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    g, gctx := errgroup.WithContext(ctx)

    g.Go(func() error {
        log.Infof("server listening on :%s", cfg.Server.Port)
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) { return err }
        return nil
    })
    g.Go(func() error {
        <-gctx.Done()
        shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
        defer cancel()
        return srv.Shutdown(shutdownCtx)
    })
    if cfg.Overview.Schedule != "" {
        g.Go(func() error { return runOverviewJob(gctx, cfg.Overview.Schedule, a, log) })
    }

    if err := g.Wait(); err != nil { log.Fatalf("server: %v", err) }
    log.Info("server stopped")
}

// runOverviewJob logs the market overview on schedule until ctx is done.
func runOverviewJob(ctx context.Context, spec string, a *app.App, log logrus.FieldLogger) error {
    c := cron.New(cron.WithLogger(cron.PrintfLogger(log)))
    _, err := c.AddFunc(spec, func() {
        jobCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
        defer cancel()
        log.WithField("job", "overview").Info("\n" + a.Service.MarketOverview(jobCtx))
    })
    if err != nil { return err }
    c.Start()
    <-ctx.Done()
    <-c.Stop().Done()
    return nil
}
