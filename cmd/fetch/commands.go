package main

import (
    "context"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/spf13/cobra"

    "cryptofeed/internal/app"
    "cryptofeed/internal/config"
    "cryptofeed/internal/provider"
    "cryptofeed/internal/service"
)

type rootOpts struct {
    configPath string
    timeout    time.Duration
    svc        *service.Service
}

func newRootCmd() *cobra.Command {
    opts := &rootOpts{}
    root := &cobra.Command{
        Use:           "fetch",
        Short:         "Query crypto market data through the provider fallback chains",
        SilenceUsage:  true,
        SilenceErrors: true,
    }
    root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.yaml (optional)")
    root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall deadline for one report")

    root.AddCommand(
        newDataCmd(opts),
        symbolCmd(opts, "info", "Print instrument info", (*service.Service).CryptoInfo),
        symbolCmd(opts, "news", "Print recent news", (*service.Service).CryptoNews),
        symbolCmd(opts, "sentiment", "Print community figures", (*service.Service).SocialSentiment),
        periodCmd(opts, "analyze", "Single-asset analysis with info, news and sentiment", 30, (*service.Service).AnalyzeMarket),
        periodCmd(opts, "portfolio", "Portfolio analysis over comma-separated symbols", 30, (*service.Service).Portfolio),
        periodCmd(opts, "correlation", "Pairwise correlation over comma-separated symbols", 90, (*service.Service).Correlation),
        newOverviewCmd(opts),
        newIndicatorsCmd(opts),
        newConfigCmd(opts),
    )
    return root
}

// build returns the wired service once per invocation.
func (o *rootOpts) build() (*service.Service, error) {
    if o.svc != nil { return o.svc, nil }
    cfg, err := config.Load(o.configPath)
    if err != nil { return nil, fmt.Errorf("config: %w", err) }
    a, err := app.New(cfg, cfg.Logger())
    if err != nil { return nil, err }
    o.svc = a.Service
    return o.svc, nil
}

// print runs one report and turns an "Error:" result into a non-zero exit.
func (o *rootOpts) print(cmd *cobra.Command, report func(ctx context.Context, svc *service.Service) string) error {
    svc, err := o.build()
    if err != nil { return err }
    ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
    defer cancel()
    out := report(ctx, svc)
    fmt.Fprintln(cmd.OutOrStdout(), out)
    if strings.HasPrefix(out, "Error:") { return fmt.Errorf("%s failed", cmd.Name()) }
    return nil
}

func newDataCmd(opts *rootOpts) *cobra.Command {
    var start, end string
    cmd := &cobra.Command{
        Use:   "data SYMBOL",
        Short: "Print daily OHLCV as CSV",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            return opts.print(cmd, func(ctx context.Context, svc *service.Service) string {
                return svc.CryptoData(ctx, args[0], start, end)
            })
        },
    }
    cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD")
    cmd.Flags().StringVar(&end, "end", "", "last date, YYYY-MM-DD (default today)")
    _ = cmd.MarkFlagRequired("start")
    return cmd
}

func symbolCmd(opts *rootOpts, use, short string, fn func(*service.Service, context.Context, string) string) *cobra.Command {
    return &cobra.Command{
        Use:   use + " SYMBOL",
        Short: short,
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            return opts.print(cmd, func(ctx context.Context, svc *service.Service) string { return fn(svc, ctx, args[0]) })
        },
    }
}

func periodCmd(opts *rootOpts, use, short string, defDays int, fn func(*service.Service, context.Context, string, int) string) *cobra.Command {
    var days int
    cmd := &cobra.Command{
        Use:   use + " SYMBOL[,SYMBOL...]",
        Short: short,
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            return opts.print(cmd, func(ctx context.Context, svc *service.Service) string { return fn(svc, ctx, args[0], days) })
        },
    }
    cmd.Flags().IntVar(&days, "days", defDays, "period in days")
    return cmd
}

func newOverviewCmd(opts *rootOpts) *cobra.Command {
    return &cobra.Command{
        Use:   "overview",
        Short: "Print price and 24h change for the major coins",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, _ []string) error {
            return opts.print(cmd, func(ctx context.Context, svc *service.Service) string { return svc.MarketOverview(ctx) })
        },
    }
}

func newIndicatorsCmd(opts *rootOpts) *cobra.Command {
    var (
        indicators string
        date       string
        lookBack   int
    )
    cmd := &cobra.Command{
        Use:   "indicators SYMBOL",
        Short: "Print indicator values over a look-back window",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            return opts.print(cmd, func(ctx context.Context, svc *service.Service) string {
                return svc.TechnicalIndicators(ctx, args[0], indicators, date, lookBack)
            })
        },
    }
    cmd.Flags().StringVar(&indicators, "indicators", service.DefaultIndicators, "comma-separated indicator names")
    cmd.Flags().StringVar(&date, "date", "", "reference date, YYYY-MM-DD (default today)")
    cmd.Flags().IntVar(&lookBack, "look-back", 30, "days to report before the reference date")
    return cmd
}

func newConfigCmd(opts *rootOpts) *cobra.Command {
    cmd := &cobra.Command{Use: "config", Short: "Inspect configuration"}
    cmd.AddCommand(
        &cobra.Command{
            Use:   "init",
            Short: "Print the default configuration as YAML",
            Args:  cobra.NoArgs,
            RunE: func(cmd *cobra.Command, _ []string) error {
                b, err := config.Marshal(config.Default())
                if err != nil { return err }
                _, err = cmd.OutOrStdout().Write(b)
                return err
            },
        },
        &cobra.Command{
            Use:   "validate",
            Short: "Load the configuration and report problems",
            Args:  cobra.NoArgs,
            RunE: func(cmd *cobra.Command, _ []string) error {
                cfg, err := config.Load(opts.configPath)
                if err != nil { return err }
                chains, _ := cfg.ProviderChains()
                for _, rt := range provider.RequestTypes {
                    fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", rt, chains[rt])
                }
                fmt.Fprintln(cmd.OutOrStdout(), "config ok")
                return nil
            },
        },
    )
    return cmd
}
