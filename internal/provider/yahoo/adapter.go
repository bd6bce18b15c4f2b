package yahoo

import (
	"context"

	"cryptofeed/internal/provider"
)

// Adapters returns the Yahoo Finance adapters: daily history and a quote-based info record.
func Adapters(c *Client) []provider.Adapter {
	return []provider.Adapter{
		&provider.FuncAdapter{
			ID: provider.Yahoo, Type: provider.PriceHistory, Shape: provider.ShapeYahooChart,
			Call: func(ctx context.Context, req provider.Request) ([]byte, error) {
				return c.DailyChart(ctx, req.ID, req.Start, req.End)
			},
		},
		&provider.FuncAdapter{
			ID: provider.Yahoo, Type: provider.InfoRequest, Shape: provider.ShapeYahooChart,
			Call: func(ctx context.Context, req provider.Request) ([]byte, error) {
				return c.Quote(ctx, req.ID)
			},
		},
	}
}
