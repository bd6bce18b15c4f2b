package coingecko

import (
	"context"

	"cryptofeed/internal/provider"
)

// Adapters returns the CoinGecko adapters: daily history, info, news and community.
func Adapters(c *Client) []provider.Adapter {
	return []provider.Adapter{
		&provider.FuncAdapter{
			ID: provider.CoinGecko, Type: provider.PriceHistory, Shape: provider.ShapeCoinGeckoChart,
			Call: func(ctx context.Context, req provider.Request) ([]byte, error) {
				return c.MarketChartRange(ctx, req.ID, req.Start, req.End)
			},
		},
		&provider.FuncAdapter{
			ID: provider.CoinGecko, Type: provider.InfoRequest, Shape: provider.ShapeCoinGeckoCoin,
			Call: func(ctx context.Context, req provider.Request) ([]byte, error) {
				return c.Coin(ctx, req.ID)
			},
		},
		&provider.FuncAdapter{
			ID: provider.CoinGecko, Type: provider.NewsRequest, Shape: provider.ShapeCoinGeckoStatus,
			Call: func(ctx context.Context, req provider.Request) ([]byte, error) {
				return c.StatusUpdates(ctx, req.ID)
			},
		},
		&provider.FuncAdapter{
			ID: provider.CoinGecko, Type: provider.Community, Shape: provider.ShapeCoinGeckoCoin,
			Call: func(ctx context.Context, req provider.Request) ([]byte, error) {
				return c.Coin(ctx, req.ID)
			},
		},
	}
}
