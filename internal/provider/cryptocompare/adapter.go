package cryptocompare

import (
	"context"

	"cryptofeed/internal/provider"
)

// Adapters returns the CryptoCompare adapters: daily OHLCV history and news.
func Adapters(c *Client) []provider.Adapter {
	return []provider.Adapter{
		&provider.FuncAdapter{
			ID: provider.CryptoCompare, Type: provider.PriceHistory, Shape: provider.ShapeCryptoCompareDaily,
			Call: func(ctx context.Context, req provider.Request) ([]byte, error) {
				return c.HistoDay(ctx, req.ID, req.Start, req.End)
			},
		},
		&provider.FuncAdapter{
			ID: provider.CryptoCompare, Type: provider.NewsRequest, Shape: provider.ShapeCryptoCompareNews,
			Call: func(ctx context.Context, req provider.Request) ([]byte, error) {
				return c.News(ctx, req.ID)
			},
		},
	}
}
