package coinmarketcap

import (
	"context"

	"cryptofeed/internal/provider"
)

// Adapters returns the CoinMarketCap info adapter. It reports itself as not
// credentialed when the client has no key, so the router skips it.
func Adapters(c *Client) []provider.Adapter {
	return []provider.Adapter{
		&provider.FuncAdapter{
			ID: provider.CoinMarketCap, Type: provider.InfoRequest, Shape: provider.ShapeCoinMarketCapQuotes,
			HasCredential: c.HasKey,
			Call: func(ctx context.Context, req provider.Request) ([]byte, error) {
				return c.QuotesLatest(ctx, req.ID)
			},
		},
	}
}
