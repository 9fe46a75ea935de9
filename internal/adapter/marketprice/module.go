package marketprice

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/aurumdent/goldbuy/internal/config"
	"github.com/aurumdent/goldbuy/internal/usecase"
)

// Module exposes market feed client implementation to fx graph. When no
// feed address is configured the usecase layer receives a nil feed and
// falls back to carrying prices forward.
var Module = fx.Provide(newClient, asMarketFeed)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.MarketFeedAddress == "" {
		return nil, nil
	}
	return NewHTTPClient(p.Config.MarketFeedAddress, p.Logger)
}

func asMarketFeed(c Client) usecase.MarketFeed {
	if c == nil {
		return nil
	}
	return c
}
