//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"stockfeed/internal/provider"
	"stockfeed/internal/provider/polygon"
)

// InitializeApp builds App (Config + Logger + Aggregator) via Wire.
func InitializeApp(path ConfigPath) (*App, error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideHTTPClient,
		ProvideDoer,
		ProvidePolygonClient,
		ProvideResolver,
		ProvideFavorites,
		ProvideAggregator,
		wire.Bind(new(provider.QuoteFetcher), new(*polygon.Client)),
		wire.Bind(new(provider.HistoryFetcher), new(*polygon.Client)),
		wire.Bind(new(provider.NewsFetcher), new(*polygon.Client)),
		wire.Struct(new(App), "Config", "Logger", "Aggregator"),
	)
	return nil, nil
}
