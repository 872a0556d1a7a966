package app

import (
	"log/slog"
	"time"

	"stockfeed/internal/aggregate"
	"stockfeed/internal/config"
	"stockfeed/internal/httpx"
	"stockfeed/internal/provider"
	"stockfeed/internal/provider/cache"
	"stockfeed/internal/provider/polygon"
	"stockfeed/internal/provider/ratelimit"
	"stockfeed/internal/slogx"
)

// ConfigPath is the config file location handed to the injector. Empty
// probes the working directory.
type ConfigPath string

// App holds application dependencies built by Wire.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Aggregator *aggregate.Aggregator
}

// ProvideConfig loads and validates config (for Wire).
func ProvideConfig(path ConfigPath) (*config.Config, error) {
	cfg, err := config.Load(string(path))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ProvideLogger builds the process logger from the log section (for Wire).
func ProvideLogger(cfg *config.Config) *slog.Logger {
	return slogx.NewDefault(cfg.Log.Level, cfg.Log.Format)
}

// ProvideHTTPClient creates the shared pooled transport (for Wire).
func ProvideHTTPClient(cfg *config.Config) *httpx.Client {
	return httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
}

// ProvideDoer puts the shared client behind the optional pacing gate (for Wire).
func ProvideDoer(cfg *config.Config, c *httpx.Client) httpx.Doer {
	p := cfg.Polygon
	return ratelimit.Wrap(c, p.MaxRequestsPerMinute, p.Burst, time.Duration(p.MinRequestIntervalSec)*time.Second)
}

// ProvidePolygonClient creates the Polygon client (for Wire).
func ProvidePolygonClient(cfg *config.Config, doer httpx.Doer, logger *slog.Logger) (*polygon.Client, error) {
	p := cfg.Polygon
	return polygon.New(p.APIKey,
		polygon.WithBaseURL(p.BaseURL),
		polygon.WithHTTPClient(doer),
		polygon.WithAuthMode(polygon.AuthMode(p.AuthMode)),
		polygon.WithSearchLimit(p.SearchLimit),
		polygon.WithHistoryLimit(p.HistoryLimit),
		polygon.WithLogger(logger.With("component", "polygon")),
	)
}

// ProvideResolver wraps the client with the lookup cache when a TTL is set (for Wire).
func ProvideResolver(cfg *config.Config, c *polygon.Client) provider.TickerResolver {
	if cfg.Polygon.LookupCacheTTLSec <= 0 {
		return c
	}
	ttl := time.Duration(cfg.Polygon.LookupCacheTTLSec) * time.Second
	return cache.NewResolver(c, ttl, cfg.Polygon.LookupCacheMaxItems)
}

// ProvideFavorites builds the favorites set from config (for Wire).
func ProvideFavorites(cfg *config.Config) aggregate.Favorites {
	return aggregate.NewStaticFavorites(cfg.Favorites)
}

// ProvideAggregator assembles the aggregator (for Wire).
func ProvideAggregator(
	cfg *config.Config,
	resolver provider.TickerResolver,
	quotes provider.QuoteFetcher,
	history provider.HistoryFetcher,
	news provider.NewsFetcher,
	favorites aggregate.Favorites,
	logger *slog.Logger,
) *aggregate.Aggregator {
	return aggregate.New(resolver, quotes, history, news,
		aggregate.WithFavorites(favorites),
		aggregate.WithMaxConcurrency(cfg.Polygon.MaxConcurrency),
		aggregate.WithLogger(logger.With("component", "aggregate")),
	)
}
