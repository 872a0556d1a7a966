package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"stockfeed/internal/provider"
)

// LookupFailedName is the company name of a record whose symbol the
// upstream did not confirm.
const LookupFailedName = "[lookup failed]"

// ErrEmptySymbol is returned by single-symbol operations given a blank symbol.
var ErrEmptySymbol = errors.New("symbol is required")

// Aggregator combines ticker resolution and quotes into display records.
// Every batch fans out one task per item and waits for all of them.
type Aggregator struct {
	resolver  provider.TickerResolver
	quotes    provider.QuoteFetcher
	history   provider.HistoryFetcher
	news      provider.NewsFetcher
	favorites Favorites
	logger    *slog.Logger

	maxConcurrency int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFavorites sets the favorites used to mark records.
func WithFavorites(f Favorites) Option {
	return func(a *Aggregator) {
		if f != nil {
			a.favorites = f
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMaxConcurrency caps in-flight tasks per batch. n <= 0 means no cap.
func WithMaxConcurrency(n int) Option {
	return func(a *Aggregator) {
		a.maxConcurrency = n
	}
}

func New(resolver provider.TickerResolver, quotes provider.QuoteFetcher, history provider.HistoryFetcher, news provider.NewsFetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		resolver:  resolver,
		quotes:    quotes,
		history:   history,
		news:      news,
		favorites: NewStaticFavorites(nil),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SearchStocks resolves query to tickers and prices each one.
//
// A failed search fails the whole call. After that, a missing quote only
// strips prices from its own record; every resolved ticker yields exactly
// one record, in search order. A blank query returns an empty list
// without calling upstream.
func (a *Aggregator) SearchStocks(ctx context.Context, query string) ([]provider.EnrichedStock, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []provider.EnrichedStock{}, nil
	}

	refs, err := a.resolver.SearchTickers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(refs) == 0 {
		return []provider.EnrichedStock{}, nil
	}

	out, err := fanOut(ctx, a.maxConcurrency, refs, func(ctx context.Context, ref provider.TickerRef) provider.EnrichedStock {
		return a.quote(ctx, ref)
	})
	if err != nil {
		return nil, err
	}
	a.logBatch("search", out)
	return out, nil
}

// EnrichDetails builds one record per input symbol, in input order.
//
// Symbols the upstream does not confirm get a LookupFailedName placeholder
// and no quote request. Confirmed symbols are quoted under their canonical
// symbol. Per-symbol failures never surface as errors; the only error is
// ctx ending before the batch completes, in which case nothing is returned.
func (a *Aggregator) EnrichDetails(ctx context.Context, symbols []string) ([]provider.EnrichedStock, error) {
	if len(symbols) == 0 {
		return []provider.EnrichedStock{}, nil
	}

	out, err := fanOut(ctx, a.maxConcurrency, symbols, func(ctx context.Context, symbol string) provider.EnrichedStock {
		ref, ok := a.resolver.LookupTicker(ctx, symbol)
		if !ok {
			a.logger.Debug("ticker lookup degraded", "symbol", symbol)
			return provider.EnrichedStock{
				Symbol:      symbol,
				CompanyName: LookupFailedName,
				IsFavorite:  a.favorites.IsFavorite(symbol),
			}
		}
		return a.quote(ctx, ref)
	})
	if err != nil {
		return nil, err
	}
	a.logBatch("details", out)
	return out, nil
}

// HistoryRange returns daily bars for symbol between from and to inclusive,
// oldest first.
func (a *Aggregator) HistoryRange(ctx context.Context, symbol string, from, to time.Time) ([]provider.DailyBar, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}
	bars, err := a.history.DailyBars(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}
	if bars == nil {
		bars = []provider.DailyBar{}
	}
	return bars, nil
}

// News returns recent articles for symbol.
func (a *Aggregator) News(ctx context.Context, symbol string, limit int) ([]provider.NewsItem, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}
	items, err := a.news.News(ctx, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("news %s: %w", symbol, err)
	}
	if items == nil {
		items = []provider.NewsItem{}
	}
	return items, nil
}

// Overview is the favorites dashboard.
type Overview struct {
	Stocks       []provider.EnrichedStock `json:"stocks"`
	LookupFailed int                      `json:"lookup_failed"`
	Unpriced     int                      `json:"unpriced"`
}

// Degraded reports whether any record is missing data.
func (o Overview) Degraded() bool { return o.LookupFailed > 0 || o.Unpriced > 0 }

// Overview enriches every favorite and orders the records by symbol.
func (a *Aggregator) Overview(ctx context.Context) (Overview, error) {
	stocks, err := a.EnrichDetails(ctx, a.favorites.Symbols())
	if err != nil {
		return Overview{}, err
	}
	slices.SortStableFunc(stocks, func(x, y provider.EnrichedStock) int {
		return strings.Compare(x.Symbol, y.Symbol)
	})

	ov := Overview{Stocks: stocks}
	for _, s := range stocks {
		switch {
		case s.CompanyName == LookupFailedName && !s.Priced():
			ov.LookupFailed++
		case !s.Priced():
			ov.Unpriced++
		}
	}
	return ov, nil
}

// quote prices a resolved ticker. Without a quote the record keeps the
// resolved name and carries no prices.
func (a *Aggregator) quote(ctx context.Context, ref provider.TickerRef) provider.EnrichedStock {
	rec := provider.EnrichedStock{
		Symbol:      ref.Symbol,
		CompanyName: ref.DisplayName,
		IsFavorite:  a.favorites.IsFavorite(ref.Symbol),
	}
	bar, ok := a.quotes.PreviousClose(ctx, ref.Symbol)
	if !ok {
		a.logger.Debug("quote degraded", "symbol", ref.Symbol)
		return rec
	}
	price := bar.Close
	change, percent := PriceChange(bar.Open, bar.Close)
	rec.CurrentPrice, rec.PriceChange, rec.PriceChangePercent = &price, &change, &percent
	return rec
}

func (a *Aggregator) logBatch(op string, out []provider.EnrichedStock) {
	priced := 0
	for _, s := range out {
		if s.Priced() {
			priced++
		}
	}
	a.logger.Debug("batch complete", "op", op, "records", len(out), "priced", priced)
}

// PriceChange derives the session move. percent is a fraction of open and
// is exactly 0 when open is 0.
func PriceChange(openPrice, closePrice float64) (change, percent float64) {
	change = closePrice - openPrice
	if openPrice == 0 {
		return change, 0
	}
	return change, change / openPrice
}
