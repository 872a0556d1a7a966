package provider

import (
	"context"
	"time"
)

// TickerRef identifies a tradable instrument as the upstream reports it.
// Symbol is the identity and is compared case-sensitively.
type TickerRef struct {
	Symbol      string `json:"symbol"`
	DisplayName string `json:"display_name"`
	Exchange    string `json:"exchange,omitempty"`
	AssetType   string `json:"asset_type,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// DailyBar is one trading session. A range of bars is ordered by
// TimestampMillis ascending.
type DailyBar struct {
	Open            float64  `json:"open"`
	High            float64  `json:"high"`
	Low             float64  `json:"low"`
	Close           float64  `json:"close"`
	Volume          *float64 `json:"volume,omitempty"`
	VWAP            *float64 `json:"vwap,omitempty"`
	TimestampMillis int64    `json:"timestamp_ms"`
}

// Time returns the session start in UTC.
func (b DailyBar) Time() time.Time { return time.UnixMilli(b.TimestampMillis).UTC() }

// EnrichedStock is what callers display. The three price fields are either
// all set or all nil.
type EnrichedStock struct {
	Symbol             string   `json:"symbol"`
	CompanyName        string   `json:"company_name"`
	CurrentPrice       *float64 `json:"current_price,omitempty"`
	PriceChange        *float64 `json:"price_change,omitempty"`
	PriceChangePercent *float64 `json:"price_change_percent,omitempty"`
	IsFavorite         bool     `json:"is_favorite"`
}

// Priced reports whether the record carries a quote.
func (s EnrichedStock) Priced() bool { return s.CurrentPrice != nil }

// NewsItem is a read-only article reference.
type NewsItem struct {
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// TickerResolver turns text into ticker references.
//
//go:generate mockgen -package=providermock -destination=providermock/provider.go -source=provider.go
type TickerResolver interface {
	// SearchTickers returns every active match for query. No match is an
	// empty slice and a nil error.
	SearchTickers(ctx context.Context, query string) ([]TickerRef, error)
	// LookupTicker returns the canonical reference for symbol, or false
	// when the upstream does not confirm it for any reason.
	LookupTicker(ctx context.Context, symbol string) (TickerRef, bool)
}

// QuoteFetcher returns the last completed session for a symbol.
type QuoteFetcher interface {
	PreviousClose(ctx context.Context, symbol string) (DailyBar, bool)
}

// HistoryFetcher returns daily bars between from and to inclusive.
type HistoryFetcher interface {
	DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]DailyBar, error)
}

// NewsFetcher returns recent articles mentioning symbol.
type NewsFetcher interface {
	News(ctx context.Context, symbol string, limit int) ([]NewsItem, error)
}
