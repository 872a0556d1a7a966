package polygon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"stockfeed/internal/httpx"
	"stockfeed/internal/provider"
)

// SearchTickers queries the reference ticker index for active matches.
func (c *Client) SearchTickers(ctx context.Context, query string) ([]provider.TickerRef, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("active", "true")
	q.Set("limit", strconv.Itoa(c.searchLimit))

	res, err := httpx.Execute[tickerSearchResponse](ctx, c.httpClient, c.endpoint("/v3/reference/tickers", q), c.bearer())
	if err != nil {
		return nil, fmt.Errorf("searching tickers: %w", err)
	}

	refs := make([]provider.TickerRef, 0, len(res.Results))
	for _, r := range res.Results {
		refs = append(refs, r.toRef())
	}
	return refs, nil
}

// LookupTicker fetches the canonical reference for one symbol. Anything other
// than an OK envelope with a result is reported as absent.
func (c *Client) LookupTicker(ctx context.Context, symbol string) (provider.TickerRef, bool) {
	path := "/v3/reference/tickers/" + url.PathEscape(symbol)
	res, err := httpx.Execute[tickerDetailResponse](ctx, c.httpClient, c.endpoint(path, nil), c.bearer())
	if err != nil {
		c.logger.Debug("ticker lookup failed", "symbol", symbol, "kind", httpx.Classify(err), "err", err)
		return provider.TickerRef{}, false
	}
	if res.Status != statusOK || res.Results == nil || res.Results.Ticker == "" {
		c.logger.Debug("ticker lookup not confirmed", "symbol", symbol, "status", res.Status)
		return provider.TickerRef{}, false
	}
	return res.Results.toRef(), true
}
