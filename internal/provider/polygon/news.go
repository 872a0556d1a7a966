package polygon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"stockfeed/internal/httpx"
	"stockfeed/internal/provider"
)

// News returns the most recent articles tagged with symbol. limit <= 0 uses
// the default of 10; values above 1000 are clamped.
func (c *Client) News(ctx context.Context, symbol string, limit int) ([]provider.NewsItem, error) {
	switch {
	case limit <= 0:
		limit = defaultNewsLimit
	case limit > maxNewsLimit:
		limit = maxNewsLimit
	}

	q := url.Values{}
	q.Set("ticker", symbol)
	q.Set("order", "desc")
	q.Set("limit", strconv.Itoa(limit))

	res, err := httpx.Execute[newsResponse](ctx, c.httpClient, c.endpoint("/v2/reference/news", q), c.bearer())
	if err != nil {
		return nil, fmt.Errorf("news for %s: %w", symbol, err)
	}

	items := make([]provider.NewsItem, 0, len(res.Results))
	for _, n := range res.Results {
		items = append(items, n.toItem())
	}
	return items, nil
}
