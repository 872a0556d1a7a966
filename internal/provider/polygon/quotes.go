package polygon

import (
	"context"
	"net/url"

	"stockfeed/internal/httpx"
	"stockfeed/internal/provider"
)

// PreviousClose returns the last completed session for symbol. Failures and
// empty results are both reported as absent.
func (c *Client) PreviousClose(ctx context.Context, symbol string) (provider.DailyBar, bool) {
	path := "/v2/aggs/ticker/" + url.PathEscape(symbol) + "/prev"
	res, err := httpx.Execute[aggregatesResponse](ctx, c.httpClient, c.endpoint(path, nil), c.bearer())
	if err != nil {
		c.logger.Debug("previous close failed", "symbol", symbol, "kind", httpx.Classify(err), "err", err)
		return provider.DailyBar{}, false
	}
	if len(res.Results) == 0 {
		return provider.DailyBar{}, false
	}
	return res.Results[0].toBar(), true
}
