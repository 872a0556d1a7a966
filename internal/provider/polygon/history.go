package polygon

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"

	"stockfeed/internal/httpx"
	"stockfeed/internal/provider"
)

const dateLayout = "2006-01-02"

// DailyBars returns day bars for symbol between from and to, both inclusive,
// oldest first. Only the calendar date of each bound is sent. No results is
// an empty slice.
func (c *Client) DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]provider.DailyBar, error) {
	fromDate, toDate := from.Format(dateLayout), to.Format(dateLayout)
	if fromDate > toDate {
		return nil, fmt.Errorf("daily bars for %s: from %s is after to %s", symbol, fromDate, toDate)
	}

	q := url.Values{}
	q.Set("adjusted", "true")
	q.Set("sort", "asc")
	q.Set("limit", strconv.Itoa(c.historyLimit))
	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/day/%s/%s", url.PathEscape(symbol), fromDate, toDate)

	res, err := httpx.Execute[aggregatesResponse](ctx, c.httpClient, c.endpoint(path, q), c.bearer())
	if err != nil {
		return nil, fmt.Errorf("daily bars for %s: %w", symbol, err)
	}

	bars := make([]provider.DailyBar, 0, len(res.Results))
	for _, r := range res.Results {
		bars = append(bars, r.toBar())
	}
	return normalizeBars(bars), nil
}

// normalizeBars orders bars by timestamp and keeps the first bar seen for
// each timestamp.
func normalizeBars(bars []provider.DailyBar) []provider.DailyBar {
	slices.SortStableFunc(bars, func(a, b provider.DailyBar) int {
		switch {
		case a.TimestampMillis < b.TimestampMillis:
			return -1
		case a.TimestampMillis > b.TimestampMillis:
			return 1
		default:
			return 0
		}
	})
	return slices.CompactFunc(bars, func(a, b provider.DailyBar) bool {
		return a.TimestampMillis == b.TimestampMillis
	})
}
